package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/repository"
	pkgerrors "github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/errors"
)

// ── 教师模块业务错误 ──

var (
	ErrDoctorNotFound = errors.New("教师不存在")
)

// hashCost bcrypt 计算强度（测试中调低）
var hashCost = bcrypt.DefaultCost

// DoctorService 教师业务接口
//
// 科目分配采用整体替换：提交的 subject_ids 即为最终分配集合，
// 与当前集合求差得到新增/移除两部分后一次性写入
type DoctorService interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DoctorResponse, error)
	List(ctx context.Context, req *dto.DoctorListRequest) ([]dto.DoctorResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uint) error
}

type doctorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDoctorService 创建 DoctorService 实例
func NewDoctorService(repo *repository.Repository, logger *zap.Logger) DoctorService {
	return &doctorService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *doctorService) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := s.checkUnique(ctx, 0, req.Email, req.PhoneNumber, req.Code); err != nil {
		return nil, err
	}
	subjectIDs, err := s.validateSubjectIDs(ctx, req.SubjectIDs)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), hashCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	doctor := &model.Doctor{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Code:         req.Code,
		PasswordHash: string(hash),
	}
	if err := s.repo.Doctor.Create(ctx, doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRecord()
		}
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	// 创建与分配不在同一事务内，分配失败时教师记录保留
	if err := s.repo.Doctor.ApplySubjectChanges(ctx, doctor.ID, subjectIDs, nil); err != nil {
		s.logger.Error("分配教师科目失败", zap.Uint("doctor_id", doctor.ID), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, doctor.ID)
}

// ────────────────────── GetByID ──────────────────────

func (s *doctorService) GetByID(ctx context.Context, id uint) (*dto.DoctorResponse, error) {
	doctor, err := s.getDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toDoctorResponse(doctor)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *doctorService) List(ctx context.Context, req *dto.DoctorListRequest) ([]dto.DoctorResponse, int64, error) {
	doctors, total, err := s.repo.Doctor.List(ctx, repository.DoctorFilter{Search: req.Search}, req.GetOffset(), req.GetPerPage())
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		result = append(result, toDoctorResponse(&doctors[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *doctorService) Update(ctx context.Context, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := s.getDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, id, deref(req.Email), deref(req.PhoneNumber), deref(req.Code)); err != nil {
		return nil, err
	}

	var subjectIDs []uint
	if req.SubjectIDs != nil {
		if subjectIDs, err = s.validateSubjectIDs(ctx, req.SubjectIDs); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		doctor.PhoneNumber = *req.PhoneNumber
	}
	if req.Code != nil {
		doctor.Code = *req.Code
	}
	if req.Password != nil {
		if req.PasswordConfirmation == nil || *req.PasswordConfirmation != *req.Password {
			return nil, pkgerrors.NewValidationError("数据校验失败", "password", "两次输入的密码不一致")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), hashCost)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		doctor.PasswordHash = string(hash)
	}

	if err := s.repo.Doctor.Update(ctx, doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRecord()
		}
		s.logger.Error("更新教师失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.SubjectIDs != nil {
		if err := s.syncSubjects(ctx, id, subjectIDs); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *doctorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getDoctor(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Doctor.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部方法 ──

func (s *doctorService) getDoctor(ctx context.Context, id uint) (*model.Doctor, error) {
	doctor, err := s.repo.Doctor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("查询教师失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) checkUnique(ctx context.Context, selfID uint, email, phone, code string) error {
	id := func(m *model.Doctor) uint { return m.ID }
	return checkUnique(ctx, s.logger, selfID,
		uniqueField{field: "email", value: email, lookup: lookupBy(s.repo.Doctor.GetByEmail, id)},
		uniqueField{field: "phoneNumber", value: phone, lookup: lookupBy(s.repo.Doctor.GetByPhone, id)},
		uniqueField{field: "code", value: code, lookup: lookupBy(s.repo.Doctor.GetByCode, id)},
	)
}

// validateSubjectIDs 去重并确认每个科目都存在；不存在的按 subject_ids.N 报错
func (s *doctorService) validateSubjectIDs(ctx context.Context, ids []uint) ([]uint, error) {
	unique := dedupeIDs(ids)
	existing, err := s.repo.Subject.ExistingIDs(ctx, unique)
	if err != nil {
		s.logger.Error("查询科目失败", zap.Error(err))
		return nil, err
	}

	found := make(map[uint]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	errs := pkgerrors.FieldErrors{}
	for i, id := range ids {
		if !found[id] {
			errs.Add(fmt.Sprintf("subject_ids.%d", i), fmt.Sprintf("科目 %d 不存在", id))
		}
	}
	if len(errs) > 0 {
		return nil, &pkgerrors.ValidationError{Message: "数据校验失败", Fields: errs}
	}
	return unique, nil
}

// syncSubjects 将教师科目分配替换为 desired
func (s *doctorService) syncSubjects(ctx context.Context, doctorID uint, desired []uint) error {
	current, err := s.repo.Doctor.SubjectIDs(ctx, doctorID)
	if err != nil {
		s.logger.Error("查询教师科目失败", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return err
	}
	added, removed := reconcileIDs(current, desired)
	if err := s.repo.Doctor.ApplySubjectChanges(ctx, doctorID, added, removed); err != nil {
		s.logger.Error("同步教师科目失败", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return err
	}
	return nil
}

// reconcileIDs 计算从 current 变为 desired 需要新增与移除的 ID（均升序）
func reconcileIDs(current, desired []uint) (added, removed []uint) {
	cur := make(map[uint]bool, len(current))
	for _, id := range current {
		cur[id] = true
	}
	want := make(map[uint]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}

	for id := range want {
		if !cur[id] {
			added = append(added, id)
		}
	}
	for id := range cur {
		if !want[id] {
			removed = append(removed, id)
		}
	}
	sortIDs(added)
	sortIDs(removed)
	return added, removed
}

// dedupeIDs 去重并保持首次出现顺序
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toDoctorResponse(d *model.Doctor) dto.DoctorResponse {
	subjects := make([]dto.SubjectBrief, 0, len(d.Subjects))
	for _, sub := range d.Subjects {
		subjects = append(subjects, dto.SubjectBrief{ID: sub.ID, Name: sub.Name})
	}
	return dto.DoctorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Code:        d.Code,
		Subjects:    subjects,
	}
}
