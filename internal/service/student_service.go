package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/repository"
	pkgerrors "github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/errors"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("学生不存在")
)

// StudentService 学生业务接口
type StudentService interface {
	// Create 初始密码为学号，学年取系统设置当前学年
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo     *repository.Repository
	settings SettingService
	logger   *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, settings SettingService, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := s.checkUnique(ctx, 0, req.Code, req.Email, req.PhoneNumber); err != nil {
		return nil, err
	}

	year, err := s.settings.CurrentAcademicYear(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Code), hashCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		Code:           req.Code,
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Level:          req.Level,
		Specialization: req.Specialization,
		AcademicYear:   &year,
		GPA:            decimal.Zero,
		PasswordHash:   string(hash),
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRecord()
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id uint) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, studentFilter(req), req.GetOffset(), req.GetPerPage())
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentResponse(&students[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id uint, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if req.IsEmpty() {
		return nil, pkgerrors.NewValidationError("数据校验失败", "body", "至少提供一个字段")
	}

	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, id, deref(req.Code), deref(req.Email), deref(req.PhoneNumber)); err != nil {
		return nil, err
	}

	if req.Code != nil {
		student.Code = *req.Code
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		student.PhoneNumber = *req.PhoneNumber
	}
	if req.Level != nil {
		student.Level = *req.Level
	}
	if req.Specialization != nil {
		student.Specialization = *req.Specialization
	}
	if req.AcademicYear != nil {
		year := *req.AcademicYear
		student.AcademicYear = &year
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRecord()
		}
		s.logger.Error("更新学生失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getStudent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部方法 ──

func (s *studentService) getStudent(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func (s *studentService) checkUnique(ctx context.Context, selfID uint, code, email, phone string) error {
	id := func(m *model.Student) uint { return m.ID }
	return checkUnique(ctx, s.logger, selfID,
		uniqueField{field: "code", value: code, lookup: lookupBy(s.repo.Student.GetByCode, id)},
		uniqueField{field: "email", value: email, lookup: lookupBy(s.repo.Student.GetByEmail, id)},
		uniqueField{field: "phoneNumber", value: phone, lookup: lookupBy(s.repo.Student.GetByPhone, id)},
	)
}

func studentFilter(req *dto.StudentListRequest) repository.StudentFilter {
	return repository.StudentFilter{
		Search:         req.Search,
		Level:          req.Level,
		Specialization: req.Specialization,
		AcademicYear:   req.AcademicYear,
	}
}

func toStudentResponse(s *model.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:             s.ID,
		Code:           s.Code,
		Name:           s.Name,
		Email:          s.Email,
		PhoneNumber:    s.PhoneNumber,
		Level:          s.Level,
		Specialization: s.Specialization,
		AcademicYear:   s.AcademicYear,
		GPA:            s.GPA,
	}
}
