package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/repository"
	pkgerrors "github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/errors"
)

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound = errors.New("科目不存在")
)

// SubjectService 科目业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SubjectWithCeilingsResponse, error)
	List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id uint) error

	// ListByDoctor 教师被分配的科目（含满分上限）
	ListByDoctor(ctx context.Context, doctorID uint, req *dto.SubjectListRequest) ([]dto.SubjectWithCeilingsResponse, int64, error)
	// ListWithoutCeilings 教师被分配、尚未设置任何满分上限的科目，过滤条件同 ListByDoctor
	ListWithoutCeilings(ctx context.Context, doctorID uint, req *dto.SubjectListRequest) ([]dto.SubjectResponse, int64, error)
	// UpdateCeilings 设置科目五个满分上限，四个分项之和必须与总分一致
	UpdateCeilings(ctx context.Context, id uint, req *dto.UpdateSubjectGradesRequest) (*dto.SubjectGradesResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *subjectService) Create(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	if err := s.checkCode(ctx, 0, req.Code); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		Code:           req.Code,
		Name:           req.Name,
		CreditHours:    req.CreditHours,
		Specialization: req.Specialization,
		Level:          req.Level,
		Semester:       req.Semester,
	}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRecord()
		}
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}

	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *subjectService) GetByID(ctx context.Context, id uint) (*dto.SubjectWithCeilingsResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSubjectWithCeilings(subject)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *subjectService) List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, int64, error) {
	subjects, total, err := s.repo.Subject.List(ctx, subjectFilter(req), req.GetOffset(), req.GetPerPage())
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectResponse(&subjects[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, id uint, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, id, req.Code); err != nil {
		return nil, err
	}

	subject.Code = req.Code
	subject.Name = req.Name
	subject.CreditHours = req.CreditHours
	subject.Specialization = req.Specialization
	subject.Level = req.Level
	subject.Semester = req.Semester

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRecord()
		}
		s.logger.Error("更新科目失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *subjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getSubject(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		s.logger.Error("删除科目失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 教师视图 ──────────────────────

func (s *subjectService) ListByDoctor(ctx context.Context, doctorID uint, req *dto.SubjectListRequest) ([]dto.SubjectWithCeilingsResponse, int64, error) {
	if err := s.ensureDoctor(ctx, doctorID); err != nil {
		return nil, 0, err
	}

	subjects, total, err := s.repo.Subject.ListByDoctor(ctx, doctorID, subjectFilter(req), req.GetOffset(), req.GetPerPage())
	if err != nil {
		s.logger.Error("列出教师科目失败", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SubjectWithCeilingsResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectWithCeilings(&subjects[i]))
	}
	return result, total, nil
}

func (s *subjectService) ListWithoutCeilings(ctx context.Context, doctorID uint, req *dto.SubjectListRequest) ([]dto.SubjectResponse, int64, error) {
	if err := s.ensureDoctor(ctx, doctorID); err != nil {
		return nil, 0, err
	}

	subjects, total, err := s.repo.Subject.ListByDoctorWithoutCeilings(ctx, doctorID, subjectFilter(req), req.GetOffset(), req.GetPerPage())
	if err != nil {
		s.logger.Error("列出未设置上限科目失败", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectResponse(&subjects[i]))
	}
	return result, total, nil
}

func (s *subjectService) UpdateCeilings(ctx context.Context, id uint, req *dto.UpdateSubjectGradesRequest) (*dto.SubjectGradesResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	midterm := toScore(*req.MidtermGrade)
	practical := toScore(*req.PracticalGrade)
	yearsWork := toScore(*req.YearsWorkGrade)
	final := toScore(*req.FinalGrade)
	total := toScore(*req.TotalGrade)

	if !ceilingsConsistent(midterm, practical, yearsWork, final, total) {
		sum := ComputeTotal(midterm, practical, yearsWork, final)
		return nil, &pkgerrors.ConstraintError{
			Message: fmt.Sprintf("四个分项上限之和 (%s) 必须等于总分上限 (%s)", sum.StringFixed(scorePlaces), total.StringFixed(scorePlaces)),
		}
	}

	subject.MidtermGrade = decimal.NewNullDecimal(midterm)
	subject.PracticalGrade = decimal.NewNullDecimal(practical)
	subject.YearsWorkGrade = decimal.NewNullDecimal(yearsWork)
	subject.FinalGrade = decimal.NewNullDecimal(final)
	subject.TotalGrade = decimal.NewNullDecimal(total)

	if err := s.repo.Subject.UpdateCeilings(ctx, subject); err != nil {
		s.logger.Error("更新科目满分上限失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.SubjectGradesResponse{
		ID:             subject.ID,
		TotalGrade:     subject.TotalGrade,
		YearsWorkGrade: subject.YearsWorkGrade,
		MidtermGrade:   subject.MidtermGrade,
		FinalGrade:     subject.FinalGrade,
		PracticalGrade: subject.PracticalGrade,
	}, nil
}

// ── 内部方法 ──

func (s *subjectService) getSubject(ctx context.Context, id uint) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) ensureDoctor(ctx context.Context, doctorID uint) error {
	if _, err := s.repo.Doctor.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		s.logger.Error("查询教师失败", zap.Uint("doctor_id", doctorID), zap.Error(err))
		return err
	}
	return nil
}

func (s *subjectService) checkCode(ctx context.Context, selfID uint, code string) error {
	return checkUnique(ctx, s.logger, selfID, uniqueField{
		field:  "code",
		value:  code,
		lookup: lookupBy(s.repo.Subject.GetByCode, func(m *model.Subject) uint { return m.ID }),
	})
}

// subjectFilter 枚举值不合法时忽略对应过滤条件
func subjectFilter(req *dto.SubjectListRequest) repository.SubjectFilter {
	f := repository.SubjectFilter{Search: req.Search}
	if model.IsSpecialization(req.Specialization) {
		f.Specialization = req.Specialization
	}
	if model.IsLevel(req.Level) {
		f.Level = req.Level
	}
	if model.IsSemester(req.Semester) {
		f.Semester = req.Semester
	}
	return f
}

func toSubjectResponse(s *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:             s.ID,
		Code:           s.Code,
		Name:           s.Name,
		CreditHours:    s.CreditHours,
		Specialization: s.Specialization,
		Level:          s.Level,
		Semester:       s.Semester,
	}
}

func toSubjectWithCeilings(s *model.Subject) dto.SubjectWithCeilingsResponse {
	return dto.SubjectWithCeilingsResponse{
		SubjectResponse: toSubjectResponse(s),
		TotalGrade:      s.TotalGrade,
		YearsWorkGrade:  s.YearsWorkGrade,
		MidtermGrade:    s.MidtermGrade,
		FinalGrade:      s.FinalGrade,
		PracticalGrade:  s.PracticalGrade,
	}
}
