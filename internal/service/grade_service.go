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

// ── 成绩模块业务错误 ──

var (
	ErrGradeExists = errors.New("该学生此科目的成绩已存在")
)

// GradeService 成绩业务接口
//
// 成绩创建后不可修改。每个 (学生, 科目) 至多一条，
// 由前置检查与 grades 表唯一索引共同保证
type GradeService interface {
	Submit(ctx context.Context, studentID uint, req *dto.SubmitGradeRequest) (*dto.GradeResponse, error)
	ListByStudent(ctx context.Context, studentID uint, req *dto.GradeListRequest) ([]dto.GradeResponse, error)
}

type gradeService struct {
	repo     *repository.Repository
	settings SettingService
	logger   *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, settings SettingService, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, settings: settings, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Submit — 录入成绩
// ═══════════════════════════════════════════════════════════
//
// 校验顺序（首个失败即返回）：
//  1. 重复检查 → ErrGradeExists
//  2. 学生、科目存在 → ErrStudentNotFound / ErrSubjectNotFound
//  3. 各分项不超过科目上限，依次 midterm, practical, yearsWork, final
//  4. 总分不超过科目总分上限
//
// 上限为 NULL 的分项不做检查

func (s *gradeService) Submit(ctx context.Context, studentID uint, req *dto.SubmitGradeRequest) (*dto.GradeResponse, error) {
	// 1. 重复检查
	exists, err := s.repo.Grade.Exists(ctx, studentID, req.SubjectID)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrGradeExists
	}

	// 2. 存在性检查
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.Uint("subject_id", req.SubjectID), zap.Error(err))
		return nil, err
	}

	// 3. 分项上限：按提交的原始值比较，通过后才舍入到保存精度
	checks := []struct {
		field   string
		value   float64
		ceiling decimal.NullDecimal
	}{
		{"midtermGrade", *req.MidtermGrade, subject.MidtermGrade},
		{"practicalGrade", *req.PracticalGrade, subject.PracticalGrade},
		{"yearsWorkGrade", *req.YearsWorkGrade, subject.YearsWorkGrade},
		{"finalGrade", *req.FinalGrade, subject.FinalGrade},
	}
	for _, c := range checks {
		if err := checkCeiling(c.field, decimal.NewFromFloat(c.value), c.ceiling); err != nil {
			return nil, err
		}
	}

	midterm := toScore(*req.MidtermGrade)
	practical := toScore(*req.PracticalGrade)
	yearsWork := toScore(*req.YearsWorkGrade)
	final := toScore(*req.FinalGrade)

	// 4. 总分上限，总分由舍入后的分项求和，与入库值一致
	total := ComputeTotal(midterm, practical, yearsWork, final)
	if err := checkCeiling("total", total, subject.TotalGrade); err != nil {
		return nil, err
	}

	year, err := s.settings.CurrentAcademicYear(ctx)
	if err != nil {
		return nil, err
	}

	grade := &model.Grade{
		StudentID:      studentID,
		SubjectID:      req.SubjectID,
		MidtermGrade:   midterm,
		PracticalGrade: practical,
		YearsWorkGrade: yearsWork,
		FinalGrade:     final,
		TotalGrade:     total,
		TotalGradeChar: LetterGrade(total),
		GradeStatus:    req.GradeStatus,
		AcademicYear:   year,
	}
	if err := s.repo.Grade.Create(ctx, grade); err != nil {
		// 并发录入时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGradeExists
		}
		s.logger.Error("创建成绩失败",
			zap.Uint("student_id", studentID),
			zap.Uint("subject_id", req.SubjectID),
			zap.Error(err),
		)
		return nil, err
	}

	resp := toGradeResponse(grade)
	return &resp, nil
}

// ────────────────────── ListByStudent ──────────────────────

func (s *gradeService) ListByStudent(ctx context.Context, studentID uint, req *dto.GradeListRequest) ([]dto.GradeResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	grades, err := s.repo.Grade.ListByStudent(ctx, studentID, req.AcademicYear)
	if err != nil {
		s.logger.Error("列出学生成绩失败", zap.Uint("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		result = append(result, toGradeResponse(&grades[i]))
	}
	return result, nil
}

// checkCeiling 分数超过上限时返回以字段名为键的 ConstraintError
// value 不做舍入：25.004 对上限 25 视为超出
func checkCeiling(field string, value decimal.Decimal, ceiling decimal.NullDecimal) error {
	if !ceiling.Valid || value.LessThanOrEqual(ceiling.Decimal) {
		return nil
	}
	return &pkgerrors.ConstraintError{
		Field:   field,
		Message: "成绩超出科目上限",
		Detail:  fmt.Sprintf("%s 不能超过 %s", field, ceiling.Decimal.String()),
	}
}

func toGradeResponse(g *model.Grade) dto.GradeResponse {
	resp := dto.GradeResponse{
		ID:             g.ID,
		StudentID:      g.StudentID,
		SubjectID:      g.SubjectID,
		MidtermGrade:   g.MidtermGrade,
		PracticalGrade: g.PracticalGrade,
		YearsWorkGrade: g.YearsWorkGrade,
		FinalGrade:     g.FinalGrade,
		TotalGrade:     g.TotalGrade,
		TotalGradeChar: g.TotalGradeChar,
		GradeStatus:    g.GradeStatus,
		AcademicYear:   g.AcademicYear,
	}
	if g.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: g.Subject.ID, Name: g.Subject.Name}
	}
	return resp
}
