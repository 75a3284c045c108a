package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/repository"
)

// ── 系统设置模块业务错误 ──

var (
	ErrSettingNotFound = errors.New("系统设置不存在")
	ErrSettingExists   = errors.New("系统设置已存在，请使用更新接口")
)

// SettingService 系统设置业务接口
//
// 系统设置是单行记录，主键固定为 model.SettingKey
type SettingService interface {
	Create(ctx context.Context, req *dto.SettingRequest) (*dto.SettingResponse, error)
	Get(ctx context.Context) (*dto.SettingResponse, error)
	Update(ctx context.Context, id uint, req *dto.SettingRequest) (*dto.SettingResponse, error)
	// CurrentAcademicYear 当前学年；未配置时按当前年份推算 "YYYY-(YYYY+1)"
	CurrentAcademicYear(ctx context.Context) (string, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *settingService) Create(ctx context.Context, req *dto.SettingRequest) (*dto.SettingResponse, error) {
	setting := &model.Setting{
		ShowGrades:      *req.ShowGrades,
		AcademicYear:    req.AcademicYear,
		CurrentSemester: req.CurrentSemester,
	}
	if err := s.repo.Setting.Create(ctx, setting); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSettingExists
		}
		s.logger.Error("创建系统设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// ────────────────────── Get ──────────────────────

func (s *settingService) Get(ctx context.Context) (*dto.SettingResponse, error) {
	setting, err := s.repo.Setting.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("查询系统设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// ────────────────────── Update ──────────────────────

func (s *settingService) Update(ctx context.Context, id uint, req *dto.SettingRequest) (*dto.SettingResponse, error) {
	if id != model.SettingKey {
		return nil, ErrSettingNotFound
	}
	if _, err := s.repo.Setting.Get(ctx); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("查询系统设置失败", zap.Error(err))
		return nil, err
	}

	setting := &model.Setting{
		ID:              model.SettingKey,
		ShowGrades:      *req.ShowGrades,
		AcademicYear:    req.AcademicYear,
		CurrentSemester: req.CurrentSemester,
	}
	if err := s.repo.Setting.Update(ctx, setting); err != nil {
		s.logger.Error("更新系统设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// ────────────────────── CurrentAcademicYear ──────────────────────

func (s *settingService) CurrentAcademicYear(ctx context.Context) (string, error) {
	setting, err := s.repo.Setting.Get(ctx)
	if err == nil {
		return setting.AcademicYear, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询系统设置失败", zap.Error(err))
		return "", err
	}
	year := s.now().Year()
	return fmt.Sprintf("%d-%d", year, year+1), nil
}

func toSettingResponse(s *model.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		ID:              s.ID,
		ShowGrades:      s.ShowGrades,
		AcademicYear:    s.AcademicYear,
		CurrentSemester: s.CurrentSemester,
	}
}
