package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
)

// SettingRepository 系统设置数据访问接口（单行，固定主键 model.SettingKey）
type SettingRepository interface {
	Get(ctx context.Context) (*model.Setting, error)
	Create(ctx context.Context, setting *model.Setting) error
	Update(ctx context.Context, setting *model.Setting) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo 创建 SettingRepository 实例
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		Where("id = ?", model.SettingKey).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Create 以固定主键插入；已存在时返回 gorm.ErrDuplicatedKey
func (r *settingRepo) Create(ctx context.Context, setting *model.Setting) error {
	setting.ID = model.SettingKey
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingRepo) Update(ctx context.Context, setting *model.Setting) error {
	setting.ID = model.SettingKey
	return r.db.WithContext(ctx).
		Model(setting).
		Select("show_grades", "academic_year", "current_semester", "updated_at").
		Updates(setting).Error
}
