package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
)

// SubjectFilter 科目列表过滤条件（空值表示不过滤）
type SubjectFilter struct {
	Specialization string
	Level          string
	Semester       string
	Search         string // 科目代码子串
}

func (f SubjectFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Specialization != "" {
		db = db.Where("subjects.specialization = ?", f.Specialization)
	}
	if f.Level != "" {
		db = db.Where("subjects.level = ?", f.Level)
	}
	if f.Semester != "" {
		db = db.Where("subjects.semester = ?", f.Semester)
	}
	if f.Search != "" {
		db = db.Where("LOWER(subjects.code) LIKE ?", likePattern(f.Search))
	}
	return db
}

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id uint) (*model.Subject, error)
	GetByCode(ctx context.Context, code string) (*model.Subject, error)
	List(ctx context.Context, filter SubjectFilter, offset, limit int) ([]model.Subject, int64, error)
	Update(ctx context.Context, subject *model.Subject) error
	UpdateCeilings(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id uint) error
	ExistingIDs(ctx context.Context, ids []uint) ([]uint, error)

	// ListByDoctor 教师被分配的科目
	ListByDoctor(ctx context.Context, doctorID uint, filter SubjectFilter, offset, limit int) ([]model.Subject, int64, error)
	// ListByDoctorWithoutCeilings 教师被分配且五个满分上限均未设置的科目
	ListByDoctorWithoutCeilings(ctx context.Context, doctorID uint, filter SubjectFilter, offset, limit int) ([]model.Subject, int64, error)
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) GetByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context, filter SubjectFilter, offset, limit int) ([]model.Subject, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Scopes(filter.scope).
		Session(&gorm.Session{})
	return r.findPage(base, offset, limit)
}

// Update 更新基础信息（不触碰满分上限字段）
func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).
		Model(subject).
		Select("code", "name", "credit_hours", "specialization", "level", "semester", "updated_at").
		Updates(subject).Error
}

// UpdateCeilings 覆盖五个满分上限字段
func (r *subjectRepo) UpdateCeilings(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).
		Model(subject).
		Select("midterm_grade", "practical_grade", "years_work_grade", "final_grade", "total_grade", "updated_at").
		Updates(subject).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&model.DoctorSubject{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Subject{}, id).Error
	})
}

// ExistingIDs 返回 ids 中实际存在的科目 ID
func (r *subjectRepo) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}

func (r *subjectRepo) ListByDoctor(ctx context.Context, doctorID uint, filter SubjectFilter, offset, limit int) ([]model.Subject, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Joins("JOIN doctor_subject ON doctor_subject.subject_id = subjects.id").
		Where("doctor_subject.doctor_id = ?", doctorID).
		Scopes(filter.scope).
		Session(&gorm.Session{})
	return r.findPage(base, offset, limit)
}

func (r *subjectRepo) ListByDoctorWithoutCeilings(ctx context.Context, doctorID uint, filter SubjectFilter, offset, limit int) ([]model.Subject, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Joins("JOIN doctor_subject ON doctor_subject.subject_id = subjects.id").
		Where("doctor_subject.doctor_id = ?", doctorID).
		Where("subjects.midterm_grade IS NULL AND subjects.practical_grade IS NULL").
		Where("subjects.years_work_grade IS NULL AND subjects.final_grade IS NULL").
		Where("subjects.total_grade IS NULL").
		Scopes(filter.scope).
		Session(&gorm.Session{})
	return r.findPage(base, offset, limit)
}

// findPage 对已构建的查询计数并取一页，按科目代码排序
func (r *subjectRepo) findPage(base *gorm.DB, offset, limit int) ([]model.Subject, int64, error) {
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subjects []model.Subject
	if err := base.Select("subjects.*").
		Scopes(paginate(offset, limit)).
		Order("subjects.code ASC").
		Find(&subjects).Error; err != nil {
		return nil, 0, err
	}
	return subjects, total, nil
}
