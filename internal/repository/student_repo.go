package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
)

// StudentFilter 学生列表过滤条件（空值表示不过滤）
type StudentFilter struct {
	Search         string // 学号子串
	Level          string
	Specialization string
	AcademicYear   string
}

func (f StudentFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		db = db.Where("LOWER(students.code) LIKE ?", likePattern(f.Search))
	}
	if f.Level != "" {
		db = db.Where("students.level = ?", f.Level)
	}
	if f.Specialization != "" {
		db = db.Where("students.specialization = ?", f.Specialization)
	}
	if f.AcademicYear != "" {
		db = db.Where("students.academic_year = ?", f.AcademicYear)
	}
	return db
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	GetByCode(ctx context.Context, code string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByPhone(ctx context.Context, phone string) (*model.Student, error)
	List(ctx context.Context, filter StudentFilter, offset, limit int) ([]model.Student, int64, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id uint) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByCode(ctx context.Context, code string) (*model.Student, error) {
	return r.getBy(ctx, "code", code)
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return r.getBy(ctx, "email", email)
}

func (r *studentRepo) GetByPhone(ctx context.Context, phone string) (*model.Student, error) {
	return r.getBy(ctx, "phone_number", phone)
}

func (r *studentRepo) getBy(ctx context.Context, column, value string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, filter StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Scopes(filter.scope).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.Student
	if err := base.Scopes(paginate(offset, limit)).
		Order("students.code ASC").
		Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).
		Model(student).
		Select("code", "name", "email", "phone_number", "level", "specialization", "academic_year", "updated_at").
		Updates(student).Error
}

// Delete 删除学生及其成绩、选课记录
func (r *studentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.StudentSubject{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Student{}, id).Error
	})
}
