package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	// Create 插入成绩；(student_id, subject_id) 重复时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, grade *model.Grade) error
	Exists(ctx context.Context, studentID, subjectID uint) (bool, error)
	ListByStudent(ctx context.Context, studentID uint, academicYear string) ([]model.Grade, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]model.Grade, error)
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Omit("Student", "Subject").Create(grade).Error
}

func (r *gradeRepo) Exists(ctx context.Context, studentID, subjectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Count(&count).Error
	return count > 0, err
}

// ListByStudent academicYear 为空时返回全部学年
func (r *gradeRepo) ListByStudent(ctx context.Context, studentID uint, academicYear string) ([]model.Grade, error) {
	db := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID)
	if academicYear != "" {
		db = db.Where("academic_year = ?", academicYear)
	}

	var grades []model.Grade
	err := db.Order("academic_year ASC, subject_id ASC").Find(&grades).Error
	return grades, err
}

// ListBySubject 科目成绩单，按学号排序
func (r *gradeRepo) ListBySubject(ctx context.Context, subjectID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Preload("Student").
		Joins("JOIN students ON students.id = grades.student_id").
		Where("grades.subject_id = ?", subjectID).
		Order("students.code ASC").
		Find(&grades).Error
	return grades, err
}
