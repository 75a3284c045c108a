package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/model"
)

// DoctorFilter 教师列表过滤条件
type DoctorFilter struct {
	Search string // 姓名子串
}

func (f DoctorFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		db = db.Where("LOWER(doctors.name) LIKE ?", likePattern(f.Search))
	}
	return db
}

// DoctorRepository 教师数据访问接口
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id uint) (*model.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
	GetByCode(ctx context.Context, code string) (*model.Doctor, error)
	GetByPhone(ctx context.Context, phone string) (*model.Doctor, error)
	List(ctx context.Context, filter DoctorFilter, offset, limit int) ([]model.Doctor, int64, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uint) error

	// SubjectIDs 教师当前被分配的科目 ID
	SubjectIDs(ctx context.Context, doctorID uint) ([]uint, error)
	// ApplySubjectChanges 在同一事务中增删分配关系
	ApplySubjectChanges(ctx context.Context, doctorID uint, added, removed []uint) error
}

type doctorRepo struct {
	db *gorm.DB
}

// NewDoctorRepo 创建 DoctorRepository 实例
func NewDoctorRepo(db *gorm.DB) DoctorRepository {
	return &doctorRepo{db: db}
}

// preloadSubjects 预加载科目（按代码排序）
func preloadSubjects(db *gorm.DB) *gorm.DB {
	return db.Order("subjects.code ASC")
}

// Create 仅插入教师本身，科目分配由 ApplySubjectChanges 负责
func (r *doctorRepo) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(doctor).Error
}

func (r *doctorRepo) GetByID(ctx context.Context, id uint) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.WithContext(ctx).
		Preload("Subjects", preloadSubjects).
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepo) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	return r.getBy(ctx, "email", email)
}

func (r *doctorRepo) GetByCode(ctx context.Context, code string) (*model.Doctor, error) {
	return r.getBy(ctx, "code", code)
}

func (r *doctorRepo) GetByPhone(ctx context.Context, phone string) (*model.Doctor, error) {
	return r.getBy(ctx, "phone_number", phone)
}

// getBy column 仅由本文件传入常量
func (r *doctorRepo) getBy(ctx context.Context, column, value string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepo) List(ctx context.Context, filter DoctorFilter, offset, limit int) ([]model.Doctor, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Doctor{}).
		Scopes(filter.scope).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []model.Doctor
	if err := base.Preload("Subjects", preloadSubjects).
		Scopes(paginate(offset, limit)).
		Order("doctors.id ASC").
		Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// Update 保存教师字段，不级联处理科目
func (r *doctorRepo) Update(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).
		Model(doctor).
		Omit(clause.Associations).
		Select("name", "email", "phone_number", "code", "password_hash", "updated_at").
		Updates(doctor).Error
}

// Delete 先解除全部科目分配，再删除教师
func (r *doctorRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&model.DoctorSubject{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Doctor{}, id).Error
	})
}

func (r *doctorRepo) SubjectIDs(ctx context.Context, doctorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.DoctorSubject{}).
		Where("doctor_id = ?", doctorID).
		Order("subject_id ASC").
		Pluck("subject_id", &ids).Error
	return ids, err
}

func (r *doctorRepo) ApplySubjectChanges(ctx context.Context, doctorID uint, added, removed []uint) error {
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(removed) > 0 {
			if err := tx.Where("doctor_id = ? AND subject_id IN ?", doctorID, removed).
				Delete(&model.DoctorSubject{}).Error; err != nil {
				return err
			}
		}
		if len(added) > 0 {
			rows := make([]model.DoctorSubject, 0, len(added))
			for _, sid := range added {
				rows = append(rows, model.DoctorSubject{DoctorID: doctorID, SubjectID: sid})
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
