package model

import "github.com/shopspring/decimal"

// Student 学生表 — 对应 students
type Student struct {
	ID             uint            `gorm:"primaryKey"                             json:"id"`
	Code           string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	Name           string          `gorm:"type:varchar(100);not null"             json:"name"`
	Email          string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PhoneNumber    string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"phoneNumber"`
	Level          string          `gorm:"type:varchar(5);not null"               json:"level"`
	Specialization string          `gorm:"type:varchar(2);not null"               json:"specialization"`
	AcademicYear   *string         `gorm:"type:varchar(9)"                        json:"academic_year"`
	GPA            decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0"   json:"gpa"`
	PasswordHash   string          `gorm:"type:varchar(255);not null"             json:"-"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// StudentSubject 学生选课表 — 对应 student_subject（按学年记录）
type StudentSubject struct {
	StudentID    uint   `gorm:"primaryKey;autoIncrement:false"`
	SubjectID    uint   `gorm:"primaryKey;autoIncrement:false"`
	AcademicYear string `gorm:"primaryKey;type:varchar(9)"`
}

// TableName 指定表名
func (StudentSubject) TableName() string { return "student_subject" }
