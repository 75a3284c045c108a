package model

import "github.com/shopspring/decimal"

// Grade 成绩表 — 对应 grades
// (student_id, subject_id) 上有唯一索引，每个学生每门科目至多一条成绩
type Grade struct {
	ID             uint            `gorm:"primaryKey"                                        json:"id"`
	StudentID      uint            `gorm:"not null;uniqueIndex:uk_grades_student_subject"    json:"student_id"`
	SubjectID      uint            `gorm:"not null;uniqueIndex:uk_grades_student_subject"    json:"subject_id"`
	MidtermGrade   decimal.Decimal `gorm:"type:numeric(5,2);not null"                        json:"midtermGrade"`
	PracticalGrade decimal.Decimal `gorm:"type:numeric(5,2);not null"                        json:"practicalGrade"`
	YearsWorkGrade decimal.Decimal `gorm:"type:numeric(5,2);not null"                        json:"yearsWorkGrade"`
	FinalGrade     decimal.Decimal `gorm:"type:numeric(5,2);not null"                        json:"finalGrade"`
	TotalGrade     decimal.Decimal `gorm:"type:numeric(5,2);not null"                        json:"totalGrade"`
	TotalGradeChar string          `gorm:"type:varchar(2);not null"                          json:"totalGradeChar"`
	GradeStatus    string          `gorm:"type:varchar(6);not null"                          json:"gradeStatus"`
	AcademicYear   string          `gorm:"type:varchar(9);not null"                          json:"academic_year"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
