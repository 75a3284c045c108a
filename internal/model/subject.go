package model

import "github.com/shopspring/decimal"

// Subject 科目表 — 对应 subjects
// 五个分数字段是该科目各分项的满分上限，由任课教师设置，未设置前为 NULL
type Subject struct {
	ID             uint                `gorm:"primaryKey"                       json:"id"`
	Code           string              `gorm:"type:varchar(255);not null;uniqueIndex" json:"code"`
	Name           string              `gorm:"type:varchar(255);not null"       json:"name"`
	CreditHours    int                 `gorm:"not null"                         json:"creditHours"`
	Specialization string              `gorm:"type:varchar(2);not null"         json:"specialization"`
	Level          string              `gorm:"type:varchar(5);not null"         json:"level"`
	Semester       string              `gorm:"type:varchar(3);not null"         json:"semester"`
	MidtermGrade   decimal.NullDecimal `gorm:"type:numeric(5,2)"                json:"midtermGrade"`
	PracticalGrade decimal.NullDecimal `gorm:"type:numeric(5,2)"                json:"practicalGrade"`
	YearsWorkGrade decimal.NullDecimal `gorm:"type:numeric(5,2)"                json:"yearsWorkGrade"`
	FinalGrade     decimal.NullDecimal `gorm:"type:numeric(5,2)"                json:"finalGrade"`
	TotalGrade     decimal.NullDecimal `gorm:"type:numeric(5,2)"                json:"totalGrade"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
