package model

// SettingKey 系统设置固定主键（单行表）
const SettingKey uint = 1

// Setting 系统设置 — 对应 admins（单行：学年、当前学期、成绩可见性）
type Setting struct {
	ID              uint   `gorm:"primaryKey;autoIncrement:false"   json:"id"`
	ShowGrades      bool   `gorm:"not null;default:false"           json:"showGrades"`
	AcademicYear    string `gorm:"type:varchar(9);not null"         json:"academic_year"`
	CurrentSemester string `gorm:"type:varchar(3);not null"         json:"current_semester"`
	BaseModel
}

// TableName 指定表名
func (Setting) TableName() string { return "admins" }
