package model

// Doctor 教师表 — 对应 doctors
type Doctor struct {
	ID           uint   `gorm:"primaryKey"                                json:"id"`
	Name         string `gorm:"type:varchar(255);not null"                json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"    json:"email"`
	PhoneNumber  string `gorm:"type:varchar(255);not null;uniqueIndex"    json:"phoneNumber"`
	Code         string `gorm:"type:varchar(255);not null;uniqueIndex"    json:"code"`
	PasswordHash string `gorm:"type:varchar(255);not null"                json:"-"`
	BaseModel

	// 关联
	Subjects []Subject `gorm:"many2many:doctor_subject;" json:"subjects,omitempty"`
}

// TableName 指定表名
func (Doctor) TableName() string { return "doctors" }

// DoctorSubject 教师-科目分配表 — 对应 doctor_subject
type DoctorSubject struct {
	DoctorID  uint `gorm:"primaryKey;autoIncrement:false"`
	SubjectID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName 指定表名
func (DoctorSubject) TableName() string { return "doctor_subject" }
