package dto

import "github.com/shopspring/decimal"

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Code           string `json:"code"           binding:"required,max=100"`
	Name           string `json:"name"           binding:"required,max=100"`
	Email          string `json:"email"          binding:"required,email,max=255"`
	PhoneNumber    string `json:"phoneNumber"    binding:"required,max=100"`
	Level          string `json:"level"          binding:"required,oneof=One Two Three Four"`
	Specialization string `json:"specialization" binding:"required,oneof=CS IT"`
}

// UpdateStudentRequest 更新学生请求（部分更新，至少一个字段）
type UpdateStudentRequest struct {
	Code           *string `json:"code"           binding:"omitempty,max=100"`
	Name           *string `json:"name"           binding:"omitempty,max=255"`
	Email          *string `json:"email"          binding:"omitempty,email,max=255"`
	PhoneNumber    *string `json:"phoneNumber"    binding:"omitempty,max=255"`
	Level          *string `json:"level"          binding:"omitempty,oneof=One Two Three Four"`
	Specialization *string `json:"specialization" binding:"omitempty,oneof=CS IT"`
	AcademicYear   *string `json:"academic_year"  binding:"omitempty,academic_year"`
}

// IsEmpty 是否未提供任何更新字段
func (r *UpdateStudentRequest) IsEmpty() bool {
	return r.Code == nil && r.Name == nil && r.Email == nil && r.PhoneNumber == nil &&
		r.Level == nil && r.Specialization == nil && r.AcademicYear == nil
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	PaginationRequest
	Search         string `form:"search"         binding:"omitempty,max=100"`
	Level          string `form:"level"`
	Specialization string `form:"specialization"`
	AcademicYear   string `form:"academic_year"`
}

// StudentResponse 学生信息响应（不含密码与时间戳）
type StudentResponse struct {
	ID             uint            `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PhoneNumber    string          `json:"phoneNumber"`
	Level          string          `json:"level"`
	Specialization string          `json:"specialization"`
	AcademicYear   *string         `json:"academic_year"`
	GPA            decimal.Decimal `json:"gpa"`
}
