package dto

import "github.com/shopspring/decimal"

// ── 科目模块 DTO ──

// SubjectRequest 创建/更新科目请求（更新为整体替换）
type SubjectRequest struct {
	Code           string `json:"code"           binding:"required,max=255"`
	Name           string `json:"name"           binding:"required,max=255"`
	CreditHours    int    `json:"creditHours"    binding:"required,min=1"`
	Specialization string `json:"specialization" binding:"required,oneof=CS IT"`
	Level          string `json:"level"          binding:"required,oneof=One Two Three Four"`
	Semester       string `json:"semester"       binding:"required,oneof=One Two"`
}

// SubjectListRequest 科目列表查询参数
// 枚举过滤值不合法时忽略该过滤条件
type SubjectListRequest struct {
	PaginationRequest
	Specialization string `form:"specialization"`
	Level          string `form:"level"`
	Semester       string `form:"semester"`
	Search         string `form:"search" binding:"omitempty,max=255"`
}

// SubjectResponse 科目响应
type SubjectResponse struct {
	ID             uint   `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	CreditHours    int    `json:"creditHours"`
	Specialization string `json:"specialization"`
	Level          string `json:"level"`
	Semester       string `json:"semester"`
}

// SubjectWithCeilingsResponse 科目响应（含各分项满分上限，教师视图）
type SubjectWithCeilingsResponse struct {
	SubjectResponse
	TotalGrade     decimal.NullDecimal `json:"totalGrade"`
	YearsWorkGrade decimal.NullDecimal `json:"yearsWorkGrade"`
	MidtermGrade   decimal.NullDecimal `json:"midtermGrade"`
	FinalGrade     decimal.NullDecimal `json:"finalGrade"`
	PracticalGrade decimal.NullDecimal `json:"practicalGrade"`
}

// SubjectBrief 科目简要信息
type SubjectBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UpdateSubjectGradesRequest 设置科目各分项满分上限
type UpdateSubjectGradesRequest struct {
	TotalGrade     *float64 `json:"totalGrade"     binding:"required,min=0,max=999.99"`
	YearsWorkGrade *float64 `json:"yearsWorkGrade" binding:"required,min=0,max=999.99"`
	MidtermGrade   *float64 `json:"midtermGrade"   binding:"required,min=0,max=999.99"`
	FinalGrade     *float64 `json:"finalGrade"     binding:"required,min=0,max=999.99"`
	PracticalGrade *float64 `json:"practicalGrade" binding:"required,min=0,max=999.99"`
}

// SubjectGradesResponse 科目满分上限响应
type SubjectGradesResponse struct {
	ID             uint                `json:"id"`
	TotalGrade     decimal.NullDecimal `json:"totalGrade"`
	YearsWorkGrade decimal.NullDecimal `json:"yearsWorkGrade"`
	MidtermGrade   decimal.NullDecimal `json:"midtermGrade"`
	FinalGrade     decimal.NullDecimal `json:"finalGrade"`
	PracticalGrade decimal.NullDecimal `json:"practicalGrade"`
}
