package dto

import "github.com/shopspring/decimal"

// ── 成绩模块 DTO ──

// SubmitGradeRequest 录入成绩请求
type SubmitGradeRequest struct {
	SubjectID      uint     `json:"subject_id"     binding:"required,min=1"`
	MidtermGrade   *float64 `json:"midtermGrade"   binding:"required,min=0,max=100"`
	PracticalGrade *float64 `json:"practicalGrade" binding:"required,min=0,max=100"`
	YearsWorkGrade *float64 `json:"yearsWorkGrade" binding:"required,min=0,max=100"`
	FinalGrade     *float64 `json:"finalGrade"     binding:"required,min=0,max=100"`
	GradeStatus    string   `json:"gradeStatus"    binding:"required,oneof=pass i i* ff* others"`
}

// GradeListRequest 学生成绩列表查询参数
type GradeListRequest struct {
	AcademicYear string `form:"academic_year" binding:"omitempty,academic_year"`
}

// GradeResponse 成绩响应（不含审计时间戳）
type GradeResponse struct {
	ID             uint            `json:"id"`
	StudentID      uint            `json:"student_id"`
	SubjectID      uint            `json:"subject_id"`
	MidtermGrade   decimal.Decimal `json:"midtermGrade"`
	PracticalGrade decimal.Decimal `json:"practicalGrade"`
	YearsWorkGrade decimal.Decimal `json:"yearsWorkGrade"`
	FinalGrade     decimal.Decimal `json:"finalGrade"`
	TotalGrade     decimal.Decimal `json:"totalGrade"`
	TotalGradeChar string          `json:"totalGradeChar"`
	GradeStatus    string          `json:"gradeStatus"`
	AcademicYear   string          `json:"academic_year"`
	Subject        *SubjectBrief   `json:"subject,omitempty"`
}
