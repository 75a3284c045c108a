package dto

// ── 系统设置模块 DTO ──

// SettingRequest 创建/更新系统设置请求（两者字段相同，原样保存）
type SettingRequest struct {
	ShowGrades      *bool  `json:"showGrades"       binding:"required"`
	AcademicYear    string `json:"academic_year"    binding:"required,academic_year"`
	CurrentSemester string `json:"current_semester" binding:"required,oneof=One Two"`
}

// SettingResponse 系统设置响应
type SettingResponse struct {
	ID              uint   `json:"id"`
	ShowGrades      bool   `json:"showGrades"`
	AcademicYear    string `json:"academic_year"`
	CurrentSemester string `json:"current_semester"`
}
