package dto

// ── 教师模块 DTO ──

// CreateDoctorRequest 创建教师请求
type CreateDoctorRequest struct {
	Name                 string `json:"name"                  binding:"required,max=255"`
	Email                string `json:"email"                 binding:"required,email,max=255"`
	PhoneNumber          string `json:"phoneNumber"           binding:"required,max=255"`
	Code                 string `json:"code"                  binding:"required,max=255"`
	SubjectIDs           []uint `json:"subject_ids"           binding:"required,min=1,dive,min=1"`
	Password             string `json:"password"              binding:"required,min=6,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// UpdateDoctorRequest 更新教师请求（部分更新）
// SubjectIDs 为 nil 表示不修改分配；传入数组（可为空）则整体替换
type UpdateDoctorRequest struct {
	Name                 *string `json:"name"                  binding:"omitempty,max=255"`
	Email                *string `json:"email"                 binding:"omitempty,email,max=255"`
	PhoneNumber          *string `json:"phoneNumber"           binding:"omitempty,max=255"`
	Code                 *string `json:"code"                  binding:"omitempty,max=255"`
	SubjectIDs           []uint  `json:"subject_ids"           binding:"omitempty,dive,min=1"`
	Password             *string `json:"password"              binding:"omitempty,min=8,max=72"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

// DoctorListRequest 教师列表查询参数
type DoctorListRequest struct {
	PaginationRequest
	Search string `form:"search" binding:"omitempty,max=255"`
}

// DoctorResponse 教师信息响应（不含密码）
type DoctorResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber"`
	Code        string         `json:"code"`
	Subjects    []SubjectBrief `json:"subjects"`
}
