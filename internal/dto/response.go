package dto

// ── 分页请求 ──

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page    int `form:"page"     binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return defaultPage
	}
	return p.Page
}

// GetPerPage 获取每页数量（含默认值）
func (p *PaginationRequest) GetPerPage() int {
	if p.PerPage <= 0 {
		return defaultPerPage
	}
	return p.PerPage
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPerPage()
}
