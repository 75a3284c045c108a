package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/service"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/response"
)

// DoctorHandler 教师模块 HTTP 处理器
type DoctorHandler struct {
	doctorSvc service.DoctorService
}

// NewDoctorHandler 创建 DoctorHandler
func NewDoctorHandler(doctorSvc service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorSvc: doctorSvc}
}

// ListDoctors 教师列表（含所授科目）
// GET /api/admin/doctors
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var req dto.DoctorListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.doctorSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPerPage())
}

// GetDoctor 教师详情
// GET /api/admin/doctors/:id
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, doctor)
}

// CreateDoctor 创建教师并分配科目
// POST /api/admin/doctors
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, doctor)
}

// UpdateDoctor 更新教师；传入 subject_ids 时整体替换科目分配
// PUT /api/admin/doctors/:id
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OK(c, doctor)
}

// DeleteDoctor 删除教师
// DELETE /api/admin/doctors/:id
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.doctorSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDoctorError(c, err)
		return
	}

	response.OKMessage(c, "教师已删除")
}

func (h *DoctorHandler) handleDoctorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(c, 22001, "教师不存在")
	default:
		if !handleInputError(c, err, 22002) {
			response.InternalError(c)
		}
	}
}
