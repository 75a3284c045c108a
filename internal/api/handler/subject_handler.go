package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/service"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/response"
)

// SubjectHandler 科目模块 HTTP 处理器（管理端 + 教师端）
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// ListSubjects 科目列表
// GET /api/admin/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	var req dto.SubjectListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.subjectSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPerPage())
}

// GetSubject 科目详情（含满分上限）
// GET /api/admin/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	subject, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// CreateSubject 创建科目
// POST /api/admin/subjects
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// UpdateSubject 更新科目
// PUT /api/admin/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SubjectRequest
	if !bindJSON(c, &req) {
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// DeleteSubject 删除科目
// DELETE /api/admin/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OKMessage(c, "科目已删除")
}

// ── 教师端 ──

// ListDoctorSubjects 教师被分配的科目
// GET /api/doctor/:doctor_id/subjects
func (h *SubjectHandler) ListDoctorSubjects(c *gin.Context) {
	doctorID, ok := pathID(c, "doctor_id")
	if !ok {
		return
	}

	var req dto.SubjectListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.subjectSvc.ListByDoctor(c.Request.Context(), doctorID, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPerPage())
}

// ListDoctorSubjectsWithoutGrades 教师被分配、尚未设置满分上限的科目
// GET /api/doctor/:doctor_id/subjects/without-grades
func (h *SubjectHandler) ListDoctorSubjectsWithoutGrades(c *gin.Context) {
	doctorID, ok := pathID(c, "doctor_id")
	if !ok {
		return
	}

	var req dto.SubjectListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.subjectSvc.ListWithoutCeilings(c.Request.Context(), doctorID, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPerPage())
}

// UpdateSubjectGrades 设置科目满分上限
// PUT /api/doctor/subject/:subject_id
func (h *SubjectHandler) UpdateSubjectGrades(c *gin.Context) {
	subjectID, ok := pathID(c, "subject_id")
	if !ok {
		return
	}

	var req dto.UpdateSubjectGradesRequest
	if !bindJSON(c, &req) {
		return
	}

	grades, err := h.subjectSvc.UpdateCeilings(c.Request.Context(), subjectID, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, grades)
}

func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 21001, "科目不存在")
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(c, 22001, "教师不存在")
	default:
		if !handleInputError(c, err, 21002) {
			response.InternalError(c)
		}
	}
}
