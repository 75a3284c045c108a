package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/service"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// SubmitGrade 录入学生某科目成绩
// POST /api/student/:student_id/grades
func (h *GradeHandler) SubmitGrade(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req dto.SubmitGradeRequest
	if !bindJSON(c, &req) {
		return
	}

	grade, err := h.gradeSvc.Submit(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleGradeError(c, err, req.SubjectID)
		return
	}

	response.OK(c, grade)
}

// ListStudentGrades 学生成绩列表，可按学年过滤
// GET /api/student/:student_id/grades?academic_year=
func (h *GradeHandler) ListStudentGrades(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	var req dto.GradeListRequest
	if !bindQuery(c, &req) {
		return
	}

	grades, err := h.gradeSvc.ListByStudent(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleGradeError(c, err, 0)
		return
	}

	response.OK(c, gin.H{"list": grades})
}

func (h *GradeHandler) handleGradeError(c *gin.Context, err error, subjectID uint) {
	switch {
	case errors.Is(err, service.ErrGradeExists):
		response.Conflict(c, 24001, "该学生此科目的成绩已存在", map[string][]string{
			"subject_id": {fmt.Sprintf("科目 %d 的成绩已录入", subjectID)},
		})
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 23001, "学生不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 21001, "科目不存在")
	default:
		if !handleInputError(c, err, 24002) {
			response.InternalError(c)
		}
	}
}
