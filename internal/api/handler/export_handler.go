package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/service"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSubjectGrades 导出科目成绩单
// GET /api/doctor/subject/:subject_id/grades/export
func (h *ExportHandler) ExportSubjectGrades(c *gin.Context) {
	subjectID, ok := pathID(c, "subject_id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportSubjectGrades(c.Request.Context(), subjectID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

// ExportStudents 导出学生名册（沿用列表过滤参数）
// GET /api/admin/students/export
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if !bindQuery(c, &req) {
		return
	}

	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

// writeXLSX 设置下载响应头并写出文件
func writeXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 21001, "科目不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 25001, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
