package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/dto"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/service"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/pkg/response"
)

// SettingHandler 系统设置 HTTP 处理器
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler 创建 SettingHandler
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// CreateSetting 创建系统设置
// POST /api/setting
func (h *SettingHandler) CreateSetting(c *gin.Context) {
	var req dto.SettingRequest
	if !bindJSON(c, &req) {
		return
	}

	setting, err := h.settingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, setting)
}

// GetSetting 获取系统设置
// GET /api/setting
func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingSvc.Get(c.Request.Context())
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, setting)
}

// UpdateSetting 更新系统设置
// PUT /api/setting/:id
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SettingRequest
	if !bindJSON(c, &req) {
		return
	}

	setting, err := h.settingSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, setting)
}

func (h *SettingHandler) handleSettingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingNotFound):
		response.NotFound(c, 20001, "系统设置不存在")
	case errors.Is(err, service.ErrSettingExists):
		response.Conflict(c, 20002, "系统设置已存在，请使用更新接口", nil)
	default:
		if !handleInputError(c, err, 20003) {
			response.InternalError(c)
		}
	}
}
