package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intern-dtr/backend/internal/dto"
	"intern-dtr/backend/internal/service"
	"intern-dtr/backend/pkg/response"
)

// InternshipHandler 实习档案模块 HTTP 处理器
type InternshipHandler struct {
	internshipSvc service.InternshipService
}

// NewInternshipHandler 创建 InternshipHandler
func NewInternshipHandler(internshipSvc service.InternshipService) *InternshipHandler {
	return &InternshipHandler{internshipSvc: internshipSvc}
}

// GetInternship 获取当前用户的实习档案
// GET /api/v1/internship
func (h *InternshipHandler) GetInternship(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.internshipSvc.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.handleInternshipError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateInternship 更新实习档案基本信息
// PUT /api/v1/internship
func (h *InternshipHandler) UpdateInternship(c *gin.Context) {
	var req dto.UpdateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.internshipSvc.UpdateInfo(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleInternshipError(c, err)
		return
	}

	response.OK(c, result)
}

// GetStats 获取实习进度统计
// GET /api/v1/internship/stats
func (h *InternshipHandler) GetStats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.internshipSvc.GetStats(c.Request.Context(), userID)
	if err != nil {
		h.handleInternshipError(c, err)
		return
	}

	response.OK(c, result)
}

// handleInternshipError 统一处理实习档案模块业务错误
func (h *InternshipHandler) handleInternshipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInternshipNotFound):
		response.NotFound(c, 12001, "实习档案不存在")
	case errors.Is(err, service.ErrInternshipDateFormat):
		response.BadRequest(c, 12003, "开始日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
