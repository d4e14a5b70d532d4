package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"intern-dtr/backend/internal/service"
	"intern-dtr/backend/pkg/response"
)

// CalendarHandler 日历视图 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// GetCalendar 获取年度日历
// GET /api/v1/calendar?year=2026
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, 14001, "年份无效")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.calendarSvc.GetCalendar(c.Request.Context(), userID, year)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCalendarYearInvalid):
			response.BadRequest(c, 14001, "年份无效")
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 12001, "实习档案不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
