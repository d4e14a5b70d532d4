package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"intern-dtr/backend/internal/service"
	"intern-dtr/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDTR 导出年度打卡记录为 Excel
// GET /api/v1/export/dtr?year=2026
func (h *ExportHandler) ExportDTR(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, 14001, "年份无效")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportDTR(c.Request.Context(), userID, year)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCalendarYearInvalid):
			response.BadRequest(c, 14001, "年份无效")
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 12001, "实习档案不存在")
		case errors.Is(err, service.ErrExportNoRecords):
			response.NotFound(c, 15001, "该年度暂无打卡记录")
		default:
			response.InternalError(c)
		}
		return
	}

	// 文件名含中文，按 RFC 5987 以 filename* 传递
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
