package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"intern-dtr/backend/internal/dto"
	"intern-dtr/backend/internal/service"
	"intern-dtr/backend/pkg/response"
)

// RecordHandler 打卡记录模块 HTTP 处理器
type RecordHandler struct {
	recordSvc service.RecordService
}

// NewRecordHandler 创建 RecordHandler
func NewRecordHandler(recordSvc service.RecordService) *RecordHandler {
	return &RecordHandler{recordSvc: recordSvc}
}

// SaveRecord 保存某日打卡记录（按日期 upsert）
// PUT /api/v1/records
func (h *RecordHandler) SaveRecord(c *gin.Context) {
	var req dto.SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.SaveRecord(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteRecord 删除某日打卡记录
// DELETE /api/v1/records?year=&month=&day=
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	var req dto.DeleteRecordRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.DeleteRecord(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// MarkDay 标记/取消标记 节假日或周末
// POST /api/v1/records/mark
func (h *RecordHandler) MarkDay(c *gin.Context) {
	var req dto.MarkDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.MarkDay(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// QuickLog 快速打卡（填入当日第一个空档）
// POST /api/v1/records/quick-log
func (h *RecordHandler) QuickLog(c *gin.Context) {
	var req dto.QuickLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.QuickLog(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// ImportHolidays 从 ICS 文件批量标记节假日
// POST /api/v1/records/holidays/import （multipart 字段名 file）
func (h *RecordHandler) ImportHolidays(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "无法读取上传文件")
		return
	}
	defer file.Close()

	result, err := h.recordSvc.ImportHolidayICS(c.Request.Context(), userID, file)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// handleRecordError 统一处理打卡记录模块业务错误
func (h *RecordHandler) handleRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInternshipNotFound):
		response.NotFound(c, 12001, "实习档案不存在")
	case errors.Is(err, service.ErrRecordInvalidDate):
		response.BadRequest(c, 13001, "日期无效")
	case errors.Is(err, service.ErrRecordInvalidTime):
		response.BadRequest(c, 13002, "时间格式无效，应为 HH:MM")
	case errors.Is(err, service.ErrRecordDayFull):
		response.BadRequest(c, 13003, "当日四次打卡均已记录")
	case errors.Is(err, service.ErrHolidayICSParseFailed):
		response.BadRequest(c, 13004, "节假日 ICS 文件解析失败")
	case errors.Is(err, service.ErrHolidayICSEmpty):
		response.BadRequest(c, 13005, "ICS 文件中未发现有效节假日日期")
	case errors.Is(err, service.ErrHolidayImportDisabled):
		response.BadRequest(c, 13006, "节假日导入功能未启用")
	default:
		response.InternalError(c)
	}
}
