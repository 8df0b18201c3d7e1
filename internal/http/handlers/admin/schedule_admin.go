package admin

import (
	handlershared "github.com/dlanguage-api/internal/http/handlers/shared"
	"github.com/dlanguage-api/internal/http/response"
	"github.com/dlanguage-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleRequest 开课日期请求
type ScheduleRequest struct {
	ScheduleDate string `json:"schedule_date" binding:"required,schedule_date"`
}

// OfferingRequest 课程排期请求
type OfferingRequest struct {
	CourseID   uint `json:"course_id" binding:"required"`
	ScheduleID uint `json:"schedule_id" binding:"required"`
}

// GetAdminSchedules 开课日期列表
func (h *Handler) GetAdminSchedules(c *gin.Context) {
	schedules, err := h.ScheduleService.ListSchedules()
	if err != nil {
		respondError(c, response.CodeInternal, "error.schedule_fetch_failed", err)
		return
	}
	response.Success(c, schedules)
}

// GetAdminSchedule 开课日期详情
func (h *Handler) GetAdminSchedule(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	schedule, err := h.ScheduleService.GetSchedule(id)
	if err != nil {
		respondWithMappedError(c, err, scheduleErrorRules, response.CodeInternal, "error.schedule_fetch_failed")
		return
	}
	response.Success(c, schedule)
}

// CreateSchedule 创建开课日期
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	schedule, err := h.ScheduleService.CreateSchedule(req.ScheduleDate)
	if err != nil {
		respondWithMappedError(c, err, scheduleErrorRules, response.CodeInternal, "error.schedule_save_failed")
		return
	}
	respondCreated(c, "message.created", schedule)
}

// UpdateSchedule 修改开课日期
func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	schedule, err := h.ScheduleService.UpdateSchedule(id, req.ScheduleDate)
	if err != nil {
		respondWithMappedError(c, err, scheduleErrorRules, response.CodeInternal, "error.schedule_save_failed")
		return
	}
	response.Success(c, schedule)
}

// DeleteSchedule 删除开课日期
func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ScheduleService.DeleteSchedule(id); err != nil {
		respondWithMappedError(c, err, scheduleErrorRules, response.CodeInternal, "error.schedule_delete_failed")
		return
	}
	requestLog(c).Infow("admin_schedule_deleted", append(operatorFields(c), "schedule_id", id)...)
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminOfferings 课程排期列表
func (h *Handler) GetAdminOfferings(c *gin.Context) {
	offerings, err := h.ScheduleService.ListOfferings()
	if err != nil {
		respondError(c, response.CodeInternal, "error.offering_fetch_failed", err)
		return
	}
	response.Success(c, offerings)
}

// GetAdminOffering 课程排期详情
func (h *Handler) GetAdminOffering(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	offering, err := h.ScheduleService.GetOffering(id)
	if err != nil {
		respondWithMappedError(c, err, offeringErrorRules, response.CodeInternal, "error.offering_fetch_failed")
		return
	}
	response.Success(c, offering)
}

// CreateOffering 创建课程排期
func (h *Handler) CreateOffering(c *gin.Context) {
	var req OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	offering, err := h.ScheduleService.CreateOffering(service.OfferingInput{CourseID: req.CourseID, ScheduleID: req.ScheduleID})
	if err != nil {
		respondWithMappedError(c, err, offeringErrorRules, response.CodeInternal, "error.offering_save_failed")
		return
	}
	respondCreated(c, "message.created", offering)
}

// UpdateOffering 修改课程排期
func (h *Handler) UpdateOffering(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	offering, err := h.ScheduleService.UpdateOffering(id, service.OfferingInput{CourseID: req.CourseID, ScheduleID: req.ScheduleID})
	if err != nil {
		respondWithMappedError(c, err, offeringErrorRules, response.CodeInternal, "error.offering_save_failed")
		return
	}
	response.Success(c, offering)
}

// DeleteOffering 删除课程排期
func (h *Handler) DeleteOffering(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ScheduleService.DeleteOffering(id); err != nil {
		respondWithMappedError(c, err, offeringErrorRules, response.CodeInternal, "error.offering_delete_failed")
		return
	}
	requestLog(c).Infow("admin_offering_deleted", append(operatorFields(c), "offering_id", id)...)
	response.Success(c, gin.H{"deleted": true})
}
