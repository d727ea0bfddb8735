package handler

import (
	"alliance-bank/internal/adapter/http/dto"
	"alliance-bank/internal/adapter/http/middleware"
	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
	"alliance-bank/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler handles withdrawal request endpoints.
type WithdrawalHandler struct {
	withdrawalSvc ports.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalSvc ports.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalSvc: withdrawalSvc}
}

// Create handles POST /api/v1/withdrawals.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	payload, err := domain.NewWithdrawalPayload(req.Resources, req.Recipient.ToDomain(), req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.withdrawalSvc.Create(c.Request.Context(), memberID, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get handles GET /api/v1/withdrawals/:id.
// Members only see their own requests.
func (h *WithdrawalHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.withdrawalSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !callerCan(c, ports.RoleBanker) {
		memberID, _ := middleware.MemberID(c)
		if result.MemberID != memberID {
			response.Error(c, apperror.ErrNotFound("withdrawal"))
			return
		}
	}
	response.OK(c, result)
}

// List handles GET /api/v1/withdrawals. Without member_id it lists the review queue.
func (h *WithdrawalHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	var status *domain.WithdrawalStatus
	if raw := c.Query("status"); raw != "" {
		s, valid := domain.ParseWithdrawalStatus(raw)
		if !valid {
			response.Error(c, apperror.Validation("invalid status"))
			return
		}
		status = &s
	}

	var (
		items []domain.WithdrawalRequest
		err   error
	)
	if raw := c.Query("member_id"); raw != "" {
		memberID, perr := uuid.Parse(raw)
		if perr != nil {
			response.Error(c, apperror.Validation("invalid member_id"))
			return
		}
		items, err = h.withdrawalSvc.ListByMember(c.Request.Context(), memberID, status, limit)
	} else {
		if status != nil && *status != domain.WithdrawalPending {
			response.Error(c, apperror.Validation("status filter needs member_id unless PENDING"))
			return
		}
		items, err = h.withdrawalSvc.ListPending(c.Request.Context(), limit)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WithdrawalListResponse{Items: items})
}

// ListMine handles GET /api/v1/members/me/withdrawals.
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	var status *domain.WithdrawalStatus
	if raw := c.Query("status"); raw != "" {
		s, valid := domain.ParseWithdrawalStatus(raw)
		if !valid {
			response.Error(c, apperror.Validation("invalid status"))
			return
		}
		status = &s
	}

	items, err := h.withdrawalSvc.ListByMember(c.Request.Context(), memberID, status, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WithdrawalListResponse{Items: items})
}

// Cancel handles POST /api/v1/withdrawals/:id/cancel.
func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}

	result, err := h.withdrawalSvc.Cancel(c.Request.Context(), id, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Resolve handles POST /api/v1/withdrawals/:id/resolve.
func (h *WithdrawalHandler) Resolve(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.Resolve(c.Request.Context(), id, middleware.Subject(c), domain.Decision(req.Decision))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Settle handles POST /api/v1/withdrawals/:id/settle.
func (h *WithdrawalHandler) Settle(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.SettleManually(c.Request.Context(), id, middleware.Subject(c), req.ExternalRef)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
