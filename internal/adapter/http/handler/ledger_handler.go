package handler

import (
	"alliance-bank/internal/adapter/http/dto"
	"alliance-bank/internal/adapter/http/middleware"
	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
	"alliance-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler handles balance and ledger endpoints.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// GetBalance handles GET /api/v1/members/me/balance.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}

	bag, err := h.ledgerSvc.GetBalance(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{MemberID: memberID.String(), Resources: bag})
}

// History handles GET /api/v1/members/me/history.
func (h *LedgerHandler) History(c *gin.Context) {
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}

	params := domain.HistoryParams{MemberID: memberID}
	if raw := c.Query("resource"); raw != "" {
		r, err := domain.ParseResource(raw)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		params.Resource = &r
	}
	if params.BeforeID, ok = queryID(c, "before_id"); !ok {
		return
	}
	if params.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}

	entries, err := h.ledgerSvc.History(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.HistoryResponse{Items: entries}
	if n := len(entries); n > 0 {
		last := entries[n-1].ID
		resp.NextBefore = &last
	}
	response.OK(c, resp)
}

// Adjust handles POST /api/v1/accounts/:member_id/adjust.
func (h *LedgerHandler) Adjust(c *gin.Context) {
	memberID, ok := uuidParam(c, "member_id")
	if !ok {
		return
	}

	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	resource, err := domain.ParseResource(req.Resource)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := h.ledgerSvc.Adjust(c.Request.Context(), domain.Adjustment{
		MemberID: memberID,
		Resource: resource,
		Amount:   req.Amount,
		Actor:    middleware.Subject(c),
		Reason:   req.Reason,
		Kind:     domain.EntryKindManualAdjust,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AdjustResponse{
		MemberID: memberID.String(),
		Resource: string(resource),
		Balance:  balance,
	})
}

// Reconcile handles GET /api/v1/accounts/:member_id/reconcile.
func (h *LedgerHandler) Reconcile(c *gin.Context) {
	memberID, ok := uuidParam(c, "member_id")
	if !ok {
		return
	}

	report, err := h.ledgerSvc.Reconcile(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}
