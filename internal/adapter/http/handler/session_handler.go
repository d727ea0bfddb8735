package handler

import (
	"net/http"

	"alliance-bank/internal/adapter/http/dto"
	"alliance-bank/internal/adapter/http/middleware"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
	"alliance-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler drives the caller's transfer session. The session is keyed
// by the token subject, so each caller has at most one.
type SessionHandler struct {
	sessionSvc ports.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionSvc ports.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Start handles POST /api/v1/sessions/me.
func (h *SessionHandler) Start(c *gin.Context) {
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Start(c.Request.Context(), middleware.Subject(c), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Current handles GET /api/v1/sessions/me.
func (h *SessionHandler) Current(c *gin.Context) {
	session, err := h.sessionSvc.Current(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// ChooseRecipient handles PUT /api/v1/sessions/me/recipient.
func (h *SessionHandler) ChooseRecipient(c *gin.Context) {
	var req dto.RecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	session, err := h.sessionSvc.ChooseRecipient(c.Request.Context(), middleware.Subject(c), req.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// EnterAmounts handles PUT /api/v1/sessions/me/amounts.
func (h *SessionHandler) EnterAmounts(c *gin.Context) {
	var req dto.AmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	session, err := h.sessionSvc.EnterAmounts(c.Request.Context(), middleware.Subject(c), req.Page, req.Amounts, req.Finish)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// SetNote handles PUT /api/v1/sessions/me/note.
func (h *SessionHandler) SetNote(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	session, err := h.sessionSvc.SetNote(c.Request.Context(), middleware.Subject(c), req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

// Confirm handles POST /api/v1/sessions/me/confirm.
func (h *SessionHandler) Confirm(c *gin.Context) {
	result, err := h.sessionSvc.Confirm(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Abort handles DELETE /api/v1/sessions/me.
func (h *SessionHandler) Abort(c *gin.Context) {
	if err := h.sessionSvc.Abort(c.Request.Context(), middleware.Subject(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
