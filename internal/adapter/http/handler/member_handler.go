package handler

import (
	"alliance-bank/internal/adapter/http/dto"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
	"alliance-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// MemberHandler handles member registration and profile endpoints.
type MemberHandler struct {
	memberSvc ports.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberSvc ports.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Register handles POST /api/v1/members.
func (h *MemberHandler) Register(c *gin.Context) {
	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	member, err := h.memberSvc.Register(c.Request.Context(), ports.RegisterMemberRequest{
		DiscordID:  req.DiscordID,
		NationID:   req.NationID,
		AllianceID: req.AllianceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// GetProfile handles GET /api/v1/members/me.
func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID, ok := tokenMember(c)
	if !ok {
		return
	}

	member, err := h.memberSvc.Get(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Lookup handles GET /api/v1/members/by-discord/:discord_id.
func (h *MemberHandler) Lookup(c *gin.Context) {
	member, err := h.memberSvc.GetByDiscordID(c.Request.Context(), c.Param("discord_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}
