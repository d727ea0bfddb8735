package handler

import (
	"strconv"

	"alliance-bank/internal/adapter/http/middleware"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
	"alliance-bank/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tokenMember returns the member bound to the caller's token.
// Operator tokens without a member are refused on member routes.
func tokenMember(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.MemberID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden())
		return uuid.Nil, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func allianceParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, apperror.Validation("invalid alliance id"))
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; zero when absent.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		response.Error(c, apperror.Validation("invalid "+name))
		return 0, false
	}
	return v, true
}

// queryID reads an optional positive int64 query parameter.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		response.Error(c, apperror.Validation("invalid "+name))
		return nil, false
	}
	return &v, true
}

// callerCan reports whether the caller's role reaches required.
func callerCan(c *gin.Context, required ports.Role) bool {
	v, _ := c.Get(middleware.CtxRole)
	role, ok := v.(ports.Role)
	return ok && role.Allows(required)
}
