package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Audit actions for privileged writes.
const (
	AuditRegisterMember   = "member.register"
	AuditRegisterAlliance = "alliance.register"
	AuditAdjustBalance    = "ledger.adjust"
	AuditResolve          = "withdrawal.resolve"
	AuditSettle           = "withdrawal.settle"
	AuditTaxApply         = "tax.apply"
	AuditBankIngest       = "bank.ingest"
)

var auditRoutes = map[string]string{
	http.MethodPost + " /api/v1/members":                    AuditRegisterMember,
	http.MethodPost + " /api/v1/alliances":                  AuditRegisterAlliance,
	http.MethodPost + " /api/v1/accounts/:member_id/adjust": AuditAdjustBalance,
	http.MethodPost + " /api/v1/withdrawals/:id/resolve":    AuditResolve,
	http.MethodPost + " /api/v1/withdrawals/:id/settle":     AuditSettle,
	http.MethodPost + " /api/v1/alliances/:id/tax/apply":    AuditTaxApply,
	http.MethodPost + " /api/v1/alliances/:id/bank/ingest":  AuditBankIngest,
}

// AuditLog writes one audit line per successful privileged write.
// Routes are matched on their template so path parameters do not matter.
func AuditLog(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "audit").Logger()
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		action, ok := auditRoutes[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}

		event := log.Info().
			Str("action", action).
			Str("subject", Subject(c)).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID))
		if role, ok := c.Get(CtxRole); ok {
			event = event.Interface("role", role)
		}
		for _, p := range c.Params {
			event = event.Str(p.Key, p.Value)
		}
		event.Msg("audit")
	}
}
