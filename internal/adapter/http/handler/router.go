package handler

import (
	"alliance-bank/internal/adapter/http/middleware"
	redisStore "alliance-bank/internal/adapter/storage/redis"
	"alliance-bank/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TokenSvc       ports.TokenService
	LedgerSvc      ports.LedgerService
	WithdrawalSvc  ports.WithdrawalService
	TaxSvc         ports.TaxService
	BankSvc        ports.BankCacheService
	MemberSvc      ports.MemberService
	AllianceSvc    ports.AllianceService
	SessionSvc     ports.SessionService
	IngestDefaults IngestDefaults
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Gatherer       prometheus.Gatherer // nil = no /metrics
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(middleware.AuditLog(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Gatherer != nil {
		r.GET("/metrics", Metrics(deps.Gatherer))
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	member := middleware.RequireRole(ports.RoleMember)
	banker := middleware.RequireRole(ports.RoleBanker)
	admin := middleware.RequireRole(ports.RoleAdmin)

	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.TokenSvc, deps.Logger))

	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	memberHandler := NewMemberHandler(deps.MemberSvc)
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalSvc)
	allianceHandler := NewAllianceHandler(deps.AllianceSvc, deps.TaxSvc, deps.BankSvc, deps.IngestDefaults)
	sessionHandler := NewSessionHandler(deps.SessionSvc)

	members := v1.Group("/members")
	{
		members.POST("", admin, rl("admin"), memberHandler.Register)
		members.GET("/by-discord/:discord_id", banker, rl("read"), memberHandler.Lookup)
		members.GET("/me", member, rl("read"), memberHandler.GetProfile)
		members.GET("/me/balance", member, rl("read"), ledgerHandler.GetBalance)
		members.GET("/me/history", member, rl("read"), ledgerHandler.History)
		members.GET("/me/withdrawals", member, rl("read"), withdrawalHandler.ListMine)
	}

	accounts := v1.Group("/accounts/:member_id", admin)
	{
		accounts.POST("/adjust", rl("admin"), ledgerHandler.Adjust)
		accounts.GET("/reconcile", rl("admin"), ledgerHandler.Reconcile)
	}

	withdrawals := v1.Group("/withdrawals")
	{
		withdrawals.POST("", member, rl("withdrawals_create"), withdrawalHandler.Create)
		withdrawals.GET("", banker, rl("read"), withdrawalHandler.List)
		withdrawals.GET("/:id", member, rl("read"), withdrawalHandler.Get)
		withdrawals.POST("/:id/cancel", member, rl("withdrawals_create"), withdrawalHandler.Cancel)
		withdrawals.POST("/:id/resolve", banker, rl("withdrawals_review"), withdrawalHandler.Resolve)
		withdrawals.POST("/:id/settle", admin, rl("admin"), withdrawalHandler.Settle)
	}

	alliances := v1.Group("/alliances")
	{
		alliances.POST("", admin, rl("admin"), allianceHandler.Register)
		alliances.GET("", banker, rl("read"), allianceHandler.List)
		alliances.GET("/:id/tax/preview", banker, rl("read"), allianceHandler.PreviewTax)
		alliances.POST("/:id/tax/apply", admin, rl("ingest"), allianceHandler.ApplyTax)
		alliances.GET("/:id/treasury", banker, rl("read"), allianceHandler.Treasury)
		alliances.POST("/:id/bank/ingest", banker, rl("ingest"), allianceHandler.Ingest)
		alliances.GET("/:id/bank/records", banker, rl("read"), allianceHandler.Records)
	}

	sessions := v1.Group("/sessions/me", member, rl("sessions"))
	{
		sessions.POST("", sessionHandler.Start)
		sessions.GET("", sessionHandler.Current)
		sessions.DELETE("", sessionHandler.Abort)
		sessions.PUT("/recipient", sessionHandler.ChooseRecipient)
		sessions.PUT("/amounts", sessionHandler.EnterAmounts)
		sessions.PUT("/note", sessionHandler.SetNote)
		sessions.POST("/confirm", sessionHandler.Confirm)
	}

	return r
}
