package handler

import (
	"alliance-bank/internal/adapter/http/dto"
	"alliance-bank/internal/core/domain"
	"alliance-bank/internal/core/ports"
	"alliance-bank/pkg/apperror"
	"alliance-bank/pkg/response"

	"github.com/gin-gonic/gin"
)

// IngestDefaults is the window used when an ingest call does not pick one.
type IngestDefaults struct {
	MaxPages int
	PageSize int
}

// AllianceHandler handles alliance registration, tax and bank cache endpoints.
type AllianceHandler struct {
	allianceSvc ports.AllianceService
	taxSvc      ports.TaxService
	bankSvc     ports.BankCacheService
	defaults    IngestDefaults
}

// NewAllianceHandler creates a new AllianceHandler.
func NewAllianceHandler(allianceSvc ports.AllianceService, taxSvc ports.TaxService, bankSvc ports.BankCacheService, defaults IngestDefaults) *AllianceHandler {
	return &AllianceHandler{allianceSvc: allianceSvc, taxSvc: taxSvc, bankSvc: bankSvc, defaults: defaults}
}

// Register handles POST /api/v1/alliances.
func (h *AllianceHandler) Register(c *gin.Context) {
	var req dto.RegisterAllianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	alliance, err := h.allianceSvc.Register(c.Request.Context(), req.ID, req.Name, req.APIKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, alliance)
}

// List handles GET /api/v1/alliances.
func (h *AllianceHandler) List(c *gin.Context) {
	alliances, err := h.allianceSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.AllianceListResponse{Items: alliances})
}

// PreviewTax handles GET /api/v1/alliances/:id/tax/preview.
func (h *AllianceHandler) PreviewTax(c *gin.Context) {
	allianceID, ok := allianceParam(c)
	if !ok {
		return
	}

	summary, err := h.taxSvc.Preview(c.Request.Context(), allianceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// ApplyTax handles POST /api/v1/alliances/:id/tax/apply.
func (h *AllianceHandler) ApplyTax(c *gin.Context) {
	allianceID, ok := allianceParam(c)
	if !ok {
		return
	}

	summary, err := h.taxSvc.Apply(c.Request.Context(), allianceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Treasury handles GET /api/v1/alliances/:id/treasury.
func (h *AllianceHandler) Treasury(c *gin.Context) {
	allianceID, ok := allianceParam(c)
	if !ok {
		return
	}

	bag, err := h.taxSvc.Treasury(c.Request.Context(), allianceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.TreasuryResponse{AllianceID: allianceID, Resources: bag})
}

// Ingest handles POST /api/v1/alliances/:id/bank/ingest. The body is optional.
func (h *AllianceHandler) Ingest(c *gin.Context) {
	allianceID, ok := allianceParam(c)
	if !ok {
		return
	}

	var req dto.IngestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}
	if req.MaxPages == 0 {
		req.MaxPages = h.defaults.MaxPages
	}
	if req.PageSize == 0 {
		req.PageSize = h.defaults.PageSize
	}

	result, err := h.bankSvc.Ingest(c.Request.Context(), allianceID, req.MaxPages, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Records handles GET /api/v1/alliances/:id/bank/records.
func (h *AllianceHandler) Records(c *gin.Context) {
	allianceID, ok := allianceParam(c)
	if !ok {
		return
	}

	query := domain.RecordQuery{AllianceID: allianceID, Filter: domain.RecordFilter(c.Query("filter"))}
	if query.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}
	if query.AfterID, ok = queryID(c, "after_id"); !ok {
		return
	}

	records, err := h.bankSvc.Query(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.BankRecordListResponse{Items: records}
	if n := len(records); n > 0 {
		last := records[n-1].ID
		resp.NextAfter = &last
	}
	response.OK(c, resp)
}
