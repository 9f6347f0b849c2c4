package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bpstudio/backend/internal/monitoring"
	"github.com/bpstudio/backend/internal/service"
	"github.com/bpstudio/backend/internal/transpiler"
	"github.com/bpstudio/backend/internal/types"
	"github.com/bpstudio/backend/internal/utils"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	service   *transpiler.Service
	registry  *service.Registry
	metrics   *monitoring.Metrics
	validator *utils.JSONSizeValidator
}

// NewHandlers creates a new handler set
func NewHandlers(svc *transpiler.Service, registry *service.Registry, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		service:   svc,
		registry:  registry,
		metrics:   metrics,
		validator: utils.DefaultJSONValidator(),
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Blueprint Studio Service (Go)",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	})
}

// Transpile converts a Blueprint document into C++ header and source text
func (h *Handlers) Transpile(c *gin.Context) {
	var req types.TranspileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := documentBytes(req.Document)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.validator.ValidateJSON(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "transpile")
	result, err := h.service.Transpile(doc)
	if err != nil {
		timer.Stop("error", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	timer.Stop("success", len(result.Warnings))

	c.JSON(http.StatusOK, result)
}

// Diff compares a Blueprint document against existing source text
func (h *Handlers) Diff(c *gin.Context) {
	var req types.DiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := documentBytes(req.Document)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.validator.ValidateJSON(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateSourceText(req.ExistingSource); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "diff")
	result, err := h.service.Diff(doc, req.ExistingSource)
	if err != nil {
		timer.Stop("error", 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	timer.Stop("success", len(result.Warnings))

	c.JSON(http.StatusOK, result)
}

// ExtractSymbols extracts the symbol table the differ would see in a source file
func (h *Handlers) ExtractSymbols(c *gin.Context) {
	var req types.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateSourceText(req.Source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "symbols")
	table := h.service.ExtractSymbols(req.Source)
	timer.Stop("success", len(table.Warnings))

	c.JSON(http.StatusOK, gin.H{
		"symbols":  table.Symbols,
		"warnings": table.Warnings,
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateToolID(req.ToolID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registry.Execute(req.ToolID, req.Params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
