// Package trending exposes the per-content-type aggregation endpoints: each
// handler runs one upstream fetch through the relay, applies the matching
// normalization adapter and attaches the shared caching directive.
package trending

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trendlens/trendlens/internal/adapters"
	"github.com/trendlens/trendlens/internal/errors"
	"github.com/trendlens/trendlens/internal/monitoring"
	"github.com/trendlens/trendlens/internal/normalize"
	"github.com/trendlens/trendlens/internal/types"
)

// CacheControl is the shared caching directive attached to every trending
// response: fresh for 600s at the shared cache, one stale response may be
// served for up to 59s while revalidating.
const CacheControl = "public, s-maxage=600, stale-while-revalidate=59"

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Handler serves the four trending endpoints.
type Handler struct {
	trending *adapters.TrendingAdapter
	papers   *adapters.PapersAdapter
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
}

// NewHandler creates the trending endpoint handler.
func NewHandler(trending *adapters.TrendingAdapter, papers *adapters.PapersAdapter, metrics *monitoring.Metrics, logger *monitoring.Logger) *Handler {
	return &Handler{
		trending: trending,
		papers:   papers,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterRoutes mounts the trending endpoints under /api/trending.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/api/trending")
	group.GET("/models", h.Models)
	group.GET("/datasets", h.Datasets)
	group.GET("/spaces", h.Spaces)
	group.GET("/papers", h.Papers)
}

// Models handles GET /api/trending/models.
func (h *Handler) Models(c *gin.Context) {
	env, ok := h.fetch(c, adapters.TypeModel, string(types.ContentModels))
	if !ok {
		return
	}

	c.Header("Cache-Control", CacheControl)
	c.JSON(http.StatusOK, gin.H{"models": normalize.Models(env)})
}

// Datasets handles GET /api/trending/datasets.
func (h *Handler) Datasets(c *gin.Context) {
	env, ok := h.fetch(c, adapters.TypeDataset, string(types.ContentDatasets))
	if !ok {
		return
	}

	c.Header("Cache-Control", CacheControl)
	c.JSON(http.StatusOK, gin.H{"datasets": normalize.Datasets(env)})
}

// Spaces handles GET /api/trending/spaces. The response is a bare array,
// matching what the dashboard consumes for this type.
func (h *Handler) Spaces(c *gin.Context) {
	env, ok := h.fetch(c, adapters.TypeSpace, string(types.ContentSpaces))
	if !ok {
		return
	}

	c.Header("Cache-Control", CacheControl)
	c.JSON(http.StatusOK, normalize.Spaces(env))
}

// Papers handles GET /api/trending/papers.
func (h *Handler) Papers(c *gin.Context) {
	tf := types.TimeFrame(c.DefaultQuery("timeFrame", string(types.TimeFrameToday)))
	if !tf.Valid() {
		appErr := errors.NewValidationError("invalid timeFrame")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": "invalid timeFrame"})
		return
	}

	start := time.Now()
	items, err := h.papers.FetchPapers(c.Request.Context(), tf)
	success := err == nil

	h.metrics.RecordUpstreamCall(string(types.ContentPapers), success)
	h.logger.UpstreamLogger(string(types.ContentPapers), "daily_papers", time.Since(start), success)

	if err != nil {
		h.fail(c, string(types.ContentPapers), err)
		return
	}

	c.Header("Cache-Control", CacheControl)
	c.JSON(http.StatusOK, normalize.Papers(items))
}

// fetch runs the upstream trending query for one content type, recording
// metrics. It reports false after writing the error response.
func (h *Handler) fetch(c *gin.Context, typ adapters.TrendingType, contentType string) (*adapters.TrendingEnvelope, bool) {
	limit := parseLimit(c)

	start := time.Now()
	env, err := h.trending.FetchTrending(c.Request.Context(), typ, limit)
	success := err == nil

	h.metrics.RecordUpstreamCall(contentType, success)
	h.logger.UpstreamLogger(contentType, "trending", time.Since(start), success)

	if err != nil {
		h.fail(c, contentType, err)
		return nil, false
	}

	return env, true
}

// fail converts any endpoint failure into the structured error body the
// dashboard expects; faults never propagate past this boundary.
func (h *Handler) fail(c *gin.Context, contentType string, err error) {
	appErr := errors.ToAppError(err)
	errors.LogError(c, appErr)

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch " + contentType})
}

// parseLimit reads the limit query param, defaulting to 10 and capping at
// the upstream's maximum page size.
func parseLimit(c *gin.Context) int {
	raw := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}

	return limit
}
