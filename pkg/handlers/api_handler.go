package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
	"github.com/KanishkSogani/VocaLearn/pkg/services"
	wsregistry "github.com/KanishkSogani/VocaLearn/pkg/websocket"
)

// APIHandler serves the REST endpoints next to the quiz WebSocket: health,
// active-session introspection and the result archive.
type APIHandler struct {
	resultService *services.ResultService
	registry      *wsregistry.Registry
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(resultService *services.ResultService, registry *wsregistry.Registry) *APIHandler {
	return &APIHandler{
		resultService: resultService,
		registry:      registry,
	}
}

// HealthCheck reports service health, including the archive backend.
func (h *APIHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	archive := "ok"
	if h.resultService == nil {
		archive = "disabled"
	} else if err := h.resultService.HealthCheck(); err != nil {
		h.respondWithError(ctx, fasthttp.StatusServiceUnavailable, "Result archive unavailable")
		return
	}

	h.respondWithSuccess(ctx, map[string]interface{}{
		"activeSessions": h.registry.Count(),
		"resultArchive":  archive,
	}, "Service healthy")
}

// GetActiveSessions lists the currently connected quiz sessions.
func (h *APIHandler) GetActiveSessions(ctx *fasthttp.RequestCtx) {
	h.respondWithSuccess(ctx, map[string]interface{}{
		"count":    h.registry.Count(),
		"sessions": h.registry.SessionIDs(),
	}, "Active sessions retrieved")
}

// GetLeaderboard returns recent archived results ranked by percentage.
func (h *APIHandler) GetLeaderboard(ctx *fasthttp.RequestCtx) {
	if h.resultService == nil {
		h.respondWithError(ctx, fasthttp.StatusServiceUnavailable, "Result archive not configured")
		return
	}

	leaderboard, err := h.resultService.GetLeaderboard()
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusInternalServerError, "Error retrieving leaderboard")
		return
	}

	h.respondWithSuccess(ctx, leaderboard, "Leaderboard retrieved")
}

// GetResult returns one archived quiz result by session ID.
func (h *APIHandler) GetResult(ctx *fasthttp.RequestCtx) {
	if h.resultService == nil {
		h.respondWithError(ctx, fasthttp.StatusServiceUnavailable, "Result archive not configured")
		return
	}

	sessionID, _ := ctx.UserValue("id").(string)
	if sessionID == "" {
		h.respondWithError(ctx, fasthttp.StatusBadRequest, "Missing result ID")
		return
	}

	result, err := h.resultService.GetResult(sessionID)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusNotFound, "Result not found")
		return
	}

	h.respondWithSuccess(ctx, result, "Result retrieved")
}

func (h *APIHandler) respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	h.respondWithJSON(ctx, statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *APIHandler) respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	h.respondWithJSON(ctx, fasthttp.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *APIHandler) respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, data interface{}) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")
	json.NewEncoder(ctx).Encode(data)
}
