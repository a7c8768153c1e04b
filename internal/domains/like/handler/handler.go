package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	artifactModel "artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/like/model"
	"artifact-tracker-backend/internal/domains/like/service"
	"artifact-tracker-backend/internal/shared/middleware"
	"artifact-tracker-backend/internal/shared/response"
	"artifact-tracker-backend/pkg/logger"
)

// =====================================================
// LIKE HANDLER
// =====================================================

type LikeHandler struct {
	likeService service.ServiceInterface
}

func NewLikeHandler(likeService service.ServiceInterface) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
	}
}

// =====================================================
// QUERIES
// =====================================================

// ListMyLikes lists the likes of the session owner
// GET /myLikedArtifact?email=
func (h *LikeHandler) ListMyLikes(c *gin.Context) {
	var query model.UserQuery
	if !bindQuery(c, &query) {
		return
	}

	identity, ok := middleware.RequireSameUser(c, query.Email)
	if !ok {
		return
	}

	edges, err := h.likeService.ListForUser(c.Request.Context(), identity.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, edges)
}

// IsLiked reports whether the session owner likes an artifact
// GET /likedArtifact?email=&artifactId=
func (h *LikeHandler) IsLiked(c *gin.Context) {
	var query model.LikeQuery
	if !bindQuery(c, &query) {
		return
	}

	identity, ok := middleware.RequireSameUser(c, query.Email)
	if !ok {
		return
	}

	liked, err := h.likeService.IsLiked(c.Request.Context(), identity.Email, uuid.MustParse(query.ArtifactID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.IsLikedResponse{IsLiked: liked})
}

// =====================================================
// TOGGLES
// =====================================================

// Like records a like for the session owner
// POST /likedArtifact
func (h *LikeHandler) Like(c *gin.Context) {
	// Step 1: Bind + validate
	var req model.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid like request", err)
		return
	}

	// Step 2: Identity must own the email
	identity, ok := middleware.RequireSameUser(c, req.Email)
	if !ok {
		return
	}

	// Step 3: Toggle
	h.toggle(c, identity.Email, uuid.MustParse(req.ArtifactID), model.IntentLike)
}

// Unlike removes the like of the session owner
// DELETE /likedArtifact?email=&artifactId=
func (h *LikeHandler) Unlike(c *gin.Context) {
	var query model.LikeQuery
	if !bindQuery(c, &query) {
		return
	}

	identity, ok := middleware.RequireSameUser(c, query.Email)
	if !ok {
		return
	}

	h.toggle(c, identity.Email, uuid.MustParse(query.ArtifactID), model.IntentUnlike)
}

// ApplyAction keeps the legacy counter endpoint: increment likes, decrement
// unlikes, both for the session owner. Toggles are idempotent so a client
// calling this after POST /likedArtifact does not count twice.
// PATCH /allArtifacts/:id
func (h *LikeHandler) ApplyAction(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "unauthorized access")
		return
	}

	artifactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid artifact id")
		return
	}

	var req model.LikeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid action", err)
		return
	}

	h.toggle(c, identity.Email, artifactID, req.Intent())
}

// toggle runs detached from the client connection: once accepted, a
// toggle completes both writes even if the client goes away
func (h *LikeHandler) toggle(c *gin.Context, email string, artifactID uuid.UUID, intent model.Intent) {
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.likeService.ToggleLike(ctx, email, artifactID, intent)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

type validatable interface {
	Validate() error
}

func bindQuery(c *gin.Context, query validatable) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid query")
		return false
	}
	if err := query.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeMalformed, "Invalid query", err)
		return false
	}
	return true
}

func (h *LikeHandler) respondError(c *gin.Context, err error) {
	statusCode, errCode, message := mapLikeError(err)
	if statusCode >= http.StatusInternalServerError {
		logger.ErrorFields("like request failed", err, map[string]interface{}{
			"request_id": c.GetString(middleware.ContextKeyRequestID),
			"path":       c.Request.URL.Path,
		})
	}
	response.ErrorResponse(c, statusCode, errCode, message)
}

// mapLikeError maps domain errors to HTTP status, code and public message
func mapLikeError(err error) (int, string, string) {
	var likeErr *model.LikeError
	if errors.As(err, &likeErr) {
		switch likeErr.Code {
		case model.ErrCodeMalformed:
			return http.StatusBadRequest, likeErr.Code, likeErr.Message
		case model.ErrCodeStaleReference:
			return http.StatusConflict, likeErr.Code, likeErr.Message
		case model.ErrCodeStoreUnavailable:
			return http.StatusServiceUnavailable, likeErr.Code, likeErr.Message
		}
	}

	if errors.Is(err, artifactModel.ErrArtifactNotFound) {
		return http.StatusNotFound, artifactModel.ErrCodeArtifactNotFound, "Artifact not found"
	}

	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error"
}
