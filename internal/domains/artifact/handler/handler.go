package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artifact-tracker-backend/internal/domains/artifact/model"
	"artifact-tracker-backend/internal/domains/artifact/service"
	"artifact-tracker-backend/internal/infrastructure/database"
	"artifact-tracker-backend/internal/shared/middleware"
	"artifact-tracker-backend/internal/shared/response"
	"artifact-tracker-backend/pkg/logger"
)

// =====================================================
// ARTIFACT HANDLER
// =====================================================

type ArtifactHandler struct {
	artifactService service.ServiceInterface
}

func NewArtifactHandler(artifactService service.ServiceInterface) *ArtifactHandler {
	return &ArtifactHandler{
		artifactService: artifactService,
	}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListArtifacts lists every artifact
// GET /allArtifacts
func (h *ArtifactHandler) ListArtifacts(c *gin.Context) {
	artifacts, err := h.artifactService.ListArtifacts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artifacts)
}

// ListFeatured lists artifacts, most liked first
// GET /featureArtifacts
func (h *ArtifactHandler) ListFeatured(c *gin.Context) {
	artifacts, err := h.artifactService.ListFeatured(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artifacts)
}

// GetArtifact reads one artifact by path id
// GET /allArtifacts/:id, GET /singleLikedArtifact/:id
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	h.getByID(c, c.Param("id"))
}

// GetArtifactByQuery reads one artifact by query id
// GET /allLikedArtifact?artifactId=
func (h *ArtifactHandler) GetArtifactByQuery(c *gin.Context) {
	h.getByID(c, c.Query("artifactId"))
}

func (h *ArtifactHandler) getByID(c *gin.Context, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidID, "Invalid artifact id")
		return
	}

	artifact, err := h.artifactService.GetArtifact(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artifact)
}

// =====================================================
// SELLER ENDPOINTS
// =====================================================

// CreateArtifact publishes an artifact for the session owner
// POST /add-artifact
func (h *ArtifactHandler) CreateArtifact(c *gin.Context) {
	// Step 1: Identity from SessionGuard
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "unauthorized access")
		return
	}

	// Step 2: Bind + validate
	var req model.CreateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid artifact", err)
		return
	}

	// Step 3: Call service
	artifact, err := h.artifactService.CreateArtifact(c.Request.Context(), identity.Email, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, artifact)
}

// ListMyArtifacts lists the artifacts of the session owner
// GET /myArtifacts?email=
func (h *ArtifactHandler) ListMyArtifacts(c *gin.Context) {
	var query model.SellerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}
	if err := query.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err)
		return
	}

	identity, ok := middleware.RequireSameUser(c, query.Email)
	if !ok {
		return
	}

	artifacts, err := h.artifactService.ListBySeller(c.Request.Context(), identity.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artifacts)
}

// GetMyArtifact reads an owned artifact for editing
// GET /updateMyArtifact/:id
func (h *ArtifactHandler) GetMyArtifact(c *gin.Context) {
	identity, id, ok := ownerRequest(c)
	if !ok {
		return
	}

	artifact, err := h.artifactService.GetOwned(c.Request.Context(), identity.Email, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artifact)
}

// UpdateMyArtifact edits an owned artifact
// PATCH /updateMyArtifact/:id
func (h *ArtifactHandler) UpdateMyArtifact(c *gin.Context) {
	identity, id, ok := ownerRequest(c)
	if !ok {
		return
	}

	var req model.UpdateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid artifact", err)
		return
	}

	artifact, err := h.artifactService.UpdateArtifact(c.Request.Context(), identity.Email, id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, artifact)
}

// DeleteArtifact removes an owned artifact
// DELETE /allArtifacts/:id
func (h *ArtifactHandler) DeleteArtifact(c *gin.Context) {
	identity, id, ok := ownerRequest(c)
	if !ok {
		return
	}

	if err := h.artifactService.DeleteArtifact(c.Request.Context(), identity.Email, id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Artifact deleted successfully",
	})
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// ownerRequest resolves the session identity and the :id path param
func ownerRequest(c *gin.Context) (middleware.Identity, uuid.UUID, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "unauthorized access")
		return middleware.Identity{}, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidID, "Invalid artifact id")
		return middleware.Identity{}, uuid.Nil, false
	}

	return identity, id, true
}

func (h *ArtifactHandler) respondError(c *gin.Context, err error) {
	statusCode, errCode, message := mapArtifactError(err)
	if statusCode >= http.StatusInternalServerError {
		logger.ErrorFields("artifact request failed", err, map[string]interface{}{
			"request_id": c.GetString(middleware.ContextKeyRequestID),
			"path":       c.Request.URL.Path,
		})
	}
	response.ErrorResponse(c, statusCode, errCode, message)
}

// mapArtifactError maps domain errors to HTTP status, code and public message
func mapArtifactError(err error) (int, string, string) {
	var artErr *model.ArtifactError
	if errors.As(err, &artErr) {
		switch artErr.Code {
		case model.ErrCodeArtifactNotFound:
			return http.StatusNotFound, artErr.Code, artErr.Message
		case model.ErrCodeNotOwner:
			return http.StatusForbidden, artErr.Code, artErr.Message
		case model.ErrCodeInvalidID:
			return http.StatusBadRequest, artErr.Code, artErr.Message
		}
	}

	if errors.Is(err, database.ErrTransient) {
		return http.StatusServiceUnavailable, model.ErrCodeStoreUnavailable, "Artifact store temporarily unavailable"
	}

	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error"
}
