package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artifact-tracker-backend/internal/shared/middleware"
	"artifact-tracker-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	guard := middleware.SessionGuard(c.JWTManager, c.Config.Session.CookieName)

	router.GET("/", bannerHandler(c))
	router.GET("/health", healthCheckHandler(c))

	setupSessionRoutes(router, c)
	setupArtifactRoutes(router, c, guard)
	setupLikeRoutes(router, c, guard)

	return router
}

// ========================================
// SESSION ROUTES
// ========================================
func setupSessionRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/jwt", c.SessionHandler.IssueSession)
	r.POST("/clear-jwt", c.SessionHandler.ClearSession)
}

// ========================================
// ARTIFACT ROUTES
// ========================================
func setupArtifactRoutes(r *gin.Engine, c *container.Container, guard gin.HandlerFunc) {
	h := c.ArtifactHandler

	// Public
	r.GET("/allArtifacts", h.ListArtifacts)
	r.GET("/featureArtifacts", h.ListFeatured)
	r.GET("/singleLikedArtifact/:id", h.GetArtifact)
	r.GET("/allLikedArtifact", h.GetArtifactByQuery)

	// Session required
	r.GET("/allArtifacts/:id", guard, h.GetArtifact)
	r.DELETE("/allArtifacts/:id", guard, h.DeleteArtifact)
	r.GET("/myArtifacts", guard, h.ListMyArtifacts)
	r.POST("/add-artifact", guard, h.CreateArtifact)
	r.GET("/updateMyArtifact/:id", guard, h.GetMyArtifact)
	r.PATCH("/updateMyArtifact/:id", guard, h.UpdateMyArtifact)
}

// ========================================
// LIKE ROUTES
// ========================================
func setupLikeRoutes(r *gin.Engine, c *container.Container, guard gin.HandlerFunc) {
	h := c.LikeHandler

	r.GET("/myLikedArtifact", guard, h.ListMyLikes)
	r.GET("/likedArtifact", guard, h.IsLiked)
	r.POST("/likedArtifact", guard, h.Like)
	r.DELETE("/likedArtifact", guard, h.Unlike)
	r.PATCH("/allArtifacts/:id", guard, h.ApplyAction)
}

// ========================================
// BANNER + HEALTH
// ========================================
func bannerHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "%s is running", appCtx.Config.App.Name)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
		}

		cacheStatus := "disabled"
		if appCtx.RedisCache != nil {
			cacheStatus = "ok"
			if err := appCtx.RedisCache.Ping(ctx); err != nil {
				cacheStatus = "error"
			}
		}

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			},
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
