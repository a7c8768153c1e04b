package main

import (
	"github.com/hibiken/asynq"

	likeJob "artifact-tracker-backend/internal/domains/like/job"
	"artifact-tracker-backend/internal/shared"
	"artifact-tracker-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reconcileLikeCount *likeJob.ReconcileLikeCountHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reconcileLikeCount: likeJob.NewReconcileLikeCountHandler(c.LikeService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeReconcileLikeCount, h.reconcileLikeCount.ProcessTask)
}
