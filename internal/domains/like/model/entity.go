package model

import (
	"time"

	"github.com/google/uuid"
)

// LikeEdge records that a user (by email) has liked an artifact.
// At most one edge exists per (Email, ArtifactID).
type LikeEdge struct {
	Email      string    `json:"email"`
	ArtifactID uuid.UUID `json:"artifactId"`
	LikedAt    time.Time `json:"likedAt"`
}

// Intent is the desired state of a like edge
type Intent int

const (
	IntentLike Intent = iota + 1
	IntentUnlike
)

func (i Intent) String() string {
	switch i {
	case IntentLike:
		return "like"
	case IntentUnlike:
		return "unlike"
	default:
		return "unknown"
	}
}

// Delta is the counter adjustment applied when the intent changes the edge
func (i Intent) Delta() int {
	if i == IntentUnlike {
		return -1
	}
	return 1
}

// ToggleResult is returned by ToggleLike.
// Changed is false when the edge was already in the requested state.
type ToggleResult struct {
	ArtifactID uuid.UUID `json:"artifactId"`
	Liked      bool      `json:"liked"`
	Changed    bool      `json:"changed"`
	LikeCount  *int      `json:"likeCount,omitempty"`
}
