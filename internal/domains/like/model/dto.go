package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Legacy PATCH actions
const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// LikeRequest POST /likedArtifact
type LikeRequest struct {
	Email      string `json:"email"`
	ArtifactID string `json:"artifactId"`
}

func (r LikeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.ArtifactID, validation.Required, is.UUID),
	)
}

// LikeQuery GET/DELETE /likedArtifact?email=&artifactId=
type LikeQuery struct {
	Email      string `form:"email"`
	ArtifactID string `form:"artifactId"`
}

func (q LikeQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Email, validation.Required, is.EmailFormat),
		validation.Field(&q.ArtifactID, validation.Required, is.UUID),
	)
}

// UserQuery GET /myLikedArtifact?email=
type UserQuery struct {
	Email string `form:"email"`
}

func (q UserQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Email, validation.Required, is.EmailFormat),
	)
}

// LikeActionRequest PATCH /allArtifacts/:id
type LikeActionRequest struct {
	Action string `json:"action"`
}

func (r LikeActionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Action,
			validation.Required,
			validation.In(ActionIncrement, ActionDecrement).Error("action must be increment or decrement"),
		),
	)
}

// Intent maps the legacy action onto a toggle intent
func (r LikeActionRequest) Intent() Intent {
	if r.Action == ActionDecrement {
		return IntentUnlike
	}
	return IntentLike
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type IsLikedResponse struct {
	IsLiked bool `json:"isLiked"`
}
