package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateArtifactRequest POST /add-artifact.
// The seller email always comes from the session, never from the body.
type CreateArtifactRequest struct {
	ArtifactName      string `json:"artifactName"`
	ArtifactImage     string `json:"artifactImage"`
	ArtifactType      string `json:"artifactType"`
	HistoricalContext string `json:"historicalContext"`
	CreatedAt         string `json:"createdAt"`
	DiscoveredAt      string `json:"discoveredAt"`
	DiscoveredBy      string `json:"discoveredBy"`
	PresentLocation   string `json:"presentLocation"`
	SellerName        string `json:"sellerName"`
}

func (r CreateArtifactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtifactName,
			validation.Required.Error("artifact name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.ArtifactImage,
			validation.When(r.ArtifactImage != "", is.URL.Error("artifact image must be a URL")),
		),
		validation.Field(&r.ArtifactType, validation.Length(0, 100)),
		validation.Field(&r.HistoricalContext, validation.Length(0, 5000)),
		validation.Field(&r.SellerName, validation.Length(0, 200)),
	)
}

// UpdateArtifactRequest PATCH /updateMyArtifact/:id.
// nil fields are left untouched; likeCount and seller cannot be edited here.
type UpdateArtifactRequest struct {
	ArtifactName      *string `json:"artifactName"`
	ArtifactImage     *string `json:"artifactImage"`
	ArtifactType      *string `json:"artifactType"`
	HistoricalContext *string `json:"historicalContext"`
	CreatedAt         *string `json:"createdAt"`
	DiscoveredAt      *string `json:"discoveredAt"`
	DiscoveredBy      *string `json:"discoveredBy"`
	PresentLocation   *string `json:"presentLocation"`
}

func (r UpdateArtifactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtifactName,
			validation.When(r.ArtifactName != nil,
				validation.By(func(value interface{}) error {
					if strings.TrimSpace(*r.ArtifactName) == "" {
						return validation.NewError("validation_required", "artifact name cannot be empty")
					}
					return nil
				}),
				validation.Length(1, 200),
			),
		),
		validation.Field(&r.ArtifactImage,
			validation.When(r.ArtifactImage != nil && *r.ArtifactImage != "", is.URL.Error("artifact image must be a URL")),
		),
		validation.Field(&r.HistoricalContext, validation.Length(0, 5000)),
	)
}

// Apply copies the set fields onto a
func (r UpdateArtifactRequest) Apply(a *Artifact) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.ArtifactName, r.ArtifactName)
	set(&a.ArtifactImage, r.ArtifactImage)
	set(&a.ArtifactType, r.ArtifactType)
	set(&a.HistoricalContext, r.HistoricalContext)
	set(&a.CreatedAt, r.CreatedAt)
	set(&a.DiscoveredAt, r.DiscoveredAt)
	set(&a.DiscoveredBy, r.DiscoveredBy)
	set(&a.PresentLocation, r.PresentLocation)
}

// SellerQuery GET /myArtifacts?email=
type SellerQuery struct {
	Email string `form:"email"`
}

func (q SellerQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Email, validation.Required, is.EmailFormat),
	)
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
