package model

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is a catalog entry published by a seller
type Artifact struct {
	ID uuid.UUID `json:"id"`

	// Descriptive fields
	ArtifactName      string `json:"artifactName"`
	ArtifactImage     string `json:"artifactImage"`
	ArtifactType      string `json:"artifactType"`
	HistoricalContext string `json:"historicalContext"`
	CreatedAt         string `json:"createdAt"` // era the artifact was made, free text
	DiscoveredAt      string `json:"discoveredAt"`
	DiscoveredBy      string `json:"discoveredBy"`
	PresentLocation   string `json:"presentLocation"`

	// Seller
	SellerName  string `json:"sellerName"`
	SellerEmail string `json:"sellerEmail"`

	// Denormalized count of like edges, never negative
	LikeCount int `json:"likeCount"`

	// Timestamps
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IsOwnedBy checks the seller email case-insensitively
func (a *Artifact) IsOwnedBy(email string) bool {
	return equalFoldTrim(a.SellerEmail, email)
}

// LikeCountDrift is one counter corrected by reconciliation
type LikeCountDrift struct {
	ArtifactID uuid.UUID `json:"artifactId"`
	Stored     int       `json:"stored"`
	Actual     int       `json:"actual"`
}
