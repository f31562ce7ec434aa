package models

import "github.com/google/uuid"

// InteractionKind is the closed set of interaction events the engine learns
// from. Anything outside this set is rejected at the API boundary.
type InteractionKind string

const (
	InteractionClick   InteractionKind = "click"
	InteractionLike    InteractionKind = "like"
	InteractionWatched InteractionKind = "watched"
	InteractionSkip    InteractionKind = "skip"
	InteractionDislike InteractionKind = "dislike"
)

// Valid reports whether k is one of the known interaction kinds.
func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionClick, InteractionLike, InteractionWatched, InteractionSkip, InteractionDislike:
		return true
	}
	return false
}

// Positive reports whether the kind carries a positive learning signal.
// Watched counts as positive regardless of the watched fraction; the
// fraction only scales the magnitude.
func (k InteractionKind) Positive() bool {
	switch k {
	case InteractionClick, InteractionLike, InteractionWatched:
		return true
	}
	return false
}

type InteractionRequest struct {
	Item           VideoItem       `json:"item" validate:"required"`
	Kind           InteractionKind `json:"kind" validate:"required,oneof=click like watched skip dislike"`
	PercentWatched float64         `json:"percent_watched,omitempty" validate:"gte=0,lte=1"`
	SessionID      *uuid.UUID      `json:"session_id,omitempty"`
}

type NotInterestedRequest struct {
	Item VideoItem `json:"item" validate:"required"`
}
