package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMoodNotFound  = fmt.Errorf("mood rating %w", ErrNotFound)
	ErrInvalidRating = errors.New("invalid rating (must be 1-10)")
	ErrInvalidState  = fmt.Errorf("%w: no mood rating recorded for this date", ErrMoodNotFound)
)

const (
	MinMoodRating = 1
	MaxMoodRating = 10
)

type MoodRating struct {
	Date      string    `json:"date"`
	Rating    int       `json:"rating"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateMoodInput struct {
	Date   string  `json:"date"`
	Rating int     `json:"rating"`
	Notes  *string `json:"notes,omitempty"`
}

func (in CreateMoodInput) Validate() error {
	if _, err := ParseDate(in.Date); err != nil {
		return err
	}
	return ValidateRating(in.Rating)
}

// UpdateMoodInput leaves a field untouched when it is nil.
type UpdateMoodInput struct {
	Rating *int    `json:"rating,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func ValidateRating(rating int) error {
	if rating < MinMoodRating || rating > MaxMoodRating {
		return ErrInvalidRating
	}
	return nil
}

// NormalizeNotes trims the note and maps blank text to nil.
func NormalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type MoodStats struct {
	AverageRating      float64     `json:"average_rating"`
	TotalEntries       int         `json:"total_entries"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
