package gym

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

const placeholderImageBase = "https://placehold.co/600x400/262626/FFFFFF"

type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// Image is a local file reference or a remote URL. Empty means placeholder.
	Image     string `json:"image,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// DisplayImage returns the image reference, falling back to a generated
// placeholder carrying the exercise name.
func (e Exercise) DisplayImage() string {
	if e.Image != "" {
		return e.Image
	}
	return PlaceholderImageURL(e.Name)
}

type SetRecord struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type LogEntry struct {
	ID         string      `json:"id"`
	ExerciseID string      `json:"exerciseId"`
	Sets       []SetRecord `json:"sets"`
	// Date is YYYY-MM-DD in the local timezone at creation time.
	Date      string `json:"date"`
	CreatedAt int64  `json:"createdAt"`
}

func (l LogEntry) Clone() LogEntry {
	l.Sets = append([]SetRecord(nil), l.Sets...)
	return l
}

func PlaceholderImageURL(name string) string {
	return fmt.Sprintf("%s?text=%s", placeholderImageBase, url.QueryEscape(name))
}

func IsPositiveNumber(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ValidateExercise(name, category string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: exercise name empty", ErrValidation)
	}
	if !IsValidCategory(category) {
		return fmt.Errorf("%w: unknown category [%s]", ErrValidation, category)
	}
	return nil
}

func ValidateSets(sets []SetRecord) error {
	if len(sets) == 0 {
		return fmt.Errorf("%w: no sets", ErrValidation)
	}
	for i, s := range sets {
		if !IsPositiveNumber(s.Weight) || s.Reps <= 0 {
			return fmt.Errorf("%w: set %d must have positive weight and reps", ErrValidation, i)
		}
	}
	return nil
}
