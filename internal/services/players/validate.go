package players

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/courtside/courtside/internal/model"
)

const (
	minNameLength = 2

	minHeightM  = 1.0
	maxHeightM  = 3.0
	minWeightKg = 40.0
	maxWeightKg = 200.0
)

// ValidationError reports the first rejected field of a player form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a player form field by field and stops at the first
// problem, mirroring how the form flags one field at a time.
func Validate(input model.PlayerInput, now time.Time) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < minNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must be at least %d characters", minNameLength),
		}
	}
	team := strings.TrimSpace(input.Team)
	if team == "" {
		return &ValidationError{Field: "team", Message: "team is required"}
	}
	if len(team) < minNameLength {
		return &ValidationError{
			Field:   "team",
			Message: fmt.Sprintf("team must be at least %d characters", minNameLength),
		}
	}
	if input.Position == "" {
		return &ValidationError{Field: "position", Message: "position is required"}
	}
	if !slices.Contains(model.Positions(), input.Position) {
		return &ValidationError{
			Field:   "position",
			Message: fmt.Sprintf("position must be one of %s", strings.Join(model.Positions(), ", ")),
		}
	}
	if input.HeightM < minHeightM || input.HeightM > maxHeightM {
		return &ValidationError{
			Field:   "height",
			Message: fmt.Sprintf("height must be between %.1f and %.1f meters", minHeightM, maxHeightM),
		}
	}
	if input.WeightKg < minWeightKg || input.WeightKg > maxWeightKg {
		return &ValidationError{
			Field:   "weight",
			Message: fmt.Sprintf("weight must be between %.0f and %.0f kg", minWeightKg, maxWeightKg),
		}
	}
	if input.BirthDate.IsZero() {
		return &ValidationError{Field: "birth_date", Message: "birth date is required"}
	}
	if !input.BirthDate.Before(now) {
		return &ValidationError{Field: "birth_date", Message: "birth date must be in the past"}
	}
	return nil
}
