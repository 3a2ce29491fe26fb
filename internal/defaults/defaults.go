// Package defaults supplies the built-in workout plan used on first run and
// on reset, and the template for newly created profiles.
package defaults

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/claude/workoutplan/internal/models"
)

//go:embed plan.json
var planJSON []byte

//go:embed new_user.json
var newUserJSON []byte

// Plan returns a fresh copy of the default plan.
func Plan() *models.WorkoutPlan {
	var p models.WorkoutPlan
	if err := json.Unmarshal(planJSON, &p); err != nil {
		panic(fmt.Sprintf("defaults: embedded plan.json: %v", err))
	}
	return &p
}

// NewUserTemplate returns the profile new users start from. Its id is empty.
func NewUserTemplate() models.UserProfile {
	var u models.UserProfile
	if err := json.Unmarshal(newUserJSON, &u); err != nil {
		panic(fmt.Sprintf("defaults: embedded new_user.json: %v", err))
	}
	return u
}
