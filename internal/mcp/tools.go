package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/workoutplan/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListUsers = mcp.NewTool("list_users",
	mcp.WithDescription("List every user profile with id, name, fitness level and goal. The active user is flagged."),
)

var toolGetUserProfile = mcp.NewTool("get_user_profile",
	mcp.WithDescription("Retrieve a complete user profile: person details, weekly workouts, cardio, core, equipment, tips and rest day."),
	mcp.WithString("user_id", mcp.Description("User id. Defaults to the active user.")),
)

var toolGetWorkoutDay = mcp.NewTool("get_workout_day",
	mcp.WithDescription("Retrieve one training day with warmup, exercises (name, sets, details) and cooldown."),
	mcp.WithString("day", mcp.Required(), mcp.Description("Weekday"), mcp.Enum(models.Weekdays...)),
	mcp.WithString("user_id", mcp.Description("User id. Defaults to the active user.")),
)

var toolGetWeeklySchedule = mcp.NewTool("get_weekly_schedule",
	mcp.WithDescription("Summarize Monday to Saturday: type, focus and exercise count per day, plus the rest day."),
	mcp.WithString("user_id", mcp.Description("User id. Defaults to the active user.")),
)

type userSummary struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	FitnessLevel models.FitnessLevel `json:"fitness_level"`
	Goal         string              `json:"goal"`
	Active       bool                `json:"active"`
}

// resolveUser finds the user named by the optional user_id argument, or the
// active user when it is absent.
func (h *handlers) resolveUser(req mcp.CallToolRequest) (*models.UserProfile, error) {
	plan := h.src.Snapshot()
	if plan == nil {
		return nil, errNoPlan
	}
	id := strings.TrimSpace(req.GetString("user_id", ""))
	if id == "" {
		if u := plan.ActiveUser(); u != nil {
			return u, nil
		}
		return nil, errNoPlan
	}
	i := plan.UserIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("no user with id %q", id)
	}
	return &plan.Users[i], nil
}

func (h *handlers) listUsers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan := h.src.Snapshot()
	if plan == nil {
		return mcp.NewToolResultError(errNoPlan.Error()), nil
	}
	active := plan.ActiveUserIndex()
	users := make([]userSummary, len(plan.Users))
	for i, u := range plan.Users {
		users[i] = userSummary{
			ID:           u.ID,
			Name:         u.Person.Name,
			FitnessLevel: u.Person.FitnessLevel,
			Goal:         u.Person.Goal,
			Active:       i == active,
		}
	}

	result, err := mcp.NewToolResultJSON(users)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getUserProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.resolveUser(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(user)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError("day parameter is required"), nil
	}
	user, err := h.resolveUser(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wd, ok := user.Workouts.Day(day)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown day %q; use one of %s", day, strings.Join(models.Weekdays, ", "))), nil
	}

	result, err := mcp.NewToolResultJSON(wd)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklySchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.resolveUser(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"user_id":  user.ID,
		"name":     user.Person.Name,
		"days":     user.Workouts.Schedule(),
		"rest_day": user.RestDay,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
