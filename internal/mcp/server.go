package mcp

import (
	"log/slog"

	"github.com/claude/workoutplan/internal/models"
	"github.com/claude/workoutplan/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PlanSource supplies read-only snapshots of the working document.
type PlanSource interface {
	Snapshot() *models.WorkoutPlan
}

// Compile-time check: *store.Store satisfies PlanSource.
var _ PlanSource = (*store.Store)(nil)

// New creates an MCP server with all tools and resources registered.
func New(src PlanSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("workoutplan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout plan server. Read user profiles and their weekly training schedules. Tools default to the active user when user_id is omitted. Read-only."),
	)

	h := &handlers{src: src, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListUsers, Handler: h.listUsers},
		server.ServerTool{Tool: toolGetUserProfile, Handler: h.getUserProfile},
		server.ServerTool{Tool: toolGetWorkoutDay, Handler: h.getWorkoutDay},
		server.ServerTool{Tool: toolGetWeeklySchedule, Handler: h.getWeeklySchedule},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resMetadata, Handler: h.metadata},
		server.ServerResource{Resource: resActiveUser, Handler: h.activeUser},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src PlanSource
	log *slog.Logger
}

// --- Resource definitions ---

var resMetadata = mcp.NewResource(
	"workoutplan://metadata",
	"Plan Metadata",
	mcp.WithResourceDescription("Title, subtitle, version and last-updated stamp of the workout plan"),
	mcp.WithMIMEType("application/json"),
)

var resActiveUser = mcp.NewResource(
	"workoutplan://active_user",
	"Active User",
	mcp.WithResourceDescription("Complete profile of the currently selected user"),
	mcp.WithMIMEType("application/json"),
)
