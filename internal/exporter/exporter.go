// Package exporter renders the working document as downloadable JSON files.
// Exports never touch durable storage.
package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/claude/workoutplan/internal/models"
)

// Export types written to the exportType field.
const (
	TypeSingleUser = "single-user"
	TypeAllUsers   = "all-users"
)

// ErrNothingToExport is returned for a plan without users.
var ErrNothingToExport = errors.New("plan has no users to export")

// SingleUserDoc is the single-user export format.
type SingleUserDoc struct {
	Metadata   models.Metadata    `json:"metadata"`
	User       models.UserProfile `json:"user"`
	ExportType string             `json:"exportType"`
	ExportDate string             `json:"exportDate"`
}

// AllUsersDoc is the full plan plus export stamps. It is itself a valid
// import payload.
type AllUsersDoc struct {
	models.WorkoutPlan
	ExportType string `json:"exportType"`
	ExportDate string `json:"exportDate"`
}

// File is a rendered export.
type File struct {
	Name string
	Data []byte
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// whitespace matches Unicode spaces and line separators as well as ASCII
// ones, so "Ann\u00a0Lee" slugs like "Ann Lee".
var whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Slug turns a person's name into the filename fragment used for
// single-user exports: each run of whitespace becomes "-", leading and
// trailing runs included, and the result is lowercased. Path separators
// become "-" so the name stays a single file.
func Slug(name string) string {
	s := whitespace.ReplaceAllString(name, "-")
	s = strings.NewReplacer("/", "-", `\`, "-").Replace(s)
	s = strings.ToLower(s)
	if s == "" {
		return "user"
	}
	return s
}

// SingleUser exports the active user of plan.
func SingleUser(plan *models.WorkoutPlan, now time.Time) (File, error) {
	user := plan.ActiveUser()
	if user == nil {
		return File{}, ErrNothingToExport
	}
	now = now.UTC()
	data, err := marshal(SingleUserDoc{
		Metadata:   plan.Metadata,
		User:       *user,
		ExportType: TypeSingleUser,
		ExportDate: now.Format(timestampLayout),
	})
	if err != nil {
		return File{}, err
	}
	return File{
		Name: fmt.Sprintf("workout-plan-%s-%s.json", Slug(user.Person.Name), now.Format(time.DateOnly)),
		Data: data,
	}, nil
}

// AllUsers exports every profile in plan.
func AllUsers(plan *models.WorkoutPlan, now time.Time) (File, error) {
	if plan == nil || len(plan.Users) == 0 {
		return File{}, ErrNothingToExport
	}
	now = now.UTC()
	data, err := marshal(AllUsersDoc{
		WorkoutPlan: *plan,
		ExportType:  TypeAllUsers,
		ExportDate:  now.Format(timestampLayout),
	})
	if err != nil {
		return File{}, err
	}
	return File{
		Name: fmt.Sprintf("workout-plan-all-users-%s.json", now.Format(time.DateOnly)),
		Data: data,
	}, nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes f into dir and returns the full path.
func WriteFile(dir string, f File) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
