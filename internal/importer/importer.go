// Package importer validates externally supplied workout plans and hands
// accepted ones to the store. Files and pasted text go through the same
// Validate routine.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/claude/workoutplan/internal/metrics"
	"github.com/claude/workoutplan/internal/models"
)

// Import channels, used for logging and metric labels.
const (
	ChannelFile  = "file"
	ChannelPaste = "paste"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsJSONFile reports whether a file with this name or content type is
// accepted by the file channel.
func IsJSONFile(name, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// FromFile validates the content of an uploaded or dropped file. The file
// type is checked before anything is read.
func FromFile(name, contentType string, r io.Reader) (*models.WorkoutPlan, error) {
	if !IsJSONFile(name, contentType) {
		return nil, reject(ErrUnsupportedFile, "%q is not a .json file", name)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Validate(bytes.TrimPrefix(data, utf8BOM))
}

// FromPaste validates text pasted by the user.
func FromPaste(text string) (*models.WorkoutPlan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, reject(ErrEmptyInput, "no text supplied")
	}
	return Validate([]byte(text))
}

// Updater receives accepted plans. *store.Store satisfies it.
type Updater interface {
	Update(ctx context.Context, plan *models.WorkoutPlan)
}

// Importer runs the import channels against a store.
type Importer struct {
	target  Updater
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New creates an Importer that writes accepted plans to target. m may be nil.
func New(target Updater, log *slog.Logger, m *metrics.Metrics) *Importer {
	return &Importer{target: target, log: log, metrics: m}
}

// ImportFile validates a file and, when accepted, replaces the working document.
func (imp *Importer) ImportFile(ctx context.Context, name, contentType string, r io.Reader) (*models.WorkoutPlan, error) {
	plan, err := FromFile(name, contentType, r)
	return imp.finish(ctx, ChannelFile, plan, err, "file", name)
}

// ImportPaste validates pasted text and, when accepted, replaces the working document.
func (imp *Importer) ImportPaste(ctx context.Context, text string) (*models.WorkoutPlan, error) {
	plan, err := FromPaste(text)
	return imp.finish(ctx, ChannelPaste, plan, err, "bytes", len(text))
}

func (imp *Importer) finish(ctx context.Context, channel string, plan *models.WorkoutPlan, err error, attrs ...any) (*models.WorkoutPlan, error) {
	if err != nil {
		kind := KindName(err)
		if kind == "" {
			kind = "error"
		}
		imp.metrics.ObserveImport(channel, kind)
		imp.log.Warn("import rejected", append([]any{"channel", channel, "kind", kind, "error", err}, attrs...)...)
		return nil, err
	}
	imp.metrics.ObserveImport(channel, "accepted")
	imp.Apply(ctx, plan)
	imp.log.Info("import accepted", append([]any{"channel", channel, "users", len(plan.Users)}, attrs...)...)
	return plan, nil
}

// Apply replaces the working document with an accepted plan. The imported
// currentUserId selects the active user, falling back to the first user.
func (imp *Importer) Apply(ctx context.Context, plan *models.WorkoutPlan) {
	imp.target.Update(ctx, plan)
}
