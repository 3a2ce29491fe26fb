package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/claude/workoutplan/internal/logging"
	"github.com/claude/workoutplan/internal/metrics"
	"github.com/claude/workoutplan/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const minimalPlan = `{"metadata":{"title":"T"},"users":[{"id":"u1","person":{"name":"Ada"},"workouts":{}}],"currentUserId":"u1"}`

type recordingUpdater struct {
	plans []*models.WorkoutPlan
}

func (r *recordingUpdater) Update(_ context.Context, p *models.WorkoutPlan) {
	r.plans = append(r.plans, p)
}

// TestIsJSONFile verifies the file channel's name and content-type gate.
func TestIsJSONFile(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"plan.json", "", true},
		{"PLAN.JSON", "", true},
		{"plan.txt", "application/json", true},
		{"blob", "application/json; charset=utf-8", true},
		{"plan.txt", "text/plain", false},
		{"plan.json.bak", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := IsJSONFile(tt.name, tt.contentType); got != tt.want {
			t.Errorf("IsJSONFile(%q, %q) = %v, want %v", tt.name, tt.contentType, got, tt.want)
		}
	}
}

// TestFromFile verifies the file channel: type gate before reading, BOM
// handling, and delegation to Validate.
func TestFromFile(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		plan, err := FromFile("plan.json", "", strings.NewReader(minimalPlan))
		if err != nil {
			t.Fatalf("FromFile: %v", err)
		}
		if plan.CurrentUserID != "u1" {
			t.Errorf("currentUserId = %q", plan.CurrentUserID)
		}
	})

	t.Run("bom stripped", func(t *testing.T) {
		if _, err := FromFile("plan.json", "", strings.NewReader("\ufeff"+minimalPlan)); err != nil {
			t.Fatalf("FromFile with BOM: %v", err)
		}
	})

	t.Run("unsupported type is not read", func(t *testing.T) {
		r := iotest.ErrReader(errors.New("must not be read"))
		_, err := FromFile("notes.txt", "text/plain", r)
		if !errors.Is(err, ErrUnsupportedFile) {
			t.Fatalf("err = %v, want ErrUnsupportedFile", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := FromFile("plan.json", "", strings.NewReader("{"))
		if !errors.Is(err, ErrMalformedJSON) {
			t.Fatalf("err = %v, want ErrMalformedJSON", err)
		}
	})

	t.Run("read error is not a rejection", func(t *testing.T) {
		_, err := FromFile("plan.json", "", iotest.ErrReader(errors.New("io")))
		if err == nil || KindName(err) != "" {
			t.Fatalf("err = %v, want plain read error", err)
		}
	})
}

// TestFromPaste verifies the paste channel rejects blank text before parsing.
func TestFromPaste(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := FromPaste(text); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("FromPaste(%q) err = %v, want ErrEmptyInput", text, err)
		}
	}
	if _, err := FromPaste("not json at all"); !errors.Is(err, ErrMalformedJSON) {
		t.Errorf("err = %v, want ErrMalformedJSON", err)
	}
	if _, err := FromPaste(minimalPlan); err != nil {
		t.Errorf("FromPaste: %v", err)
	}
}

// TestChannelsAgree verifies that file and paste channels reach the same
// verdict for the same payload.
func TestChannelsAgree(t *testing.T) {
	payloads := []string{
		minimalPlan,
		`{"metadata":{}}`,
		`{"metadata":{}, "users":[], "currentUserId":"u1"}`,
		`not json at all`,
	}
	for _, p := range payloads {
		_, fileErr := FromFile("p.json", "", strings.NewReader(p))
		_, pasteErr := FromPaste(p)
		if KindName(fileErr) != KindName(pasteErr) {
			t.Errorf("payload %q: file=%v paste=%v", p, fileErr, pasteErr)
		}
	}
}

// TestMessage verifies the user-facing text for each rejection kind.
func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		kind string
		want string
	}{
		{reject(ErrMalformedJSON, "x"), "MalformedJSON", "Invalid JSON format"},
		{reject(ErrInvalidSchema, "x"), "InvalidSchema", "Invalid workout plan format"},
		{reject(ErrUnsupportedFile, "x"), "UnsupportedFile", "valid JSON file"},
		{reject(ErrEmptyInput, "x"), "EmptyInput", "paste JSON content"},
		{errors.New("other"), "", "Import failed"},
	}
	for _, tt := range tests {
		if got := KindName(tt.err); got != tt.kind {
			t.Errorf("KindName(%v) = %q, want %q", tt.err, got, tt.kind)
		}
		if got := Message(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("Message(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}

// TestImporterAppliesAccepted verifies that accepted imports reach the store,
// rejected ones do not, and both are counted.
func TestImporterAppliesAccepted(t *testing.T) {
	ctx := context.Background()
	target := &recordingUpdater{}
	m := metrics.New()
	imp := New(target, logging.Discard(), m)

	if _, err := imp.ImportPaste(ctx, `{"metadata":{}}`); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
	if _, err := imp.ImportFile(ctx, "a.csv", "text/csv", strings.NewReader("")); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("err = %v, want ErrUnsupportedFile", err)
	}
	if len(target.plans) != 0 {
		t.Fatalf("rejected imports reached the store")
	}

	plan, err := imp.ImportFile(ctx, "plan.json", "application/json", strings.NewReader(minimalPlan))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(target.plans) != 1 || target.plans[0] != plan {
		t.Fatalf("store received %d plans", len(target.plans))
	}

	expected := `
# HELP workoutplan_imports_total Import attempts by channel and result (accepted or rejection kind).
# TYPE workoutplan_imports_total counter
workoutplan_imports_total{channel="file",result="UnsupportedFile"} 1
workoutplan_imports_total{channel="file",result="accepted"} 1
workoutplan_imports_total{channel="paste",result="InvalidSchema"} 1
`
	if err := testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "workoutplan_imports_total"); err != nil {
		t.Error(err)
	}
}
