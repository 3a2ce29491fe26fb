package importer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/claude/workoutplan/internal/models"
	"github.com/google/go-cmp/cmp"
)

// TestValidate covers the ordered structural checks, including the shallow
// acceptance boundary where person and workouts are empty objects.
func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind error
		wantMsg  string
	}{
		{
			name: "minimal shallow document accepted",
			raw:  `{"metadata":{}, "users":[{"id":"u1","person":{},"workouts":{}}], "currentUserId":"u1"}`,
		},
		{
			name: "dangling currentUserId accepted",
			raw:  `{"metadata":{},"users":[{"id":"u1","person":{},"workouts":{}}],"currentUserId":"ghost"}`,
		},
		{
			name: "unknown fields ignored",
			raw:  `{"metadata":{"extra":1},"users":[{"id":"u1","person":{},"workouts":{},"notes":"x"}],"currentUserId":"u1","version":2}`,
		},
		{name: "not json", raw: "not json at all", wantKind: ErrMalformedJSON},
		{name: "truncated", raw: `{"metadata":{`, wantKind: ErrMalformedJSON},
		{name: "trailing garbage", raw: `{} {}`, wantKind: ErrMalformedJSON},
		{name: "empty", raw: ``, wantKind: ErrMalformedJSON},
		{name: "null", raw: `null`, wantKind: ErrInvalidSchema, wantMsg: "object"},
		{name: "array", raw: `[]`, wantKind: ErrInvalidSchema, wantMsg: "object"},
		{name: "string", raw: `"plan"`, wantKind: ErrInvalidSchema, wantMsg: "object"},
		{name: "missing users", raw: `{"metadata":{}}`, wantKind: ErrInvalidSchema, wantMsg: `"users"`},
		{name: "missing metadata", raw: `{"users":[{"id":"u1","person":{},"workouts":{}}],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"metadata"`},
		{name: "null metadata", raw: `{"metadata":null,"users":[],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"metadata"`},
		{name: "metadata array", raw: `{"metadata":[],"users":[],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"metadata"`},
		{name: "empty users", raw: `{"metadata":{}, "users":[], "currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: "at least one"},
		{name: "users object", raw: `{"metadata":{},"users":{},"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"users"`},
		{name: "missing currentUserId", raw: `{"metadata":{},"users":[{"id":"u1","person":{},"workouts":{}}]}`, wantKind: ErrInvalidSchema, wantMsg: "currentUserId"},
		{name: "empty currentUserId", raw: `{"metadata":{},"users":[{"id":"u1","person":{},"workouts":{}}],"currentUserId":""}`, wantKind: ErrInvalidSchema, wantMsg: "currentUserId"},
		{name: "numeric currentUserId", raw: `{"metadata":{},"users":[{"id":"u1","person":{},"workouts":{}}],"currentUserId":1}`, wantKind: ErrInvalidSchema, wantMsg: "currentUserId"},
		{name: "first user not object", raw: `{"metadata":{},"users":["u1"],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: "first user"},
		{name: "first user empty id", raw: `{"metadata":{},"users":[{"id":"","person":{},"workouts":{}}],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"id"`},
		{name: "first user null person", raw: `{"metadata":{},"users":[{"id":"u1","person":null,"workouts":{}}],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"person"`},
		{name: "first user no workouts", raw: `{"metadata":{},"users":[{"id":"u1","person":{}}],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"workouts"`},
		{name: "first user false workouts", raw: `{"metadata":{},"users":[{"id":"u1","person":{},"workouts":false}],"currentUserId":"u1"}`, wantKind: ErrInvalidSchema, wantMsg: `"workouts"`},
		{
			name:     "nested value of wrong type",
			raw:      `{"metadata":{},"users":[{"id":"u1","person":{"age":"thirty"},"workouts":{}}],"currentUserId":"u1"}`,
			wantKind: ErrInvalidSchema,
			wantMsg:  "age",
		},
		{
			name:     "exercises not an array",
			raw:      `{"metadata":{},"users":[{"id":"u1","person":{},"workouts":{"monday":{"exercises":"none"}}}],"currentUserId":"u1"}`,
			wantKind: ErrInvalidSchema,
			wantMsg:  "exercises",
		},
		{
			name:     "numeric id passes presence but not decode",
			raw:      `{"metadata":{},"users":[{"id":7,"person":{},"workouts":{}}],"currentUserId":"u1"}`,
			wantKind: ErrInvalidSchema,
			wantMsg:  "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Validate([]byte(tt.raw))
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("unexpected rejection: %v", err)
				}
				if plan == nil || len(plan.Users) == 0 {
					t.Fatalf("accepted plan has no users: %+v", plan)
				}
				return
			}
			if plan != nil {
				t.Errorf("rejected payload returned a plan")
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
			var rej *Rejection
			if !errors.As(err, &rej) {
				t.Fatalf("err %T is not a *Rejection", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

// TestValidateCheckOrder verifies that the first failing check decides the
// message when several checks would fail.
func TestValidateCheckOrder(t *testing.T) {
	_, err := Validate([]byte(`{"metadata":[],"users":[],"currentUserId":""}`))
	if err == nil || !strings.Contains(err.Error(), `"metadata"`) {
		t.Errorf("err = %v, want metadata check to fail first", err)
	}
}

// TestPresent verifies which JSON values count as supplied.
func TestPresent(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{json.Number("0"), false},
		{json.Number("0.0"), false},
		{json.Number("3"), true},
		{map[string]any{}, true},
		{[]any{}, true},
	}
	for _, tt := range tests {
		if got := present(tt.v); got != tt.want {
			t.Errorf("present(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func fakeDay(f *gofakeit.Faker, label string) models.WorkoutDay {
	d := models.WorkoutDay{
		Day:      label,
		Type:     f.Word(),
		Focus:    f.Sentence(3),
		Warmup:   f.Sentence(6),
		Cooldown: f.Sentence(6),
	}
	for i := 0; i < f.Number(1, 4); i++ {
		d.Exercises = append(d.Exercises, models.Exercise{
			Name:    f.Name(),
			Sets:    f.Sentence(2),
			Details: []string{f.Sentence(4), f.Sentence(5)},
		})
	}
	return d
}

func fakeTip(f *gofakeit.Faker) models.TipData {
	return models.TipData{Title: f.Word(), Points: []string{f.Sentence(4), f.Sentence(4)}}
}

func fakeUser(f *gofakeit.Faker) models.UserProfile {
	return models.UserProfile{
		ID: "user-" + f.UUID(),
		Person: models.Person{
			Name:         f.Name(),
			Age:          f.Number(16, 90),
			Height:       models.Measurement{Value: f.Float64Range(140, 210), Unit: f.RandomString([]string{models.UnitCentimeters, models.UnitFeet, models.UnitInches})},
			Weight:       models.Measurement{Value: f.Float64Range(40, 150), Unit: f.RandomString([]string{models.UnitKilograms, models.UnitPounds})},
			Goal:         f.Sentence(5),
			FitnessLevel: models.FitnessLevel(f.RandomString([]string{"Beginner", "Intermediate", "Advanced"})),
			Experience:   f.Sentence(4),
		},
		Workouts: models.Workouts{
			Monday:    fakeDay(f, "MONDAY"),
			Tuesday:   fakeDay(f, "TUESDAY"),
			Wednesday: fakeDay(f, "WEDNESDAY"),
			Thursday:  fakeDay(f, "THURSDAY"),
			Friday:    fakeDay(f, "FRIDAY"),
			Saturday:  fakeDay(f, "SATURDAY"),
		},
		Cardio:    []models.CardioData{{Name: f.Word(), Schedule: f.Sentence(2), Duration: f.Sentence(2), Equipment: f.Word(), Details: []string{f.Sentence(3)}}},
		Core:      []models.CoreData{{Name: f.Word(), Schedule: f.Sentence(2), Description: f.Sentence(6), Details: []string{f.Sentence(3)}}},
		Equipment: []models.EquipmentData{{Name: f.Word(), Tooltip: f.Sentence(5)}},
		Tips: models.Tips{
			ProgressiveOverload: fakeTip(f),
			Nutrition:           fakeTip(f),
			Recovery:            fakeTip(f),
		},
		RestDay: models.RestDay{Day: "SUNDAY", Title: f.Sentence(2), Options: []string{f.Sentence(3)}},
	}
}

// TestValidateRoundTrip verifies that any well-formed plan, once serialized,
// is accepted and decodes back to an equal document.
func TestValidateRoundTrip(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 25; i++ {
		plan := &models.WorkoutPlan{
			Metadata: models.Metadata{
				Title:       f.Sentence(3),
				Subtitle:    f.Sentence(5),
				Version:     f.AppVersion(),
				LastUpdated: f.Date().Format("2006-01-02"),
			},
		}
		for j := 0; j < f.Number(1, 4); j++ {
			plan.Users = append(plan.Users, fakeUser(f))
		}
		plan.CurrentUserID = plan.Users[f.Number(0, len(plan.Users)-1)].ID

		raw, err := json.Marshal(plan)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Validate(raw)
		if err != nil {
			t.Fatalf("iteration %d: rejected: %v", i, err)
		}
		if diff := cmp.Diff(plan, got); diff != "" {
			t.Fatalf("iteration %d: round trip mismatch (-want +got):\n%s", i, diff)
		}
	}
}
