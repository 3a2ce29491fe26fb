package importer

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/claude/workoutplan/internal/models"
)

// check is one structural predicate over the generically decoded payload.
// It returns "" when the payload passes, otherwise the reason it failed.
type check struct {
	name string
	fn   func(doc any) string
}

// checks run in order; each assumes the previous ones passed. Only the top
// level and the first user are inspected. Nested workout, cardio, core,
// equipment and tips content is accepted as-is.
var checks = []check{
	{"object", func(doc any) string {
		if _, ok := doc.(map[string]any); !ok {
			return "top-level value must be an object"
		}
		return ""
	}},
	{"metadata", func(doc any) string {
		if _, ok := doc.(map[string]any)["metadata"].(map[string]any); !ok {
			return `"metadata" must be an object`
		}
		return ""
	}},
	{"users", func(doc any) string {
		users, ok := doc.(map[string]any)["users"].([]any)
		if !ok {
			return `"users" must be an array`
		}
		if len(users) == 0 {
			return `"users" must contain at least one user`
		}
		return ""
	}},
	{"currentUserId", func(doc any) string {
		if id, ok := doc.(map[string]any)["currentUserId"].(string); !ok || id == "" {
			return `"currentUserId" must be a non-empty string`
		}
		return ""
	}},
	{"first user", func(doc any) string {
		user, ok := doc.(map[string]any)["users"].([]any)[0].(map[string]any)
		if !ok {
			return "first user must be an object"
		}
		for _, field := range []string{"id", "person", "workouts"} {
			if !present(user[field]) {
				return `first user is missing "` + field + `"`
			}
		}
		return ""
	}},
}

// present reports whether v counts as a supplied value: anything except
// null, false, zero and the empty string. Empty objects and arrays count.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	}
	return true
}

// Validate decides whether raw may replace the working document. It returns
// the decoded plan, or a *Rejection with kind ErrMalformedJSON or
// ErrInvalidSchema. Validate has no side effects.
func Validate(raw []byte) (*models.WorkoutPlan, error) {
	if !json.Valid(raw) {
		return nil, reject(ErrMalformedJSON, "payload is not valid JSON")
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, reject(ErrMalformedJSON, "%v", err)
	}

	for _, c := range checks {
		if reason := c.fn(doc); reason != "" {
			return nil, reject(ErrInvalidSchema, "%s", reason)
		}
	}

	var plan models.WorkoutPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, reject(ErrInvalidSchema, "field %q: expected %s, got JSON %s",
				typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return nil, reject(ErrInvalidSchema, "%v", err)
	}
	return &plan, nil
}
