package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultUserName is used when a new profile is created without a name.
const DefaultUserName = "New User"

// NewUserID returns an id of the form user-<unix-ms>-<9 random chars>.
func NewUserID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("user-%d-%s", now.UnixMilli(), suffix)
}

// NewUser builds a profile from template with a fresh id and the given name.
// An empty name falls back to DefaultUserName.
func NewUser(template UserProfile, name string, now time.Time) UserProfile {
	u := template.Clone()
	u.ID = NewUserID(now)
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultUserName
	}
	u.Person.Name = name
	return u
}
