package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/workoutplan/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDeleteActiveUser = errors.New("cannot delete the active user")
	ErrDeleteLastUser   = errors.New("cannot delete the only user")
)

// SaveActiveUser replaces the active user's profile. The stored profile keeps
// the active user's id whatever id the caller sent.
func (s *Store) SaveActiveUser(ctx context.Context, profile models.UserProfile) error {
	return s.Apply(ctx, func(p *models.WorkoutPlan) error {
		i := p.ActiveUserIndex()
		if i < 0 {
			return ErrUserNotFound
		}
		profile = profile.Clone()
		profile.ID = p.Users[i].ID
		p.Users[i] = profile
		return nil
	})
}

// SaveMetadata replaces the plan metadata.
func (s *Store) SaveMetadata(ctx context.Context, md models.Metadata) error {
	return s.Apply(ctx, func(p *models.WorkoutPlan) error {
		p.Metadata = md
		return nil
	})
}

// SwitchUser makes id the active user.
func (s *Store) SwitchUser(ctx context.Context, id string) error {
	return s.Apply(ctx, func(p *models.WorkoutPlan) error {
		if p.UserIndex(id) < 0 {
			return fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		p.CurrentUserID = id
		return nil
	})
}

// AddUser appends a profile built from the user template and makes it active.
func (s *Store) AddUser(ctx context.Context, name string) (models.UserProfile, error) {
	var added models.UserProfile
	err := s.Apply(ctx, func(p *models.WorkoutPlan) error {
		added = models.NewUser(s.newUser(), name, s.now())
		p.Users = append(p.Users, added)
		p.CurrentUserID = added.ID
		return nil
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	s.log.Info("user added", "id", added.ID, "name", added.Person.Name)
	return added.Clone(), nil
}

// DeleteUser removes a profile. The active user and the last remaining user
// cannot be deleted.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.Apply(ctx, func(p *models.WorkoutPlan) error {
		i := p.UserIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		if len(p.Users) == 1 {
			return ErrDeleteLastUser
		}
		if i == p.ActiveUserIndex() {
			return ErrDeleteActiveUser
		}
		p.Users = append(p.Users[:i], p.Users[i+1:]...)
		return nil
	})
	if err == nil {
		s.log.Info("user deleted", "id", id)
	}
	return err
}
