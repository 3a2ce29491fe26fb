package models

// Clone returns a deep copy of the plan. The store hands out clones so that
// no two components share a mutable document.
func (p *WorkoutPlan) Clone() *WorkoutPlan {
	if p == nil {
		return nil
	}
	c := &WorkoutPlan{
		Metadata:      p.Metadata,
		CurrentUserID: p.CurrentUserID,
	}
	if p.Users != nil {
		c.Users = make([]UserProfile, len(p.Users))
		for i := range p.Users {
			c.Users[i] = p.Users[i].Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the profile.
func (u UserProfile) Clone() UserProfile {
	c := u
	c.Workouts = Workouts{
		Monday:    u.Workouts.Monday.clone(),
		Tuesday:   u.Workouts.Tuesday.clone(),
		Wednesday: u.Workouts.Wednesday.clone(),
		Thursday:  u.Workouts.Thursday.clone(),
		Friday:    u.Workouts.Friday.clone(),
		Saturday:  u.Workouts.Saturday.clone(),
	}
	if u.Cardio != nil {
		c.Cardio = make([]CardioData, len(u.Cardio))
		for i, cd := range u.Cardio {
			cd.Details = cloneStrings(cd.Details)
			c.Cardio[i] = cd
		}
	}
	if u.Core != nil {
		c.Core = make([]CoreData, len(u.Core))
		for i, cd := range u.Core {
			cd.Details = cloneStrings(cd.Details)
			c.Core[i] = cd
		}
	}
	if u.Equipment != nil {
		c.Equipment = append([]EquipmentData(nil), u.Equipment...)
	}
	c.Tips.ProgressiveOverload.Points = cloneStrings(u.Tips.ProgressiveOverload.Points)
	c.Tips.Nutrition.Points = cloneStrings(u.Tips.Nutrition.Points)
	c.Tips.Recovery.Points = cloneStrings(u.Tips.Recovery.Points)
	c.RestDay.Options = cloneStrings(u.RestDay.Options)
	return c
}

func (d WorkoutDay) clone() WorkoutDay {
	c := d
	if d.Exercises != nil {
		c.Exercises = make([]Exercise, len(d.Exercises))
		for i, ex := range d.Exercises {
			ex.Details = cloneStrings(ex.Details)
			c.Exercises[i] = ex
		}
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
