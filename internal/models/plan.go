package models

// WorkoutPlan is the root document persisted by the store and exchanged
// through import and export.
type WorkoutPlan struct {
	Metadata      Metadata      `json:"metadata"`
	Users         []UserProfile `json:"users"`
	CurrentUserID string        `json:"currentUserId"`
}

// Metadata describes the plan as a whole.
type Metadata struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
}

// UserProfile is one person's complete plan.
type UserProfile struct {
	ID        string          `json:"id"`
	Person    Person          `json:"person"`
	Workouts  Workouts        `json:"workouts"`
	Cardio    []CardioData    `json:"cardio"`
	Core      []CoreData      `json:"core"`
	Equipment []EquipmentData `json:"equipment"`
	Tips      Tips            `json:"tips"`
	RestDay   RestDay         `json:"restDay"`
}

// Person is the biographical part of a profile.
type Person struct {
	Name         string       `json:"name"`
	Age          int          `json:"age"`
	Height       Measurement  `json:"height"`
	Weight       Measurement  `json:"weight"`
	Goal         string       `json:"goal"`
	FitnessLevel FitnessLevel `json:"fitnessLevel"`
	Experience   string       `json:"experience"`
}

// Measurement is a value with its unit, e.g. 175 cm or 165 lbs.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Height and weight units.
const (
	UnitCentimeters = "cm"
	UnitFeet        = "ft"
	UnitInches      = "in"
	UnitKilograms   = "kg"
	UnitPounds      = "lbs"
)

// FitnessLevel is one of Beginner, Intermediate or Advanced.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "Beginner"
	FitnessIntermediate FitnessLevel = "Intermediate"
	FitnessAdvanced     FitnessLevel = "Advanced"
)

// Workouts holds one WorkoutDay per training weekday, Monday through Saturday.
type Workouts struct {
	Monday    WorkoutDay `json:"monday"`
	Tuesday   WorkoutDay `json:"tuesday"`
	Wednesday WorkoutDay `json:"wednesday"`
	Thursday  WorkoutDay `json:"thursday"`
	Friday    WorkoutDay `json:"friday"`
	Saturday  WorkoutDay `json:"saturday"`
}

// WorkoutDay is a single day of the weekly schedule.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Type      string     `json:"type"`
	Focus     string     `json:"focus"`
	Warmup    string     `json:"warmup"`
	Cooldown  string     `json:"cooldown"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is one movement within a WorkoutDay.
type Exercise struct {
	Name    string   `json:"name"`
	Sets    string   `json:"sets"`
	Details []string `json:"details"`
}

// CardioData describes a cardio block.
type CardioData struct {
	Name      string   `json:"name"`
	Schedule  string   `json:"schedule"`
	Duration  string   `json:"duration"`
	Equipment string   `json:"equipment"`
	Details   []string `json:"details"`
}

// CoreData describes a core training block.
type CoreData struct {
	Name        string   `json:"name"`
	Schedule    string   `json:"schedule"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// EquipmentData is a piece of equipment with a short explanation.
type EquipmentData struct {
	Name    string `json:"name"`
	Tooltip string `json:"tooltip"`
}

// Tips holds the three fixed advice sections.
type Tips struct {
	ProgressiveOverload TipData `json:"progressiveOverload"`
	Nutrition           TipData `json:"nutrition"`
	Recovery            TipData `json:"recovery"`
}

// TipData is a titled list of points.
type TipData struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// RestDay describes the weekly rest day.
type RestDay struct {
	Day     string   `json:"day"`
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// ActiveUser returns the user selected by CurrentUserID, falling back to the
// first user when the id matches nothing. It returns nil only for a plan
// without users.
func (p *WorkoutPlan) ActiveUser() *UserProfile {
	i := p.ActiveUserIndex()
	if i < 0 {
		return nil
	}
	return &p.Users[i]
}

// ActiveUserIndex is the index of ActiveUser in Users, or -1 when there are no users.
func (p *WorkoutPlan) ActiveUserIndex() int {
	if p == nil || len(p.Users) == 0 {
		return -1
	}
	if i := p.UserIndex(p.CurrentUserID); i >= 0 {
		return i
	}
	return 0
}

// UserIndex returns the index of the user with the given id, or -1.
func (p *WorkoutPlan) UserIndex(id string) int {
	for i := range p.Users {
		if p.Users[i].ID == id {
			return i
		}
	}
	return -1
}
