package scoring

// Tier maps everything up to and including MaxHours late onto one fixed
// penalty percentage. Boundaries are inclusive: exactly 48.0 hours sits
// in the <=48 tier, 48.0001 falls through to the next one.
type Tier struct {
	MaxHours float64 `toml:"max_hours"`
	Penalty  int     `toml:"penalty"`
}

type Schedule struct {
	StandardTiers  []Tier `toml:"standard_tiers"`
	SpecialTiers   []Tier `toml:"special_tiers"`
	OverduePenalty int    `toml:"overdue_penalty"`
}

// DefaultSchedule is the course policy: a 48-hour grace window for
// regular students, a stricter first step for students who already
// received extra time through an extension, and a hard 100% once a
// submission is more than a week overdue.
func DefaultSchedule() *Schedule {
	return &Schedule{
		StandardTiers: []Tier{
			{MaxHours: 48, Penalty: 0},
			{MaxHours: 72, Penalty: 15},
			{MaxHours: 96, Penalty: 20},
			{MaxHours: 120, Penalty: 25},
			{MaxHours: 144, Penalty: 30},
			{MaxHours: 168, Penalty: 35},
		},
		SpecialTiers: []Tier{
			{MaxHours: 24, Penalty: 5},
			{MaxHours: 48, Penalty: 10},
			{MaxHours: 72, Penalty: 15},
			{MaxHours: 96, Penalty: 20},
			{MaxHours: 120, Penalty: 25},
			{MaxHours: 144, Penalty: 30},
			{MaxHours: 168, Penalty: 35},
		},
		OverduePenalty: 100,
	}
}

// Penalty returns the percentage deducted for a submission hoursLate
// hours past its deadline. Pure function, no side effects.
func (s *Schedule) Penalty(hoursLate float64, special bool) int {
	if hoursLate <= 0 {
		return 0
	}

	tiers := s.StandardTiers
	if special {
		tiers = s.SpecialTiers
	}

	for _, tier := range tiers {
		if hoursLate <= tier.MaxHours {
			return tier.Penalty
		}
	}

	return s.OverduePenalty
}
