package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ShiftWindow is a daily service period expressed in wall-clock time
type ShiftWindow struct {
	Name       string `yaml:"name"`
	Start      string `yaml:"start"`       // HH:MM or HH:MM:SS
	End        string `yaml:"end"`         // HH:MM or HH:MM:SS
	IncludeEnd bool   `yaml:"include_end"` // End is inclusive when true
}

// Validate validates the shift window
func (w *ShiftWindow) Validate() error {
	if w.Name == "" {
		return goerr.New("shift name is required")
	}
	start, err := parseClock(w.Start)
	if err != nil {
		return goerr.Wrap(err, "invalid shift start", goerr.V("shift", w.Name))
	}
	end, err := parseClock(w.End)
	if err != nil {
		return goerr.Wrap(err, "invalid shift end", goerr.V("shift", w.Name))
	}
	if end <= start {
		return goerr.New("shift must end after it starts",
			goerr.V("shift", w.Name),
			goerr.V("start", w.Start),
			goerr.V("end", w.End))
	}
	return nil
}

// Bounds returns start and end as offsets from midnight
func (w *ShiftWindow) Bounds() (time.Duration, time.Duration) {
	start, _ := parseClock(w.Start)
	end, _ := parseClock(w.End)
	return start, end
}

// Contains reports whether a time of day falls inside the shift
func (w *ShiftWindow) Contains(timeOfDay time.Duration) bool {
	start, end := w.Bounds()
	if timeOfDay < start {
		return false
	}
	if w.IncludeEnd {
		return timeOfDay <= end
	}
	return timeOfDay < end
}

// ShiftsConfig represents the daily service shifts used for footfall summaries
type ShiftsConfig struct {
	Timezone string        `yaml:"timezone"`
	Shifts   []ShiftWindow `yaml:"shifts"`

	// zone resolved by Validate for Timezone == locName
	loc     *time.Location
	locName string
}

// DefaultShiftsConfig returns the breakfast, lunch and evening service shifts
func DefaultShiftsConfig() *ShiftsConfig {
	return &ShiftsConfig{
		Shifts: []ShiftWindow{
			{Name: "morning", Start: "06:55", End: "11:25"},
			{Name: "afternoon", Start: "11:25", End: "15:25"},
			{Name: "evening", Start: "15:35", End: "19:00", IncludeEnd: true},
		},
	}
}

// Validate validates the shifts configuration
func (c *ShiftsConfig) Validate() error {
	if len(c.Shifts) == 0 {
		return goerr.New("at least one shift is required")
	}

	loc := time.Local
	if c.Timezone != "" {
		resolved, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return goerr.Wrap(err, "invalid timezone", goerr.V("timezone", c.Timezone))
		}
		loc = resolved
	}

	names := make(map[string]bool)
	for i, shift := range c.Shifts {
		if err := shift.Validate(); err != nil {
			return goerr.Wrap(err, "invalid shift at index",
				goerr.V("index", i),
				goerr.V("name", shift.Name))
		}
		if names[shift.Name] {
			return goerr.New("duplicate shift name", goerr.V("name", shift.Name))
		}
		names[shift.Name] = true
	}

	c.loc, c.locName = loc, c.Timezone
	return nil
}

// Location returns the time zone shift boundaries are evaluated in. The zone
// is looked up once by Validate; unvalidated configs resolve it on every call.
func (c *ShiftsConfig) Location() *time.Location {
	if c.loc != nil && c.locName == c.Timezone {
		return c.loc
	}
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// TimeOfDay returns the wall-clock offset from midnight of t in the configured zone
func (c *ShiftsConfig) TimeOfDay(t time.Time) time.Duration {
	local := t.In(c.Location())
	return time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
}

// ShiftIndex returns the index of the first shift containing t, or -1
func (c *ShiftsConfig) ShiftIndex(t time.Time) int {
	tod := c.TimeOfDay(t)
	for i := range c.Shifts {
		if c.Shifts[i].Contains(tod) {
			return i
		}
	}
	return -1
}

func parseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, goerr.New("clock time must be HH:MM or HH:MM:SS", goerr.V("value", s))
}
