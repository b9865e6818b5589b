package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Window is a closed time interval [From, To]
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow creates a window and rejects reversed bounds
func NewWindow(from, to time.Time) (Window, error) {
	if to.Before(from) {
		return Window{}, goerr.New("window end is before window start",
			goerr.V("from", from),
			goerr.V("to", to),
			goerr.T(ErrTagInvalidWindow))
	}
	return Window{From: from, To: to}, nil
}

// DayWindow returns the window covering date from 00:00:00 to 23:59:59 in loc
func DayWindow(date time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := date.In(loc).Date()
	return Window{
		From: time.Date(y, m, d, 0, 0, 0, 0, loc),
		To:   time.Date(y, m, d, 23, 59, 59, 0, loc),
	}
}

// Minutes returns the whole number of minutes in the window, truncated
func (w Window) Minutes() int64 {
	return minutesBetween(w.From, w.To)
}

// Contains reports whether t lies in the window, both bounds inclusive
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

func minutesBetween(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Minute)
}
