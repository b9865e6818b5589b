package http

import (
	"strconv"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	localTimeLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

// parseTime accepts RFC 3339 or a local date-time without offset interpreted in loc
func parseTime(name, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, goerr.New("query parameter is required",
			goerr.V("parameter", name),
			goerr.T(model.ErrTagInvalidInput))
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "time must be RFC 3339 or YYYY-MM-DDTHH:MM:SS",
			goerr.V("parameter", name),
			goerr.V("value", value),
			goerr.T(model.ErrTagInvalidInput))
	}
	return t, nil
}

// parseDate parses YYYY-MM-DD in loc. An empty value means today.
func parseDate(value string, loc *time.Location, now time.Time) (time.Time, error) {
	if value == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "date must be YYYY-MM-DD",
			goerr.V("value", value),
			goerr.T(model.ErrTagInvalidInput))
	}
	return t, nil
}

// parseLimit parses an optional positive integer; empty means 0
func parseLimit(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, goerr.New("limit must be a non-negative integer",
			goerr.V("value", value),
			goerr.T(model.ErrTagInvalidInput))
	}
	return n, nil
}
