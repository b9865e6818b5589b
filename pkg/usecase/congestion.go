package usecase

import (
	"context"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Congestion turns stored timelines into congestion reports
type Congestion struct {
	timeline  interfaces.TimelineProvider
	summaries interfaces.ShiftSummaryProvider
	loc       *time.Location
}

// NewCongestion creates a new Congestion instance.
// loc is the zone calendar days are cut in; nil means time.Local.
func NewCongestion(timeline interfaces.TimelineProvider, summaries interfaces.ShiftSummaryProvider, loc *time.Location) *Congestion {
	if loc == nil {
		loc = time.Local
	}
	return &Congestion{
		timeline:  timeline,
		summaries: summaries,
		loc:       loc,
	}
}

// AggregateForWindow reports the shift figures of every counter together with
// its most severe congestion block in [from, to]
func (uc *Congestion) AggregateForWindow(ctx context.Context, from, to time.Time) ([]*model.AggregationResult, error) {
	window, err := model.NewWindow(from, to)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid aggregation window")
	}

	summaries, err := uc.summaries.FetchShiftSummaries(ctx, window.From, window.To)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch shift summaries",
			goerr.V("from", window.From),
			goerr.V("to", window.To))
	}

	byCounter, err := uc.fetchGrouped(ctx, window)
	if err != nil {
		return nil, err
	}

	results := make([]*model.AggregationResult, 0, len(summaries))
	for _, summary := range summaries {
		samples := byCounter[summary.CounterName]
		blocks := model.BuildCongestionBlocks(samples)
		peak := model.SelectPeakCongestion(blocks, samples)
		results = append(results, model.NewAggregationResult(summary, peak))
	}

	ctxlog.From(ctx).Debug("Aggregated congestion window",
		"from", window.From,
		"to", window.To,
		"counters", len(results),
	)

	return results, nil
}

// AggregateForDay runs AggregateForWindow over the calendar day of date
func (uc *Congestion) AggregateForDay(ctx context.Context, date time.Time) ([]*model.AggregationResult, error) {
	day := model.DayWindow(date, uc.loc)
	return uc.AggregateForWindow(ctx, day.From, day.To)
}

// ComputeSessionCongestion reports the weighted congestion index of every
// counter with at least one sample in [from, to], ordered by counter name
func (uc *Congestion) ComputeSessionCongestion(ctx context.Context, from, to time.Time) ([]*model.SessionCongestion, error) {
	window, err := model.NewWindow(from, to)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid session window")
	}

	sessionMinutes := window.Minutes()
	if sessionMinutes <= 0 {
		return nil, goerr.New("session window must span at least one minute",
			goerr.V("from", window.From),
			goerr.V("to", window.To),
			goerr.T(model.ErrTagInvalidWindow))
	}

	samples, err := uc.fetchSamples(ctx, window)
	if err != nil {
		return nil, err
	}

	order, byCounter := model.GroupSamplesByCounter(samples)
	results := make([]*model.SessionCongestion, 0, len(order))
	for _, counter := range order {
		session, err := model.NewSessionCongestion(counter, byCounter[counter], sessionMinutes)
		if err != nil {
			return nil, err
		}
		results = append(results, session)
	}

	ctxlog.From(ctx).Debug("Computed session congestion",
		"from", window.From,
		"to", window.To,
		"sessionMinutes", sessionMinutes,
		"counters", len(results),
	)

	return results, nil
}

func (uc *Congestion) fetchGrouped(ctx context.Context, window model.Window) (map[types.CounterName][]model.Sample, error) {
	samples, err := uc.fetchSamples(ctx, window)
	if err != nil {
		return nil, err
	}
	_, byCounter := model.GroupSamplesByCounter(samples)
	return byCounter, nil
}

func (uc *Congestion) fetchSamples(ctx context.Context, window model.Window) ([]model.Sample, error) {
	samples, err := uc.timeline.FetchTimeline(ctx, window.From, window.To)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch timeline",
			goerr.V("from", window.From),
			goerr.V("to", window.To))
	}

	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return nil, goerr.Wrap(err, "timeline contains an invalid sample", goerr.V("index", i))
		}
	}

	return samples, nil
}
