package repository_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/bmsedge/queuepulse/pkg/repository"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func utcShifts() *model.ShiftsConfig {
	cfg := model.DefaultShiftsConfig()
	cfg.Timezone = "UTC"
	return cfg
}

// uniqueNames keeps subtests apart when they share a backing store
func uniqueNames(prefix string) (types.CounterName, types.DeviceID) {
	n := time.Now().UnixNano()
	return types.CounterName(fmt.Sprintf("%s-counter-%d", prefix, n)),
		types.DeviceID(fmt.Sprintf("%s-device-%d", prefix, n))
}

func newReading(t *testing.T, device types.DeviceID, counter types.CounterName, ts time.Time, occupancy, inCount int64, wait float64) *model.Reading {
	id, err := types.NewReadingID()
	gt.NoError(t, err).Required()
	return &model.Reading{
		ID:              id,
		DeviceID:        device,
		CounterName:     counter,
		Occupancy:       occupancy,
		InCount:         inCount,
		WaitTimeMinutes: wait,
		Timestamp:       ts,
		CreatedAt:       ts,
	}
}

func samplesOf(samples []model.Sample, counter types.CounterName) []model.Sample {
	var out []model.Sample
	for _, s := range samples {
		if s.CounterName == counter {
			out = append(out, s)
		}
	}
	return out
}

func summaryOf(summaries []model.ShiftSummary, counter types.CounterName) *model.ShiftSummary {
	for i := range summaries {
		if summaries[i].CounterName == counter {
			return &summaries[i]
		}
	}
	return nil
}

func testRepository(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("SaveReading and LatestByCounter", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counter, device := uniqueNames("save")
		older := newReading(t, device, counter, day.Add(9*time.Hour), 3, 10, 2.5)
		newer := newReading(t, device, counter, day.Add(9*time.Hour+time.Minute), 4, 12, 3)

		gt.NoError(t, repo.SaveReading(ctx, newer))
		gt.NoError(t, repo.SaveReading(ctx, older))

		latest, err := repo.LatestByCounter(ctx, counter)
		gt.NoError(t, err).Required()
		gt.Equal(t, latest.ID, newer.ID)
		gt.Equal(t, latest.DeviceID, device)
		gt.Equal(t, latest.Occupancy, int64(4))
		gt.Equal(t, latest.InCount, int64(12))
		gt.Equal(t, latest.WaitTimeMinutes, 3.0)
		gt.True(t, latest.Timestamp.Equal(newer.Timestamp))
	})

	t.Run("SaveReading rejects invalid reading", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counter, _ := uniqueNames("invalid")
		r := newReading(t, "", counter, day, 1, 1, 1)

		err := repo.SaveReading(ctx, r)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))

		err = repo.SaveReading(ctx, nil)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
	})

	t.Run("LatestByCounter not found", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		counter, _ := uniqueNames("missing")
		_, err := repo.LatestByCounter(context.Background(), counter)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))
	})

	t.Run("ListByDevice and LatestByDevice", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counterA, device := uniqueNames("device-a")
		counterB, _ := uniqueNames("device-b")
		r1 := newReading(t, device, counterA, day.Add(10*time.Hour), 1, 1, 1)
		r2 := newReading(t, device, counterB, day.Add(10*time.Hour+2*time.Minute), 2, 2, 2)
		r3 := newReading(t, device, counterA, day.Add(10*time.Hour+time.Minute), 3, 3, 3)
		for _, r := range []*model.Reading{r1, r2, r3} {
			gt.NoError(t, repo.SaveReading(ctx, r)).Required()
		}

		list, err := repo.ListByDevice(ctx, device)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(list), 3)
		gt.Equal(t, list[0].ID, r2.ID)
		gt.Equal(t, list[1].ID, r3.ID)
		gt.Equal(t, list[2].ID, r1.ID)

		latest, err := repo.LatestByDevice(ctx, device)
		gt.NoError(t, err).Required()
		gt.Equal(t, latest.ID, r2.ID)

		_, missingDevice := uniqueNames("nobody")
		_, err = repo.LatestByDevice(ctx, missingDevice)
		gt.True(t, goerr.HasTag(err, model.ErrTagNotFound))
	})

	t.Run("FetchTimeline is ordered and inclusive", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counter, device := uniqueNames("timeline")
		from := day.Add(11 * time.Hour)
		to := from.Add(10 * time.Minute)

		readings := []*model.Reading{
			newReading(t, device, counter, to, 1, 1, 6),
			newReading(t, device, counter, from, 1, 1, 2),
			newReading(t, device, counter, from.Add(5*time.Minute), 1, 1, 4),
			newReading(t, device, counter, from.Add(-time.Minute), 1, 1, 9),
			newReading(t, device, counter, to.Add(time.Minute), 1, 1, 9),
		}
		for _, r := range readings {
			gt.NoError(t, repo.SaveReading(ctx, r)).Required()
		}

		all, err := repo.FetchTimeline(ctx, from, to)
		gt.NoError(t, err).Required()
		samples := samplesOf(all, counter)
		gt.Equal(t, len(samples), 3)
		gt.True(t, samples[0].Timestamp.Equal(from))
		gt.Equal(t, samples[0].WaitTimeMinutes, 2.0)
		gt.Equal(t, samples[1].WaitTimeMinutes, 4.0)
		gt.True(t, samples[2].Timestamp.Equal(to))
		gt.Equal(t, samples[2].WaitTimeMinutes, 6.0)
	})

	t.Run("FetchShiftSummaries", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counter, device := uniqueNames("shift")
		at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

		readings := []*model.Reading{
			newReading(t, device, counter, at(7, 0), 2, 10, 1),
			newReading(t, device, counter, at(8, 0), 6, 25, 4),
			newReading(t, device, counter, at(12, 0), 9, 40, 7.5),
			// between afternoon and evening shifts
			newReading(t, device, counter, at(15, 30), 50, 999, 30),
			newReading(t, device, counter, at(19, 0), 3, 5, 2),
			// after the evening shift
			newReading(t, device, counter, at(19, 1), 70, 999, 40),
		}
		for _, r := range readings {
			gt.NoError(t, repo.SaveReading(ctx, r)).Required()
		}

		summaries, err := repo.FetchShiftSummaries(ctx, day, at(23, 59))
		gt.NoError(t, err).Required()

		s := summaryOf(summaries, counter)
		gt.V(t, s).NotNil()
		gt.Equal(t, s.TotalCount, int64(25+40+5))
		gt.Equal(t, s.PeakQueue, int64(9))
		gt.Equal(t, s.PeakWaitTime, 7.5)
		gt.True(t, s.PeriodStart.Equal(at(7, 0)))
	})

	t.Run("ListRecent honors limit", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counter, device := uniqueNames("recent")
		base := time.Now().UTC().Add(time.Hour)
		var newest *model.Reading
		for i := 0; i < 3; i++ {
			newest = newReading(t, device, counter, base.Add(time.Duration(i)*time.Second), 1, 1, 1)
			gt.NoError(t, repo.SaveReading(ctx, newest)).Required()
		}

		recent, err := repo.ListRecent(ctx, 2)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(recent), 2)
		gt.Equal(t, recent[0].ID, newest.ID)
	})

	t.Run("Stats and DeleteAll", func(t *testing.T) {
		repo := newRepo(t)
		defer repo.Close()

		ctx := context.Background()
		counter, device := uniqueNames("stats")
		gt.NoError(t, repo.SaveReading(ctx, newReading(t, device, counter, day.Add(9*time.Hour), 1, 1, 1))).Required()
		gt.NoError(t, repo.SaveReading(ctx, newReading(t, device, counter, day.Add(9*time.Hour+time.Minute), 1, 1, 1))).Required()

		stats, err := repo.Stats(ctx)
		gt.NoError(t, err).Required()
		gt.True(t, stats.TotalReadings >= 2)
		gt.True(t, slices.Contains(stats.Counters, counter))
		gt.True(t, slices.Contains(stats.Devices, device))

		deleted, err := repo.DeleteAll(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, deleted, stats.TotalReadings)

		stats, err = repo.Stats(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, stats.TotalReadings, int64(0))
		gt.Equal(t, len(stats.Counters), 0)
	})
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, func(t *testing.T) interfaces.Repository {
		return repository.NewMemory(utcShifts())
	})
}

func TestSQLiteRepository(t *testing.T) {
	testRepository(t, func(t *testing.T) interfaces.Repository {
		path := filepath.Join(t.TempDir(), "data", "readings.db")
		repo, err := repository.NewSQLite(context.Background(), path, utcShifts())
		gt.NoError(t, err).Required()
		return repo
	})
}

func TestSQLiteInMemory(t *testing.T) {
	testRepository(t, func(t *testing.T) interfaces.Repository {
		repo, err := repository.NewSQLite(context.Background(), repository.MemoryDSN, utcShifts())
		gt.NoError(t, err).Required()
		return repo
	})
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "readings.db")

	repo, err := repository.NewSQLite(ctx, path, utcShifts())
	gt.NoError(t, err).Required()
	counter, device := uniqueNames("reopen")
	r := newReading(t, device, counter, time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), 1, 2, 3)
	gt.NoError(t, repo.SaveReading(ctx, r)).Required()
	gt.NoError(t, repo.Close())

	repo, err = repository.NewSQLite(ctx, path, utcShifts())
	gt.NoError(t, err).Required()
	defer repo.Close()

	latest, err := repo.LatestByCounter(ctx, counter)
	gt.NoError(t, err).Required()
	gt.Equal(t, latest.ID, r.ID)
}

func TestFirestoreRepository(t *testing.T) {
	// Skip test if Firestore test environment variables are not set
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	if projectID == "" || databaseID == "" {
		t.Skip("Skipping Firestore test: TEST_FIRESTORE_PROJECT and TEST_FIRESTORE_DATABASE must be set")
	}

	testRepository(t, func(t *testing.T) interfaces.Repository {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		ctx = ctxlog.With(ctx, logger)

		repo, err := repository.NewFirestore(ctx, projectID, databaseID, utcShifts())
		gt.NoError(t, err)
		return repo
	})
}
