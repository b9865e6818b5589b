package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/bmsedge/queuepulse/pkg/cli/config"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	reportDateLayout = "2006-01-02"
	reportTimeLayout = "2006-01-02T15:04:05"
)

// reportOptions are shared by every report subcommand
type reportOptions struct {
	storage config.Storage
	shifts  config.Shifts
	output  string
}

func (o *reportOptions) flags() []cli.Flag {
	return joinFlags(
		o.storage.Flags(),
		o.shifts.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Write the JSON report to this file (\"-\" for stdout)",
				Value:       "-",
				Destination: &o.output,
			},
		},
	)
}

// run opens the configured store, hands a congestion use case to fn and writes its result as JSON
func (o *reportOptions) run(ctx context.Context, fn func(ctx context.Context, uc *usecase.Congestion, loc *time.Location) (any, error)) error {
	shifts, err := o.shifts.Configure()
	if err != nil {
		return err
	}

	repo, err := o.storage.Configure(ctx, shifts)
	if err != nil {
		return err
	}
	defer repo.Close()

	loc := shifts.Location()
	result, err := fn(ctx, usecase.NewCongestion(repo, repo, loc), loc)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if o.output != "" && o.output != "-" {
		f, err := os.Create(o.output)
		if err != nil {
			return goerr.Wrap(err, "failed to create output file", goerr.V("path", o.output))
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}

	ctxlog.From(ctx).Debug("Report written", "output", o.output)
	return nil
}

func cmdReport() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print congestion reports from stored readings",
		Commands: []*cli.Command{
			cmdReportDaily(),
			cmdReportSession(),
		},
	}
}

func cmdReportDaily() *cli.Command {
	var (
		opts reportOptions
		date string
	)

	return &cli.Command{
		Name:  "daily",
		Usage: "Shift figures and peak congestion per counter for one calendar day",
		Flags: append(opts.flags(),
			&cli.StringFlag{
				Name:        "date",
				Usage:       "Day to report (YYYY-MM-DD, defaults to today)",
				Destination: &date,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			return opts.run(ctx, func(ctx context.Context, uc *usecase.Congestion, loc *time.Location) (any, error) {
				day := time.Now().In(loc)
				if date != "" {
					parsed, err := time.ParseInLocation(reportDateLayout, date, loc)
					if err != nil {
						return nil, goerr.Wrap(err, "date must be YYYY-MM-DD",
							goerr.V("date", date),
							goerr.T(model.ErrTagInvalidInput))
					}
					day = parsed
				}
				return uc.AggregateForDay(ctx, day)
			})
		},
	}
}

func cmdReportSession() *cli.Command {
	var (
		opts     reportOptions
		from, to string
	)

	return &cli.Command{
		Name:  "session",
		Usage: "Weighted congestion index per counter for a session window",
		Flags: append(opts.flags(),
			&cli.StringFlag{
				Name:        "from",
				Usage:       "Session start (RFC 3339 or YYYY-MM-DDTHH:MM:SS)",
				Required:    true,
				Destination: &from,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "Session end (RFC 3339 or YYYY-MM-DDTHH:MM:SS)",
				Required:    true,
				Destination: &to,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			return opts.run(ctx, func(ctx context.Context, uc *usecase.Congestion, loc *time.Location) (any, error) {
				start, err := parseReportTime(from, loc)
				if err != nil {
					return nil, err
				}
				end, err := parseReportTime(to, loc)
				if err != nil {
					return nil, err
				}
				return uc.ComputeSessionCongestion(ctx, start, end)
			})
		},
	}
}

func parseReportTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(reportTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "time must be RFC 3339 or YYYY-MM-DDTHH:MM:SS",
			goerr.V("value", value),
			goerr.T(model.ErrTagInvalidInput))
	}
	return t, nil
}
