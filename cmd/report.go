package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/config"
	"github.com/jekabolt/grbpwr-analytics/internal/apisrv/admin"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
	"github.com/jekabolt/grbpwr-analytics/log"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	period      string
	start       string
	end         string
	granularity string
	compare     bool
	limit       int
}

func newReportCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a one-shot analytics overview as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.period, "period", "", "7d, 30d, 90d or custom (default "+form.DefaultPeriod+", custom when --start or --end is set)")
	cmd.Flags().StringVar(&f.start, "start", "", "custom range start, 2006-01-02 or RFC3339")
	cmd.Flags().StringVar(&f.end, "end", "", "custom range end, 2006-01-02 or RFC3339")
	cmd.Flags().StringVar(&f.granularity, "granularity", "daily", "daily, weekly or monthly")
	cmd.Flags().BoolVar(&f.compare, "compare", false, "compare with the previous period")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "top products limit")
	return cmd
}

func (f reportFlags) values() url.Values {
	v := url.Values{}
	if f.period != "" {
		v.Set("period", f.period)
	}
	v.Set("granularity", f.granularity)
	v.Set("compare", strconv.FormatBool(f.compare))
	if f.start != "" {
		v.Set("start", f.start)
	}
	if f.end != "" {
		v.Set("end", f.end)
	}
	if f.limit != 0 {
		v.Set("limit", strconv.Itoa(f.limit))
	}
	return v
}

func report(ctx context.Context, f reportFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	// logs go to stderr so stdout stays valid JSON
	slog.SetDefault(log.New(cfg.Logger, os.Stderr))

	db, err := store.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("couldn't connect to mysql: %w", err)
	}
	defer db.Close()

	s, err := admin.New(&cfg.Analytics, db, nil)
	if err != nil {
		return err
	}
	q, err := form.ParseAnalyticsQuery(f.values(), s.Location())
	if err != nil {
		return err
	}
	o, err := s.GetOverview(ctx, q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}
