package seed

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
)

const (
	defaultCount   = 5
	defaultTimeout = 30 * time.Second
	scoreTolerance = 0.01
)

type dashboard struct {
	HasAssessments bool                 `json:"hasAssessments"`
	LatestID       string               `json:"latestId"`
	OverallScore   float64              `json:"overallScore"`
	Trend          []model.HistoryPoint `json:"trend"`
}

// Run records cfg.Count generated assessments against the current framework
// and verifies the dashboard afterwards.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	if cfg.Count <= 0 {
		cfg.Count = defaultCount
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log := logger.Named("seed")
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("count", cfg.Count),
		logger.Any("seed", cfg.Seed))

	if err := checkHealth(ctx, client); err != nil {
		return stats, err
	}

	var before dashboard
	if err := client.getJSON(ctx, "/dashboard", &before); err != nil {
		return stats, fmt.Errorf("reading dashboard: %w", err)
	}

	var dims []model.Dimension
	if err := client.getJSON(ctx, "/framework", &dims); err != nil {
		return stats, fmt.Errorf("reading framework: %w", err)
	}
	if !hasElements(dims) {
		return stats, ErrEmptyFramework
	}

	gen := NewGenerator(cfg.Seed)
	var last model.Assessment
	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Submitted++
		var a model.Assessment
		err := client.postJSON(ctx, "/assessments", map[string]any{"scores": gen.Scores(dims)}, http.StatusCreated, &a)
		if err != nil {
			stats.Failed++
			log.Warn(ctx, "assessment submission failed", logger.Int("index", i), logger.Error(err))
			continue
		}
		stats.Successful++
		last = a
		log.Debug(ctx, "assessment recorded", logger.String("id", a.ID), logger.Float64("score", a.OverallScore))
	}
	stats.LastScore = last.OverallScore

	if stats.Successful > 0 {
		if err := verify(ctx, client, len(before.Trend)+stats.Successful, last); err != nil {
			return finish(stats), err
		}
	}

	finish(stats)
	log.Info(ctx, "seed run completed",
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Float64("lastScore", stats.LastScore),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

func checkHealth(ctx context.Context, client *HTTPClient) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := client.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// verify checks the dashboard shows the last submitted assessment and the
// expected number of trend points.
func verify(ctx context.Context, client *HTTPClient, wantPoints int, last model.Assessment) error {
	var db dashboard
	if err := client.getJSON(ctx, "/dashboard", &db); err != nil {
		return fmt.Errorf("reading dashboard: %w", err)
	}
	switch {
	case !db.HasAssessments:
		return fmt.Errorf("%w: no assessments reported", ErrVerification)
	case db.LatestID != last.ID:
		return fmt.Errorf("%w: latest is %s, submitted %s", ErrVerification, db.LatestID, last.ID)
	case math.Abs(db.OverallScore-last.OverallScore) > scoreTolerance:
		return fmt.Errorf("%w: score %.2f, submitted %.2f", ErrVerification, db.OverallScore, last.OverallScore)
	case len(db.Trend) != wantPoints:
		return fmt.Errorf("%w: %d trend points, want %d", ErrVerification, len(db.Trend), wantPoints)
	}
	return nil
}

func hasElements(dims []model.Dimension) bool {
	for _, d := range dims {
		if len(d.Elements) > 0 {
			return true
		}
	}
	return false
}

func finish(stats *Stats) *Stats {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	return stats
}
