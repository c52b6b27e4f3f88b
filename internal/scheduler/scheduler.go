// Package scheduler runs the periodic housekeeping jobs: expiring baskets
// that outlived their TTL and purging refresh tokens past their expiry.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// BasketExpirer is satisfied by repository.BasketRepo.
type BasketExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// TokenPurger is satisfied by repository.TokenRepo.
type TokenPurger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

const (
	jobTimeout    = 30 * time.Second
	tokenInterval = time.Hour
)

// Scheduler owns a gocron scheduler with the housekeeping jobs registered.
type Scheduler struct {
	sched   gocron.Scheduler
	baskets BasketExpirer
	tokens  TokenPurger
	log     *slog.Logger
}

// New registers the basket sweep every basketEvery and the token purge
// every hour.  Both run once as soon as Start is called.  tokens may be nil.
func New(baskets BasketExpirer, tokens TokenPurger, basketEvery time.Duration, log *slog.Logger) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	s := &Scheduler{sched: sched, baskets: baskets, tokens: tokens, log: log.With("component", "scheduler")}

	if _, err := sched.NewJob(
		gocron.DurationJob(basketEvery),
		gocron.NewTask(s.sweepBaskets),
		gocron.WithName("basket-expiry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return nil, err
	}
	if tokens != nil {
		if _, err := sched.NewJob(
			gocron.DurationJob(tokenInterval),
			gocron.NewTask(s.purgeTokens),
			gocron.WithName("refresh-token-purge"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.log.Info("scheduler started", "jobs", len(s.sched.Jobs()))
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error { return s.sched.Shutdown() }

func (s *Scheduler) sweepBaskets() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := s.baskets.ExpireStale(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("basket expiry failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Info("expired stale baskets", "count", n)
	}
}

func (s *Scheduler) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	n, err := s.tokens.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("refresh token purge failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Info("purged expired refresh tokens", "count", n)
	}
}
