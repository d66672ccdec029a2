// Package services hosts background workers that run beside the request path.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository"
)

// Reconciler repairs candidates stranded by a crash between the two confirm
// writes: the task row exists but the candidate still reads "new". Flipping
// them to "confirmed" restores the invariant that a candidate with a task is
// processed. The flip is the same compare-and-set the request path uses, so a
// concurrent confirm cannot be clobbered.
type Reconciler struct {
	candidates repository.CandidateRepository
	schedule   string
	batch      int
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewReconciler(candidates repository.CandidateRepository, schedule string, batch int, logger *zap.Logger) *Reconciler {
	if schedule == "" {
		schedule = "@every 1m"
	}
	if batch <= 0 {
		batch = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		candidates: candidates,
		schedule:   schedule,
		batch:      batch,
		logger:     logger,
	}
}

// Start schedules the periodic sweep.
func (r *Reconciler) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Sweep(ctx); err != nil {
			r.logger.Error("reconciler sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	c.Start()
	r.cron = c
	r.logger.Info("reconciler started", zap.String("schedule", r.schedule))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (r *Reconciler) Stop(ctx context.Context) error {
	if r.cron == nil {
		return nil
	}
	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep finds stranded candidates and converges them to "confirmed".
func (r *Reconciler) Sweep(ctx context.Context) error {
	stalled, err := r.candidates.ListStalled(ctx, r.batch)
	if err != nil {
		return err
	}
	if len(stalled) == 0 {
		return nil
	}

	repaired := 0
	for _, candidate := range stalled {
		_, err := r.candidates.SetStatus(ctx, candidate.ID, candidate.UserID, domain.CandidateNew, domain.CandidateConfirmed)
		if err != nil {
			// A concurrent confirm beat us to the flip. Not a failure.
			if errors.Is(err, domain.ErrAlreadyProcessed) || domain.IsCode(err, domain.ErrCodeInvalidState) {
				continue
			}
			r.logger.Warn("candidate repair failed",
				zap.String("candidate_id", candidate.ID),
				zap.Error(err))
			continue
		}
		repaired++
	}

	if repaired > 0 {
		r.logger.Info("stranded candidates repaired", zap.Int("count", repaired))
	}
	return nil
}
