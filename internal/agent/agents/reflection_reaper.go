package agents

import (
	"context"
	"time"

	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

const staleReflectionMessage = "Generation was interrupted. Please request a new reflection."

// ReflectionReaper fails reflections stuck in processing, e.g. after a
// process restart abandoned the job mid-flight. Without it those records
// would poll as "processing" forever.
type ReflectionReaper struct {
	reflections repository.ReflectionRepository
	schedule    string
	staleAfter  time.Duration
	log         *logger.Logger
}

func NewReflectionReaper(reflections repository.ReflectionRepository, schedule string, staleAfter time.Duration, log *logger.Logger) *ReflectionReaper {
	return &ReflectionReaper{
		reflections: reflections,
		schedule:    schedule,
		staleAfter:  staleAfter,
		log:         log,
	}
}

func (a *ReflectionReaper) GetName() string {
	return "reflection-reaper"
}

func (a *ReflectionReaper) GetSchedule() string {
	return a.schedule
}

func (a *ReflectionReaper) Execute(ctx context.Context) error {
	cutoff := time.Now().Add(-a.staleAfter)
	count, err := a.reflections.FailStaleProcessing(ctx, cutoff, staleReflectionMessage)
	if err != nil {
		return err
	}
	if count > 0 {
		a.log.Warn("failed stale reflections", "count", count)
	}
	return nil
}
