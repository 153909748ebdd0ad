package agents

import (
	"context"

	"github.com/lumenhq/lumen-backend/internal/jobs"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

const scoreJobType = "category-scores"

// DailyScoreAgent walks every user with selected categories and submits a
// scoring job per user through the coordinator. Categories within a job run
// sequentially; users whose job is already in flight are skipped by the
// coordinator's dedup.
type DailyScoreAgent struct {
	scoring      *service.ScoringService
	users        repository.UserRepository
	coordinator  *jobs.Coordinator
	schedule     string
	lookbackDays int
	log          *logger.Logger
}

func NewDailyScoreAgent(scoring *service.ScoringService, users repository.UserRepository, coordinator *jobs.Coordinator, schedule string, lookbackDays int, log *logger.Logger) *DailyScoreAgent {
	return &DailyScoreAgent{
		scoring:      scoring,
		users:        users,
		coordinator:  coordinator,
		schedule:     schedule,
		lookbackDays: lookbackDays,
		log:          log,
	}
}

func (a *DailyScoreAgent) GetName() string {
	return "daily-score"
}

func (a *DailyScoreAgent) GetSchedule() string {
	return a.schedule
}

func (a *DailyScoreAgent) Execute(ctx context.Context) error {
	userIDs, err := a.users.FindWithSelectedCategories(ctx)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		id := userID
		a.coordinator.Run(scoreJobType, id.String(), func() error {
			return a.scoring.GenerateAllSelected(context.Background(), id, a.lookbackDays)
		})
	}

	a.log.Info("daily scoring submitted", "users", len(userIDs))
	return nil
}
