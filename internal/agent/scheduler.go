package agent

import (
	"context"

	"github.com/lumenhq/lumen-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler registers and runs background agents on their cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	agents []Agent
	log    *logger.Logger
}

func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		agents: make([]Agent, 0),
		log:    log,
	}
}

// RegisterAgent adds an agent; agents with a schedule are wired into cron.
func (s *Scheduler) RegisterAgent(agent Agent) {
	s.agents = append(s.agents, agent)

	schedule := agent.GetSchedule()
	if schedule == "" {
		s.log.Info("registered on-demand agent", "agent", agent.GetName())
		return
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Info("starting scheduled job", "agent", agent.GetName())
		if err := agent.Execute(context.Background()); err != nil {
			s.log.Error("scheduled job failed", "agent", agent.GetName(), "error", err)
			return
		}
		s.log.Info("scheduled job completed", "agent", agent.GetName())
	})
	if err != nil {
		s.log.Error("failed to schedule agent", "agent", agent.GetName(), "error", err)
		return
	}
	s.log.Info("scheduled agent", "agent", agent.GetName(), "cron", schedule)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("agent scheduler started", "agents", len(s.agents))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("agent scheduler stopped")
}

// RunAgentByName triggers one agent manually. Useful for testing and
// operational one-offs.
func (s *Scheduler) RunAgentByName(ctx context.Context, name string) error {
	for _, agent := range s.agents {
		if agent.GetName() == name {
			return agent.Execute(ctx)
		}
	}
	s.log.Warn("agent not found", "agent", name)
	return nil
}
