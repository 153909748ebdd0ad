package agent

import "context"

// Agent is the contract every background agent implements.
//
// Implementations:
//   - DailyScoreAgent: scores each user's selected categories once a day
//   - ReflectionReaper: fails reflections abandoned mid-processing
type Agent interface {
	// GetName returns a unique agent name for logging and identification.
	GetName() string

	// GetSchedule returns the cron schedule string (e.g. "0 6 * * *").
	// Agents that only run on demand return an empty string.
	GetSchedule() string

	// Execute runs the agent's task. The context carries cancellation.
	Execute(ctx context.Context) error
}
