package jobs

import (
	"fmt"
	"sync"

	"github.com/lumenhq/lumen-backend/pkg/logger"
)

// Coordinator prevents two concurrent background jobs with the same
// (job type, subject id) key within this process. It is deliberately not a
// scheduler: no queue, no retries, no cross-instance locking. A request
// that arrives while a job is running is dropped, and the HTTP layer's
// persisted "already active" checks cover the cases this set cannot.
type Coordinator struct {
	mu      sync.Mutex
	running map[string]struct{}
	log     *logger.Logger
}

func NewCoordinator(log *logger.Logger) *Coordinator {
	return &Coordinator{
		running: make(map[string]struct{}),
		log:     log,
	}
}

// Run starts task in a goroutine unless a job with the same key is already
// running, in which case it is a no-op. Returns whether the task was
// started. Task errors and panics are logged at the job boundary and never
// propagate; the key is released on every exit path.
func (c *Coordinator) Run(jobType, subjectID string, task func() error) bool {
	key := jobType + ":" + subjectID

	c.mu.Lock()
	if _, exists := c.running[key]; exists {
		c.mu.Unlock()
		c.log.Info("job already running, skipping", "job", key)
		return false
	}
	c.running[key] = struct{}{}
	c.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("job panicked", "job", key, "panic", fmt.Sprintf("%v", r))
			}
			c.mu.Lock()
			delete(c.running, key)
			c.mu.Unlock()
		}()

		c.log.Info("job started", "job", key)
		if err := task(); err != nil {
			c.log.Error("job failed", "job", key, "error", err)
			return
		}
		c.log.Info("job finished", "job", key)
	}()

	return true
}

// IsRunning reports whether a job with this key is currently active.
func (c *Coordinator) IsRunning(jobType, subjectID string) bool {
	key := jobType + ":" + subjectID
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.running[key]
	return exists
}
