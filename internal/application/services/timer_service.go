package services

import (
	"context"
	"sync"
	"time"

	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

// TimerService runs at most one countdown per user: Idle -> Running <->
// Paused -> Idle. On expiry the bound task is completed through the task
// store's timer entry point. All countdown state is in-memory only and
// lost on restart.
type TimerService struct {
	tasks    *TaskService
	logger   *logger.Logger
	interval time.Duration

	mu            sync.Mutex
	timers        map[int64]*countdown
	lastCompleted map[int64]int64
}

// countdown is one user's bound timer. quit stops the tick goroutine;
// closing it exactly once is guarded by the service mutex.
type countdown struct {
	taskID  int64
	minutes int
	seconds int
	running bool
	quit    chan struct{}
}

// NewTimerService creates a new timer service ticking once per second.
func NewTimerService(tasks *TaskService, logger *logger.Logger) *TimerService {
	return &TimerService{
		tasks:         tasks,
		logger:        logger,
		interval:      time.Second,
		timers:        make(map[int64]*countdown),
		lastCompleted: make(map[int64]int64),
	}
}

// Start binds the timer to a task and begins ticking. Only permitted from
// Idle: a second Start while any timer is bound for the user is rejected.
func (s *TimerService) Start(ctx context.Context, userID, taskID int64) (ports.TimerState, error) {
	task, err := s.tasks.Get(ctx, userID, taskID)
	if err != nil {
		return ports.TimerState{}, err
	}
	if task.Completed {
		return ports.TimerState{}, entities.ErrTaskCompleted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.timers[userID]; active {
		return ports.TimerState{}, entities.ErrTimerActive
	}

	c := &countdown{
		taskID:  taskID,
		minutes: task.EstimatedTime,
		seconds: 0,
		running: true,
		quit:    make(chan struct{}),
	}
	s.timers[userID] = c
	delete(s.lastCompleted, userID)

	go s.run(userID, c.quit)

	s.logger.Info("Study timer started", "user_id", userID, "task_id", taskID, "minutes", c.minutes)

	return s.snapshotLocked(userID), nil
}

// Pause suspends the countdown. No-op when Idle.
func (s *TimerService) Pause(userID int64) ports.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.timers[userID]; ok {
		c.running = false
	}
	return s.snapshotLocked(userID)
}

// Resume continues a paused countdown. No-op when Idle.
func (s *TimerService) Resume(userID int64) ports.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.timers[userID]; ok {
		c.running = true
	}
	return s.snapshotLocked(userID)
}

// Stop unbinds the timer from any state without completing the task. The
// tick goroutine is always released, never leaked.
func (s *TimerService) Stop(userID int64) ports.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.timers[userID]; ok {
		close(c.quit)
		delete(s.timers, userID)
		s.logger.Info("Study timer stopped", "user_id", userID, "task_id", c.taskID)
	}
	return s.snapshotLocked(userID)
}

// State returns a snapshot of the user's timer.
func (s *TimerService) State(userID int64) ports.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(userID)
}

// Close stops every bound timer, releasing all tick goroutines.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, c := range s.timers {
		close(c.quit)
		delete(s.timers, userID)
	}
}

// run drives the countdown once per second until stopped or expired.
func (s *TimerService) run(userID int64, quit chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			if expired := s.tick(context.Background(), userID); expired {
				return
			}
		}
	}
}

// tick advances the countdown one second. Seconds borrow from minutes;
// when both hit zero the timer expires: the state returns to Idle and the
// bound task is completed. Returns true once the countdown is gone.
func (s *TimerService) tick(ctx context.Context, userID int64) bool {
	s.mu.Lock()

	c, ok := s.timers[userID]
	if !ok {
		s.mu.Unlock()
		return true
	}
	if !c.running {
		s.mu.Unlock()
		return false
	}

	if c.seconds > 0 {
		c.seconds--
	} else if c.minutes > 0 {
		c.minutes--
		c.seconds = 59
	}
	if c.minutes > 0 || c.seconds > 0 {
		s.mu.Unlock()
		return false
	}

	// Reached 0:00, so the timer has expired. Unbind before completing
	// so the task store sees an idle timer.
	taskID := c.taskID
	delete(s.timers, userID)
	s.lastCompleted[userID] = taskID
	s.mu.Unlock()

	if err := s.tasks.CompleteViaTimer(ctx, userID, taskID); err != nil {
		s.logger.Error("Timer expiry failed to complete task", "error", err, "user_id", userID, "task_id", taskID)
		return true
	}

	s.logger.Info("Study session completed", "user_id", userID, "task_id", taskID)
	return true
}

func (s *TimerService) snapshotLocked(userID int64) ports.TimerState {
	state := ports.TimerState{CompletedTaskID: s.lastCompleted[userID]}
	if c, ok := s.timers[userID]; ok {
		state.ActiveTaskID = c.taskID
		state.MinutesRemaining = c.minutes
		state.SecondsRemaining = c.seconds
		state.Running = c.running
	}
	return state
}
