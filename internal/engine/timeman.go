package engine

import (
	"time"
)

// TimeManager tracks the soft time budget of one decision.
// There is no timer: the search polls ShouldStop once per node.
type TimeManager struct {
	budget    time.Duration // Soft limit for this decision (0 = no limit)
	startTime time.Time     // When the decision started
	now       func() time.Time
}

// NewTimeManager creates a new time manager reading the wall clock.
func NewTimeManager() *TimeManager {
	return &TimeManager{now: time.Now}
}

// SetClock replaces the time source. Tests use it to freeze time.
func (tm *TimeManager) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	tm.now = now
}

// Init starts the clock for a new decision with the given budget.
func (tm *TimeManager) Init(budget time.Duration) {
	tm.budget = budget
	tm.startTime = tm.now()
}

// Elapsed returns the time elapsed since the decision started.
func (tm *TimeManager) Elapsed() time.Duration {
	return tm.now().Sub(tm.startTime)
}

// ShouldStop returns true once the budget is used up.
func (tm *TimeManager) ShouldStop() bool {
	return tm.budget > 0 && tm.Elapsed() >= tm.budget
}
