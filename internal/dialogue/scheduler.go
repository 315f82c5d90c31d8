package dialogue

import "time"

// Timer is a pending scheduled call
type Timer interface {
	// Stop prevents the call from running. It reports false if the call
	// already started.
	Stop() bool
}

// Scheduler runs a function after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer
type RealScheduler struct{}

// AfterFunc implements Scheduler
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// task is a timer owned by the controller. fn runs with the controller
// lock held, and only if the task was neither cancelled nor outlived by a
// reset.
type task struct {
	gen   uint64
	timer Timer
}

func (c *Controller) scheduleLocked(d time.Duration, fn func()) *task {
	t := &task{gen: c.gen}
	c.tasks[t] = struct{}{}
	c.wg.Add(1)
	t.timer = c.sched.AfterFunc(d, func() {
		defer c.wg.Done()

		c.mu.Lock()
		if _, ok := c.tasks[t]; !ok || t.gen != c.gen {
			c.mu.Unlock()
			return
		}
		delete(c.tasks, t)
		fn()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
	})
	return t
}

func (c *Controller) cancelTaskLocked(t *task) {
	if _, ok := c.tasks[t]; !ok {
		return
	}
	delete(c.tasks, t)
	if t.timer != nil && t.timer.Stop() {
		c.wg.Done()
	}
}
