// Package jobs runs independent tasks on a pool of workers.
package jobs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	log "github.com/sirupsen/logrus"
)

// TaskError is the error of a failed task.
type TaskError struct {
	Name string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Pool is a worker pool. With a single worker, tasks run one after
// the other in submission order.
type Pool struct {
	wp   *workerpool.WorkerPool
	mu   sync.Mutex
	errs []error
}

// New starts a pool with the given number of workers.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		wp: workerpool.New(workers),
	}
}

// Submit enqueues a task. A task that panics is reported as failed.
func (p *Pool) Submit(name string, fn func() error) {
	p.wp.Submit(func() {
		defer func() {
			// Recover from any error that could have arose
			if r := recover(); r != nil {
				log.WithField("job", name).WithField("recover", r).Error("job panicked")
				p.addError(&TaskError{name, fmt.Errorf("panic: %v", r)})
			}
		}()

		if err := fn(); err != nil {
			log.WithField("job", name).WithError(err).Debug("job failed")
			p.addError(&TaskError{name, err})
		}
	})
}

func (p *Pool) addError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}

// Wait stops the pool once all the submitted tasks are done. It returns
// the errors of the failed tasks, joined. The pool can't be used after
// Wait.
func (p *Pool) Wait() error {
	p.wp.StopWait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}
