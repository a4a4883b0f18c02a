package scheduler

import (
	"sync"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("dae-lsp.scheduler")

type Task struct {
	Name    string
	Execute func() error
}

func (t Task) run() {
	log.Debugf("executing %s", t.Name)
	if err := t.Execute(); err != nil {
		log.Errorf("%s: %v", t.Name, err)
	}
}

type Scheduler struct {
	taskQueue chan Task
	// sendLock guards sends on taskQueue against StopScheduler closing it.
	sendLock sync.Mutex
	stopped  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a new Scheduler with the specified queue size
func NewScheduler(queueSize int) *Scheduler {
	return &Scheduler{
		taskQueue: make(chan Task, queueSize),
		stopChan:  make(chan struct{}),
	}
}

// RunScheduler starts the scheduler loop
func (s *Scheduler) RunScheduler() {
	go func() {
		for task := range s.taskQueue {
			task.run()
			s.wg.Done()
		}
	}()
}

// SchedulePeriodicTask queues task every interval. The first run is queued
// right away. Ticks are skipped while the queue is full.
func (s *Scheduler) SchedulePeriodicTask(interval time.Duration, task Task) {
	s.offer(task)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.offer(task)
			case <-s.stopChan:
				return
			}
		}
	}()
}

// offer queues task unless the queue is full or the scheduler stopped.
func (s *Scheduler) offer(task Task) bool {
	s.sendLock.Lock()
	defer s.sendLock.Unlock()
	if s.stopped {
		return false
	}

	s.wg.Add(1)
	select {
	case s.taskQueue <- task:
		return true
	default:
		s.wg.Done()
		log.Debugf("skipped scheduling %s, queue is full", task.Name)
		return false
	}
}

// ScheduleHighPriorityTask queues task, waiting for room in the queue. It
// reports false when the scheduler has been stopped.
func (s *Scheduler) ScheduleHighPriorityTask(task Task) bool {
	s.sendLock.Lock()
	defer s.sendLock.Unlock()
	if s.stopped {
		return false
	}
	s.wg.Add(1)
	s.taskQueue <- task
	return true
}

// StopScheduler waits for all queued tasks to complete and stops the scheduler
func (s *Scheduler) StopScheduler() {
	s.sendLock.Lock()
	if s.stopped {
		s.sendLock.Unlock()
		return
	}
	s.stopped = true
	close(s.stopChan)
	close(s.taskQueue)
	s.sendLock.Unlock()

	s.wg.Wait()
	log.Info("scheduler stopped")
}
