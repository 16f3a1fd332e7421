// Copyright 2021 The qwikhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qwikhttp

import (
	"sync"
)

// A MainQueue is a Scheduler backed by a single goroutine that runs
// scheduled functions one at a time, in the order they were scheduled.
// It plays the part of an application's main thread: callbacks for
// Builders whose response thread is request.ResponseMain are delivered
// on it.
//
// The goroutine starts on the first call to Schedule. The zero value is
// not usable; create a MainQueue with NewMainQueue.
type MainQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []func()
	started bool
	closed  bool
	done    chan struct{}
}

// NewMainQueue returns a new, idle MainQueue.
func NewMainQueue() *MainQueue {
	q := &MainQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Schedule queues fn to run on the queue's goroutine. If the queue has
// been closed, fn runs synchronously on the calling goroutine instead,
// so that a scheduled callback is never lost.
func (q *MainQueue) Schedule(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		fn()
		return
	}
	q.tasks = append(q.tasks, fn)
	if !q.started {
		q.started = true
		go q.loop()
	}
	q.mu.Unlock()
	q.cond.Signal()
}

// Close stops accepting new functions, waits for every function already
// scheduled to run, and stops the goroutine. Close must not be called
// from a function running on the queue.
func (q *MainQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	started := q.started
	q.mu.Unlock()
	if !started {
		close(q.done)
		return
	}
	q.cond.Signal()
	<-q.done
}

func (q *MainQueue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		fn := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		fn()
	}
}
