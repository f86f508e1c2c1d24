// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify implements fire-and-forget email notification. Request
// handlers push jobs onto a Valkey-backed queue and return immediately;
// a background worker pops jobs and hands them to the mail sender.
// Delivery is at-least-once with no ordering guarantee.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// queueKey is the Valkey list holding pending email jobs.
const queueKey = "notify:jobs"

// Job is a single outbound email waiting for delivery.
type Job struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Queue is the background task queue contract: enqueue returns as soon
// as the job is durably handed off, never waiting for delivery. Dequeue
// blocks up to timeout and returns nil when nothing arrived.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
}

// ValkeyQueue is the production queue: a Valkey list pushed with LPUSH
// and drained with BRPOP.
type ValkeyQueue struct {
	client *redis.Client
}

// NewValkeyQueue creates a queue backed by the given Valkey client.
func NewValkeyQueue(client *redis.Client) *ValkeyQueue {
	return &ValkeyQueue{client: client}
}

// Enqueue pushes a job onto the list.
func (q *ValkeyQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, queueKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job. Returns nil when the
// queue stayed empty.
func (q *ValkeyQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(ctx, timeout, queueKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue job: %w", err)
	}

	// BRPop returns [key, value].
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

// MemoryQueue is an in-process queue used in tests. It records every
// enqueued job.
type MemoryQueue struct {
	mu   sync.Mutex
	jobs []Job
}

// NewMemoryQueue creates an empty in-memory queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

// Enqueue appends the job.
func (q *MemoryQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
	return nil
}

// Dequeue pops the oldest job immediately, ignoring the timeout.
func (q *MemoryQueue) Dequeue(_ context.Context, _ time.Duration) (*Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return nil, nil
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return &job, nil
}

// Jobs returns a copy of the jobs currently queued.
func (q *MemoryQueue) Jobs() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}
