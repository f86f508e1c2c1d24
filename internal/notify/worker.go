// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"context"
	"log/slog"
	"time"
)

// popTimeout bounds each blocking pop so the worker notices shutdown.
const popTimeout = 5 * time.Second

// Worker drains the mail queue and delivers jobs through the Mailer.
// It runs entirely outside the request path.
type Worker struct {
	queue  Queue
	mailer Mailer
}

// NewWorker creates a delivery worker over the given queue and mailer.
func NewWorker(queue Queue, mailer Mailer) *Worker {
	return &Worker{queue: queue, mailer: mailer}
}

// Run processes jobs until ctx is canceled. A failed delivery is
// logged and dropped; the queue guarantees at-least-once handoff, not
// delivery.
func (w *Worker) Run(ctx context.Context) {
	slog.Info("mail worker started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("mail worker stopped")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("mail worker stopped")
				return
			}
			slog.Error("mail worker dequeue failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := w.mailer.Send(job.To, job.Subject, job.Body); err != nil {
			slog.Error("mail delivery failed", "to", job.To, "subject", job.Subject, "error", err)
			continue
		}
		slog.Debug("mail delivered", "to", job.To, "subject", job.Subject)
	}
}
