// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"context"
	"fmt"
	"log/slog"

	"locpulse/internal/models"
	"locpulse/internal/store"
)

// Notifier turns domain events into queued email jobs. Every method is
// fire-and-forget: enqueue failures are logged and never surfaced to
// the triggering request.
type Notifier struct {
	queue Queue
	subs  *store.SubscriptionStore
}

// NewNotifier creates a Notifier over the given queue and subscription store.
func NewNotifier(queue Queue, subs *store.SubscriptionStore) *Notifier {
	return &Notifier{queue: queue, subs: subs}
}

// ReviewCreated notifies every subscriber of the review's location.
// Called only on creation, never on update.
func (n *Notifier) ReviewCreated(ctx context.Context, location *models.Location, review *models.Review) {
	subscribers, err := n.subs.ListSubscribers(location.ID)
	if err != nil {
		slog.Error("list subscribers for notification failed",
			"location_id", location.ID, "error", err)
		return
	}

	for _, sub := range subscribers {
		job := Job{
			To:      sub.Email,
			Subject: fmt.Sprintf("New review for %s", location.Title),
			Body:    fmt.Sprintf("A new review has been posted for %s: %s", location.Title, review.Comment),
		}
		if err := n.queue.Enqueue(ctx, job); err != nil {
			slog.Error("enqueue review notification failed",
				"to", sub.Email, "location_id", location.ID, "error", err)
		}
	}
}

// SubscriptionCreated sends a one-time confirmation to the new subscriber.
func (n *Notifier) SubscriptionCreated(ctx context.Context, email, locationTitle string) {
	job := Job{
		To:      email,
		Subject: "You are subscribed",
		Body:    fmt.Sprintf("You are now subscribed to updates for %q.", locationTitle),
	}
	if err := n.queue.Enqueue(ctx, job); err != nil {
		slog.Error("enqueue subscription confirmation failed", "to", email, "error", err)
	}
}

// PasswordReset emails a reset link to the user.
func (n *Notifier) PasswordReset(ctx context.Context, email, resetURL string) {
	job := Job{
		To:      email,
		Subject: "Reset your password",
		Body:    "Hello,\n\nUse the link below to reset your password:\n" + resetURL,
	}
	if err := n.queue.Enqueue(ctx, job); err != nil {
		slog.Error("enqueue password reset failed", "to", email, "error", err)
	}
}
