// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"context"
	"strings"
	"testing"
)

func TestSubscriptionCreatedJobContent(t *testing.T) {
	q := NewMemoryQueue()
	n := NewNotifier(q, nil)

	n.SubscriptionCreated(context.Background(), "fan@test.local", "Blue Door Cafe")

	jobs := q.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].To != "fan@test.local" {
		t.Errorf("expected recipient fan@test.local, got %q", jobs[0].To)
	}
	if !strings.Contains(jobs[0].Body, "Blue Door Cafe") {
		t.Errorf("expected body to name the location, got %q", jobs[0].Body)
	}
}

func TestPasswordResetJobContent(t *testing.T) {
	q := NewMemoryQueue()
	n := NewNotifier(q, nil)

	link := "https://locpulse.test/reset?token=abc123"
	n.PasswordReset(context.Background(), "forgetful@test.local", link)

	jobs := q.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Subject != "Reset your password" {
		t.Errorf("unexpected subject %q", jobs[0].Subject)
	}
	if !strings.Contains(jobs[0].Body, link) {
		t.Errorf("expected body to carry the reset link, got %q", jobs[0].Body)
	}
}
