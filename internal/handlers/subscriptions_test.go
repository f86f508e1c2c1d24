// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"locpulse/internal/cache"
	"locpulse/internal/models"
)

func TestSubscribeFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.newUser(t, "subscribe-flow@handler.local")
	l := env.newLocation(t, "Subscribe Spot st1", models.CategoryMuseum)

	subscribe := func() *httptest.ResponseRecorder {
		req := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", l.ID.String())
		req = withSession(req, sessionFor(u))
		w := httptest.NewRecorder()
		env.Subs.Subscribe(w, req)
		return w
	}

	w := subscribe()
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// The status flag was repopulated after invalidation.
	if _, ok := env.Cache.Get(ctx, cache.SubscriptionKey(u.ID, l.ID)); !ok {
		t.Error("expected subscription status flag cached")
	}

	// The confirmation email was enqueued.
	jobs := env.Queue.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 confirmation job, got %d", len(jobs))
	}
	if jobs[0].To != u.Email {
		t.Errorf("expected confirmation to %s, got %s", u.Email, jobs[0].To)
	}
	if !strings.Contains(jobs[0].Body, "Subscribe Spot st1") {
		t.Errorf("expected body to name the location, got %q", jobs[0].Body)
	}

	// Repeat subscribe short-circuits on the cached flag.
	w = subscribe()
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on repeat subscribe, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Already subscribed.") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if len(env.Queue.Jobs()) != 1 {
		t.Error("repeat subscribe must not enqueue another confirmation")
	}
}

func TestSubscribeDatabaseFallback(t *testing.T) {
	env := newTestEnv(t)

	u := env.newUser(t, "subscribe-fallback@handler.local")
	l := env.newLocation(t, "Fallback Spot st2", models.CategoryCafe)

	// Subscription exists in the database but the flag is not cached.
	if _, err := env.Subscriptions.Create(u.ID, l.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	req := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", l.ID.String())
	req = withSession(req, sessionFor(u))
	w := httptest.NewRecorder()
	env.Subs.Subscribe(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 from database check, got %d", w.Code)
	}
}

func TestSubscribeUnknownLocation(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "subscribe-404@handler.local")

	req := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", uuid.New().String())
	req = withSession(req, sessionFor(u))
	w := httptest.NewRecorder()
	env.Subs.Subscribe(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUnsubscribe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.newUser(t, "unsubscribe@handler.local")
	l := env.newLocation(t, "Unsubscribe Spot st3", models.CategoryPark)

	// Subscribe through the handler so the status flag is cached.
	subReq := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", l.ID.String())
	subReq = withSession(subReq, sessionFor(u))
	env.Subs.Subscribe(httptest.NewRecorder(), subReq)

	req := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", l.ID.String())
	req = withSession(req, sessionFor(u))
	w := httptest.NewRecorder()
	env.Subs.Unsubscribe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The status flag is invalidated, so a fresh subscribe works.
	if _, ok := env.Cache.Get(ctx, cache.SubscriptionKey(u.ID, l.ID)); ok {
		t.Error("expected status flag invalidated by unsubscribe")
	}

	w2 := httptest.NewRecorder()
	req2 := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", l.ID.String())
	req2 = withSession(req2, sessionFor(u))
	env.Subs.Subscribe(w2, req2)
	if w2.Code != http.StatusCreated {
		t.Errorf("expected resubscribe to succeed, got %d", w2.Code)
	}
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	env := newTestEnv(t)

	u := env.newUser(t, "unsubscribe-none@handler.local")
	l := env.newLocation(t, "Never Subscribed Spot st4", models.CategoryShop)

	req := withURLParam(httptest.NewRequest("POST", "/x", nil), "id", l.ID.String())
	req = withSession(req, sessionFor(u))
	w := httptest.NewRecorder()
	env.Subs.Unsubscribe(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not subscribed to this location.") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}
