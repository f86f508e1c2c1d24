// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"locpulse/internal/cache"
	"locpulse/internal/models"
)

func TestReactionSetFlow(t *testing.T) {
	env := newTestEnv(t)

	author := env.newUser(t, "reaction-author@handler.local")
	reactor := env.newUser(t, "reaction-reactor@handler.local")
	l := env.newLocation(t, "Reaction Spot xt1", models.CategoryCafe)
	review := env.newReview(t, author.ID, l.ID, 7, "react to me")

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/x", strings.NewReader(body))
		req = withURLParam(req, "id", review.ID.String())
		req = withSession(req, sessionFor(reactor))
		w := httptest.NewRecorder()
		env.Reactions.Set(w, req)
		return w
	}

	// First like creates.
	w := post(`{"is_like":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Like added successfully.") {
		t.Errorf("unexpected body %q", w.Body.String())
	}

	// Repeating the same value is a no-op.
	w = post(`{"is_like":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No change made.") {
		t.Errorf("unexpected body %q", w.Body.String())
	}

	// Flipping to a dislike updates.
	w = post(`{"is_like":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Dislike updated successfully.") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestReactionSetValidation(t *testing.T) {
	env := newTestEnv(t)

	author := env.newUser(t, "reaction-validate@handler.local")
	l := env.newLocation(t, "Validation Spot xt2", models.CategoryShop)
	review := env.newReview(t, author.ID, l.ID, 5, "plain")

	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{}`))
	req = withURLParam(req, "id", review.ID.String())
	req = withSession(req, sessionFor(author))
	w := httptest.NewRecorder()
	env.Reactions.Set(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for missing is_like, got %d", w.Code)
	}
}

func TestReactionSetUnknownReview(t *testing.T) {
	env := newTestEnv(t)
	u := env.newUser(t, "reaction-404@handler.local")

	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"is_like":true}`))
	req = withURLParam(req, "id", uuid.New().String())
	req = withSession(req, sessionFor(u))
	w := httptest.NewRecorder()
	env.Reactions.Set(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestReactionTallyCachedAndInvalidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.newUser(t, "tally-author@handler.local")
	reactor := env.newUser(t, "tally-reactor@handler.local")
	l := env.newLocation(t, "Tally Spot xt3", models.CategoryPark)
	review := env.newReview(t, author.ID, l.ID, 6, "count me")

	tallyReq := func() *httptest.ResponseRecorder {
		req := withURLParam(httptest.NewRequest("GET", "/x", nil), "id", review.ID.String())
		w := httptest.NewRecorder()
		env.Reactions.Tally(w, req)
		return w
	}

	w := tallyReq()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var tally models.Tally
	if err := json.Unmarshal(w.Body.Bytes(), &tally); err != nil {
		t.Fatalf("decode tally: %v", err)
	}
	if tally.Likes != 0 || tally.Dislikes != 0 {
		t.Errorf("expected empty tally, got %+v", tally)
	}
	if _, ok := env.Cache.Get(ctx, cache.TallyKey(review.ID)); !ok {
		t.Fatal("expected tally cached")
	}

	// A new reaction invalidates the tally entry.
	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"is_like":true}`))
	req = withURLParam(req, "id", review.ID.String())
	req = withSession(req, sessionFor(reactor))
	env.Reactions.Set(httptest.NewRecorder(), req)

	if _, ok := env.Cache.Get(ctx, cache.TallyKey(review.ID)); ok {
		t.Error("expected tally invalidated by reaction")
	}

	// The refreshed tally counts the like.
	w = tallyReq()
	if err := json.Unmarshal(w.Body.Bytes(), &tally); err != nil {
		t.Fatalf("decode tally: %v", err)
	}
	if tally.Likes != 1 || tally.Dislikes != 0 {
		t.Errorf("expected 1 like, got %+v", tally)
	}
}

func TestReactionDelete(t *testing.T) {
	env := newTestEnv(t)

	author := env.newUser(t, "reaction-del-author@handler.local")
	reactor := env.newUser(t, "reaction-del-reactor@handler.local")
	l := env.newLocation(t, "Reaction Delete Spot xt4", models.CategoryOther)
	review := env.newReview(t, author.ID, l.ID, 6, "fleeting")

	del := func(sess *models.User) *httptest.ResponseRecorder {
		req := withURLParam(httptest.NewRequest("DELETE", "/x", nil), "id", review.ID.String())
		req = withSession(req, sessionFor(sess))
		w := httptest.NewRecorder()
		env.Reactions.Delete(w, req)
		return w
	}

	// Deleting a reaction that was never set is a 404.
	if w := del(reactor); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a reaction, got %d", w.Code)
	}

	setReq := httptest.NewRequest("POST", "/x", strings.NewReader(`{"is_like":false}`))
	setReq = withURLParam(setReq, "id", review.ID.String())
	setReq = withSession(setReq, sessionFor(reactor))
	env.Reactions.Set(httptest.NewRecorder(), setReq)

	if w := del(reactor); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := del(reactor); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeat delete, got %d", w.Code)
	}
}
