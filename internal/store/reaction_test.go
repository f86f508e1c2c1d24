// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"locpulse/internal/models"
)

func TestReactionSetAndFlip(t *testing.T) {
	db := testDB(t)
	s := NewReactionStore(db)

	u := testUser(t, db, "reaction-set@test.local")
	l := testLocation(t, db, "Reaction Spot zqxw", models.CategoryShop)
	r := testReview(t, db, u.ID, l.ID, 6, "fine")

	created, changed, err := s.Set(u.ID, r.ID, true)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !created || !changed {
		t.Errorf("expected created=true changed=true on first set, got %v/%v", created, changed)
	}

	// Same value again is a no-op.
	created, changed, err = s.Set(u.ID, r.ID, true)
	if err != nil {
		t.Fatalf("Set (repeat): %v", err)
	}
	if created || changed {
		t.Errorf("expected no-op on repeated like, got created=%v changed=%v", created, changed)
	}

	// Flipping to a dislike updates the existing row.
	created, changed, err = s.Set(u.ID, r.ID, false)
	if err != nil {
		t.Fatalf("Set (flip): %v", err)
	}
	if created {
		t.Error("expected flip to reuse the existing reaction")
	}
	if !changed {
		t.Error("expected flip to report a change")
	}

	reaction, err := s.Find(u.ID, r.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if reaction == nil {
		t.Fatal("expected reaction, got nil")
	}
	if reaction.IsLike {
		t.Error("expected dislike after flip")
	}
}

func TestReactionDelete(t *testing.T) {
	db := testDB(t)
	s := NewReactionStore(db)

	u := testUser(t, db, "reaction-delete@test.local")
	l := testLocation(t, db, "Reaction Delete Spot zqxw", models.CategoryShop)
	r := testReview(t, db, u.ID, l.ID, 6, "fine")

	if _, _, err := s.Set(u.ID, r.ID, true); err != nil {
		t.Fatalf("Set: %v", err)
	}

	removed, err := s.Delete(u.ID, r.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Error("expected delete to report removal")
	}

	// A second delete finds nothing.
	removed, err = s.Delete(u.ID, r.ID)
	if err != nil {
		t.Fatalf("Delete (repeat): %v", err)
	}
	if removed {
		t.Error("expected second delete to report nothing removed")
	}
}

func TestReactionTally(t *testing.T) {
	db := testDB(t)
	s := NewReactionStore(db)

	author := testUser(t, db, "tally-author@test.local")
	liker := testUser(t, db, "tally-liker@test.local")
	disliker := testUser(t, db, "tally-disliker@test.local")
	l := testLocation(t, db, "Tally Spot zqxw", models.CategoryOther)
	r := testReview(t, db, author.ID, l.ID, 6, "divisive")

	if _, _, err := s.Set(liker.ID, r.ID, true); err != nil {
		t.Fatalf("Set like: %v", err)
	}
	if _, _, err := s.Set(disliker.ID, r.ID, false); err != nil {
		t.Fatalf("Set dislike: %v", err)
	}

	tally, err := s.TallyByReview(r.ID)
	if err != nil {
		t.Fatalf("TallyByReview: %v", err)
	}
	if tally.Likes != 1 || tally.Dislikes != 1 {
		t.Errorf("expected tally 1/1, got %d/%d", tally.Likes, tally.Dislikes)
	}

	// The denormalized counts on review listings agree with the tally.
	reviews, err := NewReviewStore(db).ListByLocation(l.ID)
	if err != nil {
		t.Fatalf("ListByLocation: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	if reviews[0].LikeCount != 1 || reviews[0].DislikeCount != 1 {
		t.Errorf("expected embedded counts 1/1, got %d/%d", reviews[0].LikeCount, reviews[0].DislikeCount)
	}
}
