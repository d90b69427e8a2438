package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/diewo77/interiorhome/internal/models"
)

func TestCardCreateRequiresValidImageURL(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCardService(db)

	cases := []struct {
		name string
		in   CardInput
	}{
		{"missing image url", CardInput{Title: "Spring Looks"}},
		{"invalid image url", CardInput{Title: "Spring Looks", ImageURL: "not-a-url"}},
		{"missing title", CardInput{ImageURL: "https://example.com/a.jpg"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.in); err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		} else if _, ok := AsValidation(err); !ok {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
	var count int64
	db.Model(&models.FeaturedCard{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no cards written, got %d", count)
	}
}

func TestCardCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCardService(db)

	c, err := svc.Create(CardInput{Title: "Cozy Corners", Description: "Warm tones", ImageURL: "https://example.com/cozy.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(c.ID, CardInput{Title: "Cozier Corners", ImageURL: "https://example.com/cozy2.jpg"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Cozier Corners" || got.ImageURL != "https://example.com/cozy2.jpg" {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := svc.Update(9999, CardInput{Title: "Ghost", ImageURL: "https://example.com/g.jpg"}); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("update missing: expected ErrNotFoundOrForbidden, got %v", err)
	}
	if err := svc.Delete(9999); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("delete missing: expected ErrNotFoundOrForbidden, got %v", err)
	}
	if _, err := svc.Get(9999); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("get missing: expected ErrNotFoundOrForbidden, got %v", err)
	}

	if err := svc.Delete(c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cards, err := svc.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty set after delete, got %d", len(cards))
	}
}

func TestCardRecent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCardService(db)

	for i := 1; i <= 5; i++ {
		in := CardInput{
			Title:    fmt.Sprintf("Card %d", i),
			ImageURL: fmt.Sprintf("https://example.com/%d.jpg", i),
		}
		if _, err := svc.Create(in); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	recent, err := svc.Recent(HomeCardCount)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != HomeCardCount {
		t.Fatalf("expected %d cards, got %d", HomeCardCount, len(recent))
	}
	for i, want := range []string{"Card 5", "Card 4", "Card 3"} {
		if recent[i].Title != want {
			t.Fatalf("recent[%d]: expected %q, got %q", i, want, recent[i].Title)
		}
	}

	all, err := svc.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 5 || all[0].Title != "Card 5" {
		t.Fatalf("expected all 5 newest first, got %d starting with %q", len(all), all[0].Title)
	}
}
