package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/diewo77/interiorhome/internal/models"
)

func TestDesignCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDesignService(db)
	owner := seedUser(t, db, "owner", models.RoleUser)

	cases := []struct {
		name string
		in   DesignInput
	}{
		{"empty title", DesignInput{Title: "   "}},
		{"long title", DesignInput{Title: strings.Repeat("x", 101)}},
		{"bad image url", DesignInput{Title: "Sofa", ImageURL: "not-a-url"}},
		{"relative image url", DesignInput{Title: "Sofa", ImageURL: "/img/sofa.jpg"}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(owner.ID, tc.in); err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		} else if _, ok := AsValidation(err); !ok {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
	var count int64
	db.Model(&models.Design{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no designs written, got %d", count)
	}
}

func TestDesignCreateNormalizes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDesignService(db)
	owner := seedUser(t, db, "owner", models.RoleUser)

	d, err := svc.Create(owner.ID, DesignInput{
		Title:    "  Reading Nook  ",
		Category: "Attic", // not in the fixed set
		ImageURL: "https://example.com/nook.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Title != "Reading Nook" {
		t.Fatalf("title not trimmed: %q", d.Title)
	}
	if d.Category != "" {
		t.Fatalf("unknown category should be dropped, got %q", d.Category)
	}

	d2, err := svc.Create(owner.ID, DesignInput{Title: "Bedroom Refresh", Category: "Bedroom"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d2.Category != "Bedroom" {
		t.Fatalf("valid category dropped: %q", d2.Category)
	}
}

func TestDesignOwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDesignService(db)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	d, err := svc.Create(alice.ID, DesignInput{Title: "Alice's Kitchen", Category: "Kitchen"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(d.ID, bob.ID, DesignInput{Title: "Hijacked"}); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("cross-user update: expected ErrNotFoundOrForbidden, got %v", err)
	}
	if err := svc.Delete(d.ID, bob.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("cross-user delete: expected ErrNotFoundOrForbidden, got %v", err)
	}
	if _, err := svc.Get(d.ID, bob.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("cross-user get: expected ErrNotFoundOrForbidden, got %v", err)
	}

	// The row is untouched and still owned by alice.
	got, err := svc.Get(d.ID, alice.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Title != "Alice's Kitchen" {
		t.Fatalf("row was modified: %q", got.Title)
	}

	if err := svc.Update(d.ID, alice.ID, DesignInput{Title: "Alice's New Kitchen", Category: "Kitchen"}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if err := svc.Delete(d.ID, alice.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(d.ID, alice.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("double delete: expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestDesignListPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDesignService(db)
	owner := seedUser(t, db, "owner", models.RoleUser)
	other := seedUser(t, db, "other", models.RoleUser)

	for i := 1; i <= 10; i++ {
		if _, err := svc.Create(owner.ID, DesignInput{Title: fmt.Sprintf("Design %02d", i)}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	// Another user's rows must never bleed into the listing.
	if _, err := svc.Create(other.ID, DesignInput{Title: "Not Yours"}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	page1, pg, err := svc.List(owner.ID, 1)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1) != PageSize {
		t.Fatalf("page 1: expected %d designs, got %d", PageSize, len(page1))
	}
	if pg.Total != 10 || pg.TotalPages != 2 || pg.Page != 1 {
		t.Fatalf("unexpected pagination: %+v", pg)
	}
	if page1[0].Title != "Design 10" {
		t.Fatalf("expected newest first, got %q", page1[0].Title)
	}

	page2, pg, err := svc.List(owner.ID, 2)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("page 2: expected 2 designs, got %d", len(page2))
	}
	if page2[len(page2)-1].Title != "Design 01" {
		t.Fatalf("expected oldest last, got %q", page2[len(page2)-1].Title)
	}

	// Page numbers below 1 clamp to the first page.
	clamped, pg, err := svc.List(owner.ID, -3)
	if err != nil {
		t.Fatalf("list clamped: %v", err)
	}
	if pg.Page != 1 || len(clamped) != PageSize {
		t.Fatalf("expected clamp to page 1, got page %d with %d designs", pg.Page, len(clamped))
	}

	// A page past the end is empty, not an error.
	empty, _, err := svc.List(owner.ID, 99)
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d designs", len(empty))
	}

	n, err := svc.CountForUser(owner.ID)
	if err != nil || n != 10 {
		t.Fatalf("count for user: got %d, %v", n, err)
	}
}
