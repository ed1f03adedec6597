package services

import (
	"context"
	"testing"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestUpdateUserSelfOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.registerStudent(t, "alice@example.com")
	mallory := f.registerStudent(t, "mallory@example.com")

	_, err := f.users.Update(ctx, alice.ID, mallory.ID, &UpdateUserInput{Name: strPtr("Hacked")})
	if !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	got, err := f.users.Get(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Test Student" {
		t.Fatalf("name mutated to %q", got.Name)
	}
}

func TestUpdateUserPatchesOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.registerStudent(t, "alice@example.com")

	updated, err := f.users.Update(ctx, u.ID, u.ID, &UpdateUserInput{
		Name:   strPtr("Alice Renamed"),
		Skills: []string{"Rust", "Go"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alice Renamed" {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.StudentProfile == nil {
		t.Fatal("student profile missing")
	}
	if updated.StudentProfile.University != "TU Delft" {
		t.Fatalf("untouched field changed: %q", updated.StudentProfile.University)
	}
	if len(updated.StudentProfile.Skills) != 2 {
		t.Fatalf("skills = %v", updated.StudentProfile.Skills)
	}

	// A company-variant field on a student account is a no-op.
	if _, err := f.users.Update(ctx, u.ID, u.ID, &UpdateUserInput{CompanyName: strPtr("Not a company")}); err != nil {
		t.Fatalf("variant mismatch update: %v", err)
	}
	got, err := f.users.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompanyProfile != nil {
		t.Fatal("student grew a company profile")
	}
}

// Profile reads are cached; an update must invalidate so the next read sees
// fresh data, not a stale entry.
func TestUpdateUserInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.registerStudent(t, "alice@example.com")

	if _, err := f.users.Get(ctx, u.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if _, err := f.users.Update(ctx, u.ID, u.ID, &UpdateUserInput{Name: strPtr("Fresh Name")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := f.users.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "Fresh Name" {
		t.Fatalf("stale read: %q", got.Name)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company := f.registerCompany(t, "acme@example.com", "Acme")
	student := f.registerStudent(t, "student@example.com")
	p := f.createProject(t, company.ID, "Orphan candidate")
	if _, err := f.applications.Apply(ctx, student.ID, &ApplyInput{ProjectID: p.ID}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := f.users.Delete(ctx, company.ID, student.ID); !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := f.users.Delete(ctx, company.ID, company.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for table, model := range map[string]any{
		"projects":         &models.Project{},
		"applications":     &models.Application{},
		"company_profiles": &models.CompanyProfile{},
	} {
		var n int64
		if err := f.db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Fatalf("%d rows left in %s after account delete", n, table)
		}
	}

	if _, err := f.users.Get(ctx, company.ID); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
