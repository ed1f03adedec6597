package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

func TestCreateProjectRequiresCompany(t *testing.T) {
	f := newFixture(t)
	student := f.registerStudent(t, "student@example.com")

	_, err := f.projects.Create(context.Background(), student.ID, &ProjectInput{
		Title:          "Nope",
		Description:    "Students cannot post",
		Category:       "Other",
		RequiredSkills: []string{"Go"},
		Duration:       "3 months",
		StartDate:      time.Now(),
	})
	if !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateProjectStampsCompany(t *testing.T) {
	f := newFixture(t)
	company := f.registerCompany(t, "acme@example.com", "Acme Robotics")

	p := f.createProject(t, company.ID, "Robot arm control")
	if p.CompanyName != "Acme Robotics" {
		t.Fatalf("company name = %q", p.CompanyName)
	}
	if p.Status != models.ProjectOpen {
		t.Fatalf("status = %q, want open", p.Status)
	}
	if p.Compensation != "Unpaid" {
		t.Fatalf("compensation default = %q", p.Compensation)
	}
}

func TestGetProjectCountsViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company := f.registerCompany(t, "acme@example.com", "Acme")
	p := f.createProject(t, company.ID, "Counted")

	const n = 4
	var last *models.Project
	for i := 0; i < n; i++ {
		var err error
		last, err = f.projects.Get(ctx, p.ID)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}
	if last.Views != n {
		t.Fatalf("views = %d, want %d", last.Views, n)
	}

	if _, err := f.projects.Get(ctx, uuid.New()); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestUpdateProjectOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerCompany(t, "owner@example.com", "Owner BV")
	rival := f.registerCompany(t, "rival@example.com", "Rival BV")
	p := f.createProject(t, owner.ID, "Original title")

	input := &ProjectInput{
		Title:          "Hijacked",
		Description:    "Should not apply",
		Category:       "Other",
		RequiredSkills: []string{"Go"},
		Duration:       "3 months",
		StartDate:      time.Now(),
	}
	if _, err := f.projects.Update(ctx, p.ID, rival.ID, input); !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// The rejected update must leave the row untouched.
	got, err := f.projects.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Original title" {
		t.Fatalf("title mutated to %q", got.Title)
	}

	input.Title = "Renamed by owner"
	updated, err := f.projects.Update(ctx, p.ID, owner.ID, input)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Renamed by owner" {
		t.Fatalf("title = %q", updated.Title)
	}
}

func TestDeleteProjectCascadesApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company := f.registerCompany(t, "acme@example.com", "Acme")
	student := f.registerStudent(t, "student@example.com")
	p := f.createProject(t, company.ID, "Doomed")

	if _, err := f.applications.Apply(ctx, student.ID, &ApplyInput{ProjectID: p.ID, CoverLetter: "hi"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := f.projects.Delete(ctx, p.ID, student.ID); !appErr.IsCode(err, appErr.CodeForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if err := f.projects.Delete(ctx, p.ID, company.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var apps int64
	if err := f.db.Model(&models.Application{}).Where("project_id = ?", p.ID).Count(&apps).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if apps != 0 {
		t.Fatalf("%d applications survived the project delete", apps)
	}

	// The student's application list is empty again.
	list, err := f.applications.ListFor(ctx, student)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
