package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db(): %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.CompanyProfile{},
		&models.Project{},
		&models.Application{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, email, companyName string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "Owner",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleCompany,
		CompanyProfile: &models.CompanyProfile{
			CompanyName: companyName,
			Industry:    "Technology",
		},
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return u
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "Student",
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleStudent,
		StudentProfile: &models.StudentProfile{
			University:   "Radboud University Nijmegen",
			StudyProgram: "Computing Science",
		},
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return u
}

func seedProject(t *testing.T, db *gorm.DB, owner *models.User, mut func(*models.Project)) *models.Project {
	t.Helper()
	p := &models.Project{
		CompanyID:      owner.ID,
		CompanyName:    owner.CompanyName(),
		Title:          "Thesis project",
		Description:    "An applied research topic",
		Category:       "Machine Learning",
		RequiredSkills: []string{"Python"},
		Duration:       "6 months",
		StartDate:      time.Now().AddDate(0, 1, 0),
		Status:         models.ProjectOpen,
	}
	if mut != nil {
		mut(p)
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func TestApplicationUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	company := seedCompany(t, db, "acme@example.com", "Acme")
	student := seedStudent(t, db, "student@example.com")
	project := seedProject(t, db, company, nil)

	repo := NewApplicationRepository(db)
	a := &models.Application{
		ProjectID:   project.ID,
		StudentID:   student.ID,
		CompanyID:   company.ID,
		CoverLetter: "first",
	}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Bypass any pre-check: inserting the same pair again must be rejected
	// by the unique index itself and surface as a conflict.
	dup := &models.Application{
		ProjectID:   project.ID,
		StudentID:   student.ID,
		CompanyID:   company.ID,
		CoverLetter: "second",
	}
	err := repo.Create(ctx, dup)
	if !appErr.IsCode(err, appErr.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// A different project for the same student is fine.
	other := seedProject(t, db, company, func(p *models.Project) { p.Title = "Other" })
	if err := repo.Create(ctx, &models.Application{
		ProjectID:   other.ID,
		StudentID:   student.ID,
		CompanyID:   company.ID,
		CoverLetter: "third",
	}); err != nil {
		t.Fatalf("different project: %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	company := seedCompany(t, db, "acme@example.com", "Acme")
	project := seedProject(t, db, company, nil)
	repo := NewProjectRepository(db)

	const n = 5
	for i := 0; i < n; i++ {
		if err := repo.IncrementViews(ctx, project.ID); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}

	var p models.Project
	if err := repo.GetByID(ctx, project.ID, &p); err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Views != n {
		t.Fatalf("expected %d views, got %d", n, p.Views)
	}

	if err := repo.IncrementViews(ctx, uuid.New()); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not_found for missing project, got %v", err)
	}
}

func TestUserEmailUnique(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	seedStudent(t, db, "dup@example.com")
	err := repo.Create(ctx, &models.User{
		Name:         "Another",
		Email:        "dup@example.com",
		PasswordHash: "x",
		Role:         models.RoleStudent,
	})
	if !appErr.IsCode(err, appErr.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetByEmailCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	seedStudent(t, db, "sophie@x.edu")

	var u models.User
	if err := repo.GetByEmail(ctx, "  Sophie@X.EDU ", &u); err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u.Email != "sophie@x.edu" {
		t.Fatalf("unexpected email %q", u.Email)
	}
	if u.StudentProfile == nil {
		t.Fatal("expected student profile preloaded")
	}
}
