package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"go.uber.org/goleak"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	"github.com/thesislink/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Nop()
	goleak.VerifyTestMain(m)
}

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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	err = db.AutoMigrate(
		&models.User{}, &models.StudentProfile{}, &models.CompanyProfile{},
		&models.Project{}, &models.Application{}, &models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedApplication(t *testing.T, db *gorm.DB) *models.Application {
	t.Helper()
	company := &models.User{
		Name: "Owner", Email: "acme@example.com", PasswordHash: "x", Role: models.RoleCompany,
		CompanyProfile: &models.CompanyProfile{CompanyName: "Acme", Industry: "Technology"},
	}
	student := &models.User{
		Name: "Sophie", Email: "sophie@example.com", PasswordHash: "x", Role: models.RoleStudent,
		StudentProfile: &models.StudentProfile{University: "TU Delft", StudyProgram: "CS"},
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	project := &models.Project{
		CompanyID: company.ID, CompanyName: "Acme",
		Title: "Thesis topic", Description: "d", Category: "Other",
		RequiredSkills: []string{"Go"}, Duration: "3 months",
		Status: models.ProjectOpen,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	a := &models.Application{
		ProjectID: project.ID, StudentID: student.ID, CompanyID: company.ID,
		CoverLetter: "hi", Status: models.ApplicationAccepted,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return a
}

func TestHandleApplicationSubmitted(t *testing.T) {
	db := newTestDB(t)
	a := seedApplication(t, db)

	h := NewNotificationTaskHandler(
		repository.NewApplicationRepository(db),
		repository.NewNotificationRepository(db),
	)
	if err := h.HandleApplicationSubmitted(context.Background(), NewApplicationSubmittedTask(a.ID)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	list, err := repository.NewNotificationRepository(db).ListByUser(context.Background(), a.CompanyID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d notifications, want 1", len(list))
	}
	n := list[0]
	if n.Kind != models.NotificationApplicationSubmitted {
		t.Fatalf("kind = %q", n.Kind)
	}
	if !strings.Contains(n.Message, "Sophie") || !strings.Contains(n.Message, "Thesis topic") {
		t.Fatalf("message = %q", n.Message)
	}
}

func TestHandleApplicationStatus(t *testing.T) {
	db := newTestDB(t)
	a := seedApplication(t, db)

	h := NewNotificationTaskHandler(
		repository.NewApplicationRepository(db),
		repository.NewNotificationRepository(db),
	)
	if err := h.HandleApplicationStatus(context.Background(), NewApplicationStatusTask(a.ID)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	list, err := repository.NewNotificationRepository(db).ListByUser(context.Background(), a.StudentID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d notifications, want 1", len(list))
	}
	if !strings.Contains(list[0].Message, "accepted") {
		t.Fatalf("message = %q", list[0].Message)
	}
}

// A task for a withdrawn application is dropped, not retried.
func TestHandleWithdrawnApplicationSkipsRetry(t *testing.T) {
	db := newTestDB(t)
	a := seedApplication(t, db)
	if err := db.Delete(&models.Application{}, "id = ?", a.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	h := NewNotificationTaskHandler(
		repository.NewApplicationRepository(db),
		repository.NewNotificationRepository(db),
	)
	err := h.HandleApplicationStatus(context.Background(), NewApplicationStatusTask(a.ID))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
