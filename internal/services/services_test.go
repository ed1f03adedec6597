package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	"github.com/thesislink/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Nop()
	os.Exit(m.Run())
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

// fixture bundles the services against one database so workflow tests read
// like the real call sequence.
type fixture struct {
	db           *gorm.DB
	auth         AuthService
	users        UserService
	projects     ProjectService
	applications ApplicationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	return &fixture{
		db:           db,
		auth:         NewAuthService(userRepo, []byte("test-secret"), time.Hour),
		users:        NewUserService(userRepo),
		projects:     NewProjectService(projectRepo, userRepo),
		applications: NewApplicationService(db, applicationRepo, projectRepo, nil),
	}
}

func (f *fixture) registerStudent(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.auth.RegisterStudent(context.Background(), &RegisterStudentInput{
		Name:         "Test Student",
		Email:        email,
		Password:     "hunter22",
		University:   "TU Delft",
		StudyProgram: "Computer Science",
		StudyYear:    4,
		Skills:       []string{"Go", "SQL"},
	})
	if err != nil {
		t.Fatalf("register student: %v", err)
	}
	return u
}

func (f *fixture) registerCompany(t *testing.T, email, companyName string) *models.User {
	t.Helper()
	u, err := f.auth.RegisterCompany(context.Background(), &RegisterCompanyInput{
		Name:        "Test Owner",
		Email:       email,
		Password:    "hunter22",
		CompanyName: companyName,
		Industry:    "Technology",
		CompanySize: "11-50",
	})
	if err != nil {
		t.Fatalf("register company: %v", err)
	}
	return u
}

func (f *fixture) createProject(t *testing.T, ownerID uuid.UUID, title string) *models.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), ownerID, &ProjectInput{
		Title:          title,
		Description:    "An applied research topic with enough detail",
		Category:       "Machine Learning",
		RequiredSkills: []string{"Python"},
		Duration:       "6 months",
		StartDate:      time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}
