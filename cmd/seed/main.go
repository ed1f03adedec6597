package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/thesislink/engine/internal/repository"
	"github.com/thesislink/engine/internal/services"
	"github.com/thesislink/engine/pkg/config"
	"github.com/thesislink/engine/pkg/database"
	"github.com/thesislink/engine/pkg/logger"
)

// Development seed data: a few students, companies, and open postings.
func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		log.Fatal("refusing to seed a production database")
	}

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL)
	projectSvc := services.NewProjectService(projectRepo, userRepo)

	students := []*services.RegisterStudentInput{
		{
			Name:         "Sophie van der Berg",
			Email:        "sophie.vandenberg@student.ru.nl",
			Password:     "password123",
			University:   "Radboud University Nijmegen",
			StudyProgram: "Artificial Intelligence",
			StudyYear:    3,
			Skills:       []string{"Python", "Machine Learning", "TensorFlow", "Data Analysis"},
			Bio:          "Passionate AI student looking for challenging thesis projects in machine learning.",
			Location:     "Nijmegen, Netherlands",
		},
		{
			Name:         "Lars Hendriksen",
			Email:        "lars.hendriksen@student.han.nl",
			Password:     "password123",
			University:   "HAN University of Applied Sciences",
			StudyProgram: "Software Engineering",
			StudyYear:    4,
			Skills:       []string{"JavaScript", "React", "Node.js", "MongoDB"},
			Bio:          "Full-stack developer interested in web development thesis opportunities.",
			Location:     "Nijmegen, Netherlands",
		},
		{
			Name:         "Emma de Vries",
			Email:        "emma.devries@student.ru.nl",
			Password:     "password123",
			University:   "Radboud University Nijmegen",
			StudyProgram: "Data Science",
			StudyYear:    2,
			Skills:       []string{"R", "Python", "Statistics", "SQL"},
			Bio:          "Data science enthusiast seeking real-world data analysis projects.",
			Location:     "Nijmegen, Netherlands",
		},
	}

	companies := []*services.RegisterCompanyInput{
		{
			Name:        "Tom Bach",
			Email:       "tom@techinnovate.nl",
			Password:    "password123",
			CompanyName: "TechInnovate NL",
			Industry:    "Technology",
			CompanySize: "11-50",
			Website:     "https://techinnovate.nl",
			Location:    "Nijmegen, Netherlands",
			Description: "Leading technology company in Nijmegen specializing in AI and machine learning solutions.",
		},
		{
			Name:        "Maria Santos",
			Email:       "maria@datawise.nl",
			Password:    "password123",
			CompanyName: "DataWise Analytics",
			Industry:    "Data Analytics",
			CompanySize: "1-10",
			Website:     "https://datawise.nl",
			Location:    "Nijmegen, Netherlands",
			Description: "Boutique analytics consultancy helping businesses make data-driven decisions.",
		},
	}

	for _, s := range students {
		if _, err := authSvc.RegisterStudent(ctx, s); err != nil {
			log.Warn("seed student skipped", zap.String("email", s.Email), zap.Error(err))
		}
	}

	var companyIDs []string
	for _, c := range companies {
		u, err := authSvc.RegisterCompany(ctx, c)
		if err != nil {
			log.Warn("seed company skipped", zap.String("email", c.Email), zap.Error(err))
			continue
		}
		companyIDs = append(companyIDs, u.ID.String())

		_, err = projectSvc.Create(ctx, u.ID, &services.ProjectInput{
			Title:          fmt.Sprintf("Thesis project at %s", c.CompanyName),
			Description:    "Work with our engineering team on an applied research topic with real production data.",
			Category:       "Machine Learning",
			RequiredSkills: []string{"Python", "Machine Learning"},
			Tags:           []string{"thesis", "research"},
			Duration:       "6 months",
			StartDate:      time.Now().AddDate(0, 1, 0),
			Location:       c.Location,
			Remote:         true,
			Compensation:   "Paid",
		})
		if err != nil {
			log.Warn("seed project skipped", zap.Error(err))
		}
	}

	fmt.Fprintf(os.Stdout, "seeded %d students, %d companies\n", len(students), len(companyIDs))
}
