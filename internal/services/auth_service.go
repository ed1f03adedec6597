package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	appErr "github.com/thesislink/engine/pkg/errors"
)

// dummyHash keeps the unknown-email and wrong-password paths in the same
// timing class: both run exactly one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("thesislink-dummy"), bcrypt.DefaultCost)

type AuthService interface {
	RegisterStudent(ctx context.Context, input *RegisterStudentInput) (*models.User, error)
	RegisterCompany(ctx context.Context, input *RegisterCompanyInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	// IssueToken signs a bearer token carrying the user's id and role.
	IssueToken(user *models.User) (string, error)
}

// RegisterStudentInput is the student variant of a registration request.
type RegisterStudentInput struct {
	Name         string
	Email        string
	Password     string
	University   string
	StudyProgram string
	StudyYear    int
	Skills       []string
	Bio          string
	Location     string
}

// RegisterCompanyInput is the company variant of a registration request.
type RegisterCompanyInput struct {
	Name        string
	Email       string
	Password    string
	CompanyName string
	Industry    string
	CompanySize string
	Website     string
	Description string
	Location    string
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authService{users: users, hmacSecret: secret, tokenTTL: tokenTTL}
}

var _ AuthService = (*authService)(nil)

func (s *authService) RegisterStudent(ctx context.Context, input *RegisterStudentInput) (*models.User, error) {
	user := &models.User{
		Name:     input.Name,
		Email:    normalizeEmail(input.Email),
		Role:     models.RoleStudent,
		Location: input.Location,
		StudentProfile: &models.StudentProfile{
			University:   input.University,
			StudyProgram: input.StudyProgram,
			StudyYear:    input.StudyYear,
			Skills:       input.Skills,
			Bio:          input.Bio,
		},
	}
	return s.register(ctx, user, input.Password)
}

func (s *authService) RegisterCompany(ctx context.Context, input *RegisterCompanyInput) (*models.User, error) {
	user := &models.User{
		Name:     input.Name,
		Email:    normalizeEmail(input.Email),
		Role:     models.RoleCompany,
		Location: input.Location,
		CompanyProfile: &models.CompanyProfile{
			CompanyName: input.CompanyName,
			Industry:    input.Industry,
			CompanySize: input.CompanySize,
			Website:     input.Website,
			Description: input.Description,
		},
	}
	return s.register(ctx, user, input.Password)
}

func (s *authService) register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}
	user.PasswordHash = string(ph)

	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.New(appErr.CodeConflict, "email already registered")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.users.GetByEmail(ctx, email, &user); err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
