package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/thesislink/engine/internal/models"
	"github.com/thesislink/engine/internal/repository"
	appErr "github.com/thesislink/engine/pkg/errors"
)

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, role models.Role, search string) ([]models.User, error)
	// Update mutates a profile. Self-service only: identity must equal id.
	Update(ctx context.Context, id, identity uuid.UUID, input *UpdateUserInput) (*models.User, error)
	// Delete removes an account and, via FK cascades, its projects and
	// applications. Self-service only.
	Delete(ctx context.Context, id, identity uuid.UUID) error
}

// UpdateUserInput carries the mutable profile fields. Nil means unchanged.
// Variant fields are applied only when the account has that variant.
type UpdateUserInput struct {
	Name     *string
	Location *string
	Avatar   *string

	University   *string
	StudyProgram *string
	StudyYear    *int
	Skills       []string
	Bio          *string

	CompanyName *string
	Industry    *string
	CompanySize *string
	Website     *string
	Description *string
}

type userService struct {
	users repository.UserRepository
	// profiles caches public reads; entries drop on update/delete.
	profiles *cache.Cache
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users:    users,
		profiles: cache.New(time.Minute, 5*time.Minute),
	}
}

var _ UserService = (*userService)(nil)

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if v, found := s.profiles.Get(id.String()); found {
		return v.(*models.User), nil
	}
	var u models.User
	if err := s.users.GetWithProfile(ctx, id, &u); err != nil {
		return nil, err
	}
	s.profiles.Set(id.String(), &u, cache.DefaultExpiration)
	return &u, nil
}

func (s *userService) List(ctx context.Context, role models.Role, search string) ([]models.User, error) {
	return s.users.List(ctx, role, search)
}

func (s *userService) Update(ctx context.Context, id, identity uuid.UUID, input *UpdateUserInput) (*models.User, error) {
	if id != identity {
		return nil, appErr.New(appErr.CodeForbidden, "not authorized to update this profile")
	}

	var u models.User
	if err := s.users.GetWithProfile(ctx, id, &u); err != nil {
		return nil, err
	}

	setString(&u.Name, input.Name)
	setString(&u.Location, input.Location)
	setString(&u.Avatar, input.Avatar)

	if u.StudentProfile != nil {
		p := u.StudentProfile
		setString(&p.University, input.University)
		setString(&p.StudyProgram, input.StudyProgram)
		if input.StudyYear != nil {
			p.StudyYear = *input.StudyYear
		}
		if input.Skills != nil {
			p.Skills = input.Skills
		}
		setString(&p.Bio, input.Bio)
	}
	if u.CompanyProfile != nil {
		p := u.CompanyProfile
		setString(&p.CompanyName, input.CompanyName)
		setString(&p.Industry, input.Industry)
		setString(&p.CompanySize, input.CompanySize)
		setString(&p.Website, input.Website)
		setString(&p.Description, input.Description)
	}

	if err := s.users.Update(ctx, &u); err != nil {
		return nil, err
	}
	s.profiles.Delete(id.String())
	return &u, nil
}

func (s *userService) Delete(ctx context.Context, id, identity uuid.UUID) error {
	if id != identity {
		return appErr.New(appErr.CodeForbidden, "not authorized to delete this profile")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.profiles.Delete(id.String())
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
