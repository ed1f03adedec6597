package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thesislink/engine/internal/models"
	appErr "github.com/thesislink/engine/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	// GetByEmail resolves a user by email, case-insensitively. Emails are
	// stored lowercased at registration, so the lookup lowercases too.
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	// GetWithProfile loads a user together with its role variant row.
	GetWithProfile(ctx context.Context, id uuid.UUID, dest *models.User) error
	// List returns users matching an optional role and free-text search over
	// name, company name and skills.
	List(ctx context.Context, role models.Role, search string) ([]models.User, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	err := r.db.WithContext(ctx).
		Preload("StudentProfile").Preload("CompanyProfile").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

func (r *userRepository) GetWithProfile(ctx context.Context, id uuid.UUID, dest *models.User) error {
	err := r.db.WithContext(ctx).
		Preload("StudentProfile").Preload("CompanyProfile").
		First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user failed")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, role models.Role, search string) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).
		Preload("StudentProfile").Preload("CompanyProfile")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		pat := "%" + s + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR id IN (?) OR id IN (?)",
			pat,
			r.db.Model(&models.CompanyProfile{}).Select("user_id").Where("LOWER(company_name) LIKE ?", pat),
			r.db.Model(&models.StudentProfile{}).Select("user_id").Where("LOWER(CAST(skills AS TEXT)) LIKE ?", pat),
		)
	}
	var out []models.User
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}
