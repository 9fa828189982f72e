package repository

import (
	"context"
	"errors"
	"strconv"

	"devlink/internal/database"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles. A profile is
// saved as a whole document, nested lists included, so concurrent writers
// follow last-write-wins at the profile level.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	Save(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	GetByHandleOrUserID(ctx context.Context, handleOrID string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewDuplicateError("Handle already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Save persists the whole profile document, nested lists included.
func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewDuplicateError("Handle already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("No profile exists for the logged in user")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// GetByHandle returns (nil, nil) on a miss. Used for the duplicate handle
// check at profile creation.
func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

// GetByHandleOrUserID resolves the public profile lookup, where the path
// segment may be a handle or a numeric user id.
func (r *profileRepository) GetByHandleOrUserID(ctx context.Context, handleOrID string) (*models.Profile, error) {
	var profile models.Profile

	query := r.db.WithContext(ctx).Where("handle = ?", handleOrID)
	if id, err := strconv.ParseUint(handleOrID, 10, 32); err == nil {
		query = r.db.WithContext(ctx).Where("handle = ? OR user_id = ?", handleOrID, uint(id))
	}

	if err := query.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("No profile exists for the given username")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
