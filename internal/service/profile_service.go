// Package service implements the application's business logic on top of the
// repository layer. Handlers validate raw input before calling in; services
// own ownership checks, nested-list mutation and populate logic.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devlink/internal/document"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// UpsertProfileInput carries the profile submit payload plus the caller
// identity. The handle is always derived from the caller's username.
type UpsertProfileInput struct {
	UserID    uint
	Username  string
	Company   string
	Location  string
	Status    string
	Skills    string
	Bio       string
	Twitter   string
	Linkedin  string
	Github    string
	Portfolio string
}

// AddExperienceInput carries a validated experience entry payload.
type AddExperienceInput struct {
	UserID uint
	Entry  validation.ExperienceInput
}

// UpdateExperienceInput is a partial patch for an existing experience entry.
// Nil fields are left untouched.
type UpdateExperienceInput struct {
	UserID      uint
	EntryID     string
	Title       *string
	Company     *string
	Location    *string
	From        *time.Time
	To          *time.Time
	Current     *bool
	Description *string
}

// AddEducationInput carries a validated education entry payload.
type AddEducationInput struct {
	UserID uint
	Entry  validation.EducationInput
}

// UpdateEducationInput is a partial patch for an existing education entry.
// Nil fields are left untouched.
type UpdateEducationInput struct {
	UserID      uint
	EntryID     string
	School      *string
	Degree      *string
	Field       *string
	Location    *string
	From        *time.Time
	To          *time.Time
	Current     *bool
	Description *string
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// splitSkills turns the comma-delimited raw skills string into a trimmed list.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		skills = append(skills, strings.TrimSpace(p))
	}
	return skills
}

// entryCurrent resolves the current flag for a new experience/education
// entry: an explicit value wins, otherwise the entry is current when it has
// no end date.
func entryCurrent(current *bool, to *time.Time) bool {
	if current != nil {
		return *current
	}
	return to == nil
}

// Upsert creates the caller's profile on first submit and patches it on every
// submit after that. The handle is fixed to the caller's username at creation
// and never changes.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil && models.CodeOf(err) != models.CodeNotFound {
		return nil, err
	}

	if profile == nil || err != nil {
		existing, err := s.profileRepo.GetByHandle(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewDuplicateError("Handle already exists")
		}

		profile = &models.Profile{
			UserID: in.UserID,
			Handle: in.Username,
		}
		s.applyProfileFields(profile, in)

		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return s.populateProfile(ctx, profile)
	}

	s.applyProfileFields(profile, in)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// applyProfileFields patches the scalar fields. Empty strings leave the
// stored value alone, except the online links which are replaced as a block.
func (s *ProfileService) applyProfileFields(profile *models.Profile, in UpsertProfileInput) {
	if in.Status != "" {
		profile.Status = in.Status
	}
	if in.Company != "" {
		profile.Company = in.Company
	}
	if in.Location != "" {
		profile.Location = in.Location
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.Skills != "" {
		profile.Skills = splitSkills(in.Skills)
	}
	profile.Online = datatypes.NewJSONType(models.OnlineLinks{
		Twitter:   in.Twitter,
		Linkedin:  in.Linkedin,
		Github:    in.Github,
		Portfolio: in.Portfolio,
	})
}

// GetOwn returns the caller's profile with the owner projection attached.
func (s *ProfileService) GetOwn(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// GetByHandleOrID resolves the public profile lookup by handle or user id.
func (s *ProfileService) GetByHandleOrID(ctx context.Context, handleOrID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByHandleOrUserID(ctx, handleOrID)
	if err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// List returns all profiles, newest first, with owner projections attached.
// An empty database yields an empty list, not an error.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(profiles))
	for i := range profiles {
		ids = append(ids, profiles[i].UserID)
	}
	refs, err := s.userRepo.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if ref, ok := refs[profiles[i].UserID]; ok {
			r := ref
			profiles[i].User = &r
		}
	}
	return profiles, nil
}

// AddExperience prepends a new work history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := models.ExperienceEntry{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Title:       in.Entry.Title,
		Company:     in.Entry.Company,
		Location:    in.Entry.Location,
		From:        *in.Entry.From,
		To:          in.Entry.To,
		Current:     entryCurrent(in.Entry.Current, in.Entry.To),
		Description: in.Entry.Description,
	}

	profile.Experience = document.Prepend(profile.Experience, entry)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// UpdateExperience patches an entry in place, keeping its list position.
func (s *ProfileService) UpdateExperience(ctx context.Context, in UpdateExperienceInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := document.Update(profile.Experience, in.EntryID, in.UserID, func(e models.ExperienceEntry) models.ExperienceEntry {
		if in.Title != nil {
			e.Title = *in.Title
		}
		if in.Company != nil {
			e.Company = *in.Company
		}
		if in.Location != nil {
			e.Location = *in.Location
		}
		if in.From != nil {
			e.From = *in.From
		}
		if in.To != nil {
			e.To = in.To
		}
		if in.Current != nil {
			e.Current = *in.Current
		}
		if in.Description != nil {
			e.Description = *in.Description
		}
		return e
	})
	if err != nil {
		return nil, experienceEntryError(err)
	}

	profile.Experience = updated
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// RemoveExperience deletes an entry from the caller's profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining, err := document.Remove(profile.Experience, entryID, userID)
	if err != nil {
		return nil, experienceEntryError(err)
	}

	profile.Experience = remaining
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// AddEducation prepends a new education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	entry := models.EducationEntry{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		School:      in.Entry.School,
		Degree:      in.Entry.Degree,
		Field:       in.Entry.Field,
		Location:    in.Entry.Location,
		From:        *in.Entry.From,
		To:          in.Entry.To,
		Current:     entryCurrent(in.Entry.Current, in.Entry.To),
		Description: in.Entry.Description,
	}

	profile.Education = document.Prepend(profile.Education, entry)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// UpdateEducation patches an entry in place, keeping its list position.
func (s *ProfileService) UpdateEducation(ctx context.Context, in UpdateEducationInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := document.Update(profile.Education, in.EntryID, in.UserID, func(e models.EducationEntry) models.EducationEntry {
		if in.School != nil {
			e.School = *in.School
		}
		if in.Degree != nil {
			e.Degree = *in.Degree
		}
		if in.Field != nil {
			e.Field = *in.Field
		}
		if in.Location != nil {
			e.Location = *in.Location
		}
		if in.From != nil {
			e.From = *in.From
		}
		if in.To != nil {
			e.To = in.To
		}
		if in.Current != nil {
			e.Current = *in.Current
		}
		if in.Description != nil {
			e.Description = *in.Description
		}
		return e
	})
	if err != nil {
		return nil, educationEntryError(err)
	}

	profile.Education = updated
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

// RemoveEducation deletes an entry from the caller's profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining, err := document.Remove(profile.Education, entryID, userID)
	if err != nil {
		return nil, educationEntryError(err)
	}

	profile.Education = remaining
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return s.populateProfile(ctx, profile)
}

func (s *ProfileService) populateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	refs, err := s.userRepo.GetRefs(ctx, []uint{profile.UserID})
	if err != nil {
		return nil, err
	}
	if ref, ok := refs[profile.UserID]; ok {
		r := ref
		profile.User = &r
	}
	return profile, nil
}

func experienceEntryError(err error) error {
	switch {
	case errors.Is(err, document.ErrEntryNotFound):
		return models.NewNotFoundError("No experience entry exists by the given id")
	case errors.Is(err, document.ErrNotOwner):
		return models.NewForbiddenError("Permission Denied")
	default:
		return models.NewInternalError(err)
	}
}

func educationEntryError(err error) error {
	switch {
	case errors.Is(err, document.ErrEntryNotFound):
		return models.NewNotFoundError("No education entry exists by the given id")
	case errors.Is(err, document.ErrNotOwner):
		return models.NewForbiddenError("Permission Denied")
	default:
		return models.NewInternalError(err)
	}
}
