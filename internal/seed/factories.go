// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var statuses = []string{
	"Backend Developer", "Frontend Developer", "Full Stack Developer",
	"DevOps Engineer", "Site Reliability Engineer", "Data Engineer",
	"Engineering Manager", "Student", "Freelancer",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL", "PostgreSQL",
	"Redis", "Docker", "Kubernetes", "AWS", "React", "Vue", "gRPC", "Kafka",
	"Terraform", "Linux", "Git", "CI/CD", "GraphQL",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp up to maxDays in the past for a realistic
// created_at spread.
func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	genders := []string{models.GenderMale, models.GenderFemale, models.GenderUnspecified}
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(10, 99))
	email := gofakeit.Email()

	user := &models.User{
		Username:  username,
		Fullname:  gofakeit.Name(),
		Email:     email,
		Gender:    genders[f.rng.Intn(len(genders))],
		Avatar:    fmt.Sprintf("http://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", gofakeit.UUID()),
		CreatedAt: f.pastTime(f.opts.MaxDays),
	}

	// Password handling: allow skipping bcrypt in dev fast mode.
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile constructs and persists a profile for the given user,
// including a few experience and education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skills := make([]string, 0, 4)
	for _, i := range f.rng.Perm(len(skillPool))[:3+f.rng.Intn(3)] {
		skills = append(skills, skillPool[i])
	}

	profile := &models.Profile{
		UserID:   user.ID,
		Handle:   user.Username,
		Company:  gofakeit.Company(),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:   statuses[f.rng.Intn(len(statuses))],
		Bio:      gofakeit.Sentence(12),
		Skills:   datatypes.NewJSONSlice(skills),
		Online: datatypes.NewJSONType(models.OnlineLinks{
			Github:  "github.com/" + user.Username,
			Twitter: "twitter.com/" + user.Username,
		}),
		Experience: f.buildExperience(user.ID),
		Education:  f.buildEducation(user.ID),
		CreatedAt:  f.pastTime(f.opts.MaxDays),
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (f *Factory) buildExperience(userID uint) []models.ExperienceEntry {
	n := 1 + f.rng.Intn(3)
	entries := make([]models.ExperienceEntry, 0, n)
	for i := 0; i < n; i++ {
		from := time.Now().AddDate(-(i + 1), -f.rng.Intn(12), 0)
		entry := models.ExperienceEntry{
			ID:          uuid.NewString(),
			UserID:      userID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Description: gofakeit.Sentence(10),
		}
		if i == 0 {
			entry.Current = true
		} else {
			to := from.AddDate(1, 0, 0)
			entry.To = &to
		}
		entries = append(entries, entry)
	}
	return entries
}

func (f *Factory) buildEducation(userID uint) []models.EducationEntry {
	from := time.Now().AddDate(-(6 + f.rng.Intn(6)), 0, 0)
	to := from.AddDate(4, 0, 0)
	return []models.EducationEntry{{
		ID:     uuid.NewString(),
		UserID: userID,
		School: gofakeit.City() + " University",
		Degree: "BSc",
		Field:  "Computer Science",
		From:   from,
		To:     &to,
	}}
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	created := f.pastTime(f.opts.MaxDays)
	post := &models.Post{
		UserID:    user.ID,
		Text:      gofakeit.Paragraph(1, 2, 8, " "),
		Name:      user.Fullname,
		Avatar:    user.Avatar,
		CreatedAt: created,
		UpdatedAt: created,
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// AddLikes attaches likes to the post from a random subset of users.
func (f *Factory) AddLikes(post *models.Post, users []*models.User) error {
	likes := make([]models.LikeRecord, 0)
	for _, i := range f.rng.Perm(len(users)) {
		if len(likes) >= 1+f.rng.Intn(5) {
			break
		}
		likes = append(likes, models.LikeRecord{UserID: users[i].ID})
	}

	post.Likes = datatypes.NewJSONSlice(likes)
	return f.db.Save(post).Error
}

// AddComments attaches comments to the post from random users, newest first.
func (f *Factory) AddComments(post *models.Post, users []*models.User) error {
	n := f.rng.Intn(4)
	comments := make([]models.CommentEntry, 0, n)
	for i := 0; i < n; i++ {
		author := users[f.rng.Intn(len(users))]
		at := post.CreatedAt.Add(time.Duration(i+1) * time.Hour)
		comments = append([]models.CommentEntry{{
			ID:        uuid.NewString(),
			UserID:    author.ID,
			Text:      gofakeit.Sentence(8),
			Name:      author.Fullname,
			Avatar:    author.Avatar,
			CreatedAt: at,
			UpdatedAt: at,
		}}, comments...)
	}

	post.Comments = datatypes.NewJSONSlice(comments)
	return f.db.Save(post).Error
}
