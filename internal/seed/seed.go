package seed

import (
	"fmt"
	"log"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxDays     int
	ShouldClean bool
	// SkipBcrypt stores plaintext passwords; only for fast local seeding.
	SkipBcrypt bool
}

// Seed populates the database with test data: users, profiles for most of
// them, and posts carrying likes and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	// Most users fill in a profile, some never do.
	profiles := 0
	for i, user := range users {
		if i%5 == 4 {
			continue
		}
		if _, err := f.CreateProfile(user); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		profiles++
	}
	log.Printf("created %d profiles", profiles)

	for i := 0; i < opts.NumPosts; i++ {
		author := users[i%len(users)]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if err := f.AddLikes(post, users); err != nil {
			return fmt.Errorf("failed to add likes: %w", err)
		}
		if err := f.AddComments(post, users); err != nil {
			return fmt.Errorf("failed to add comments: %w", err)
		}
	}
	log.Printf("created %d posts", opts.NumPosts)

	return nil
}

// clearData removes all seedable rows. Posts and profiles go before users so
// no orphaned documents survive a partial run.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{&models.Post{}, &models.Profile{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
