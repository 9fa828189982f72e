package seed

import (
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db, Options{
		NumUsers:   5,
		NumPosts:   8,
		SkipBcrypt: true,
	}))

	var userCount, profileCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profileCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)

	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 4, profileCount)
	assert.EqualValues(t, 8, postCount)
}

func TestSeed_CleanRemovesExistingData(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, NumPosts: 2, SkipBcrypt: true}))
	require.NoError(t, Seed(db, Options{NumUsers: 2, NumPosts: 1, SkipBcrypt: true, ShouldClean: true}))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.EqualValues(t, 2, userCount)
	assert.EqualValues(t, 1, postCount)
}

func TestFactory_CreateProfile(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)

	profile, err := f.CreateProfile(user)
	require.NoError(t, err)

	assert.Equal(t, user.Username, profile.Handle)
	assert.NotEmpty(t, profile.Skills)
	assert.NotEmpty(t, profile.Experience)
	// Newest experience entry is the current one.
	assert.True(t, profile.Experience[0].Current)
	for _, e := range profile.Experience {
		assert.Equal(t, user.ID, e.UserID)
	}
}

func TestFactory_PostExtras(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	users := make([]*models.User, 0, 3)
	for i := 0; i < 3; i++ {
		user, err := f.CreateUser()
		require.NoError(t, err)
		users = append(users, user)
	}

	post, err := f.CreatePost(users[0])
	require.NoError(t, err)
	require.NoError(t, f.AddLikes(post, users))
	require.NoError(t, f.AddComments(post, users))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.NotEmpty(t, stored.Likes)

	seen := map[uint]bool{}
	for _, l := range stored.Likes {
		assert.False(t, seen[l.UserID], "duplicate like for user %d", l.UserID)
		seen[l.UserID] = true
	}
}
