package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRegister() RegisterInput {
	return RegisterInput{
		Username: "jdoe",
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "supersecret",
		Gender:   "female",
	}
}

func TestRegister_Valid(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Register(validRegister()))
}

func TestRegister_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		field   string
		message string
	}{
		{
			name:    "short username",
			mutate:  func(in *RegisterInput) { in.Username = "ab" },
			field:   "username",
			message: "Username must be between 3 and 30 characters long",
		},
		{
			name:    "long username",
			mutate:  func(in *RegisterInput) { in.Username = strings.Repeat("a", 31) },
			field:   "username",
			message: "Username must be between 3 and 30 characters long",
		},
		{
			name:    "blank username",
			mutate:  func(in *RegisterInput) { in.Username = "   " },
			field:   "username",
			message: "Username should not be empty",
		},
		{
			name:    "short fullname",
			mutate:  func(in *RegisterInput) { in.Fullname = "ab" },
			field:   "fullname",
			message: "Fullname must be between 3 and 100 characters long",
		},
		{
			name:    "malformed email",
			mutate:  func(in *RegisterInput) { in.Email = "not-an-email" },
			field:   "email",
			message: "Email is invalid",
		},
		{
			name:    "empty email",
			mutate:  func(in *RegisterInput) { in.Email = "" },
			field:   "email",
			message: "Email should not be empty",
		},
		{
			name:    "short password",
			mutate:  func(in *RegisterInput) { in.Password = "seven77" },
			field:   "password",
			message: "Password must be more than 8 characters long",
		},
		{
			name:    "empty gender",
			mutate:  func(in *RegisterInput) { in.Gender = "" },
			field:   "gender",
			message: "Gender should not be empty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validRegister()
			tt.mutate(&in)

			errs := Register(in)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestRegister_CollectsAllFields(t *testing.T) {
	t.Parallel()

	errs := Register(RegisterInput{})
	for _, field := range []string{"username", "fullname", "email", "password", "gender"} {
		assert.Contains(t, errs, field)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Login(LoginInput{Username: "jdoe", Password: "pw"}))

	errs := Login(LoginInput{})
	assert.Equal(t, "Username should not be empty", errs["username"])
	assert.Equal(t, "Password should not be empty", errs["password"])
}

func TestPostText_Boundaries(t *testing.T) {
	t.Parallel()

	assert.Empty(t, PostText(strings.Repeat("x", 20)))
	assert.Empty(t, PostText(strings.Repeat("x", 5000)))

	errs := PostText(strings.Repeat("x", 19))
	assert.Equal(t, "Post text must be between 20 and 5000 characters long", errs["text"])

	errs = PostText(strings.Repeat("x", 5001))
	assert.Equal(t, "Post text must be between 20 and 5000 characters long", errs["text"])

	errs = PostText("   ")
	assert.Equal(t, "Post text should not be empty", errs["text"])
}

func TestCommentText_Boundaries(t *testing.T) {
	t.Parallel()

	assert.Empty(t, CommentText(strings.Repeat("y", 6)))

	errs := CommentText("short")
	assert.Equal(t, "Comment text must be between 6 and 500 characters long", errs["text"])

	errs = CommentText(strings.Repeat("y", 501))
	assert.Equal(t, "Comment text must be between 6 and 500 characters long", errs["text"])

	errs = CommentText("")
	assert.Equal(t, "Comment text should not be empty", errs["text"])
}

func validProfile() ProfileInput {
	return ProfileInput{
		Handle: "jdoe",
		Status: "Developer",
		Skills: "Go, SQL, Docker",
	}
}

func TestProfile_Valid(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Profile(validProfile()))
}

func TestProfile_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ProfileInput)
		field   string
		message string
	}{
		{
			name:    "short handle",
			mutate:  func(in *ProfileInput) { in.Handle = "ab" },
			field:   "handle",
			message: "Handle must be between 3 and 30 characters long",
		},
		{
			name:    "empty handle",
			mutate:  func(in *ProfileInput) { in.Handle = "" },
			field:   "handle",
			message: "Handle should not be empty",
		},
		{
			name:    "short status",
			mutate:  func(in *ProfileInput) { in.Status = "x" },
			field:   "status",
			message: "Status must be between 2 and 100 characters long",
		},
		{
			name:    "trailing comma in skills",
			mutate:  func(in *ProfileInput) { in.Skills = "Go,SQL," },
			field:   "skills",
			message: "One or more skill is empty. Also check for any leading or trailing commas.",
		},
		{
			name:    "blank segment in skills",
			mutate:  func(in *ProfileInput) { in.Skills = "Go, ,SQL" },
			field:   "skills",
			message: "One or more skill is empty. Also check for any leading or trailing commas.",
		},
		{
			name:    "empty skills",
			mutate:  func(in *ProfileInput) { in.Skills = "" },
			field:   "skills",
			message: "Skills should not be empty",
		},
		{
			name:    "bad twitter url",
			mutate:  func(in *ProfileInput) { in.Twitter = "not a url" },
			field:   "twitter",
			message: "URL for 'twitter' is not valid",
		},
		{
			name:    "bad portfolio url",
			mutate:  func(in *ProfileInput) { in.Portfolio = "ftp://example.com/x" },
			field:   "portfolio",
			message: "URL for 'portfolio' is not valid",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validProfile()
			tt.mutate(&in)

			errs := Profile(in)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestProfile_AcceptsCommonURLForms(t *testing.T) {
	t.Parallel()

	in := validProfile()
	in.Twitter = "https://twitter.com/jdoe"
	in.Github = "github.com/jdoe"
	assert.Empty(t, Profile(in))
}

func TestExperience(t *testing.T) {
	t.Parallel()

	from := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Experience(ExperienceInput{Title: "Engineer", Company: "Acme", From: &from}))

	errs := Experience(ExperienceInput{})
	assert.Equal(t, "Title should not be empty", errs["title"])
	assert.Equal(t, "Company should not be empty", errs["company"])
	assert.Equal(t, "From Date should not be empty", errs["from"])

	errs = Experience(ExperienceInput{
		Title:       strings.Repeat("t", 101),
		Company:     "Acme",
		From:        &from,
		Description: strings.Repeat("d", 1001),
	})
	assert.Equal(t, "Job title must be less than 100 characters long", errs["title"])
	assert.Equal(t, "Description must be less than 1000 characters long", errs["description"])
}

func TestEducation(t *testing.T) {
	t.Parallel()

	from := time.Date(2016, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Education(EducationInput{School: "MIT", Degree: "BSc", Field: "CS", From: &from}))

	errs := Education(EducationInput{})
	assert.Equal(t, "School should not be empty", errs["school"])
	assert.Equal(t, "Degree should not be empty", errs["degree"])
	assert.Equal(t, "Field should not be empty", errs["field"])
	assert.Equal(t, "From Date should not be empty", errs["from"])

	errs = Education(EducationInput{
		School: "MIT",
		Degree: "BSc",
		Field:  strings.Repeat("f", 101),
		From:   &from,
	})
	assert.Equal(t, "Field of study must be less than 100 characters long", errs["field"])
}
