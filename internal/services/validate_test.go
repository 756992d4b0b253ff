package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/models"
)

func validCourse() models.Course {
	return models.Course{
		ID:           primitive.NewObjectID(),
		Title:        "Front End Web Development",
		Description:  "HTML, CSS and JavaScript",
		Weeks:        8,
		Tuition:      8000,
		MinimumSkill: models.SkillBeginner,
		Bootcamp:     primitive.NewObjectID(),
		User:         primitive.NewObjectID(),
		CreatedAt:    time.Now(),
	}
}

func assertValidation(t *testing.T, err error, contains string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *errs.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, contains)
}

func TestValidateCourse(t *testing.T) {
	assert.NoError(t, validateStruct(validCourse()))

	c := validCourse()
	c.MinimumSkill = "Expert"
	assertValidation(t, validateStruct(c), "minimumSkill must be one of")

	c = validCourse()
	c.Title = ""
	assertValidation(t, validateStruct(c), "Please add title")
}

func TestValidateCourseTuitionBounds(t *testing.T) {
	// a free course is a valid course
	c := validCourse()
	c.Tuition = 0
	assert.NoError(t, validateStruct(c))

	c.Tuition = -100
	assertValidation(t, validateStruct(c), "tuition must be at least 0")

	c = validCourse()
	c.Weeks = 0
	assertValidation(t, validateStruct(c), "weeks must be at least 1")
}

func TestValidateReviewRatingBounds(t *testing.T) {
	review := models.Review{
		ID:        primitive.NewObjectID(),
		Title:     "Learned a ton",
		Text:      "Great instructors",
		Rating:    8,
		Bootcamp:  primitive.NewObjectID(),
		User:      primitive.NewObjectID(),
		CreatedAt: time.Now(),
	}
	assert.NoError(t, validateStruct(review))

	review.Rating = 11
	assertValidation(t, validateStruct(review), "rating")

	review.Rating = 0.5
	assertValidation(t, validateStruct(review), "rating")
}

func TestValidateBootcampCareers(t *testing.T) {
	bc := models.Bootcamp{
		ID:          primitive.NewObjectID(),
		Name:        "Devworks",
		Slug:        "devworks",
		Description: "A bootcamp",
		Careers:     []string{"Web Development", "UI/UX"},
		Photo:       models.DefaultPhoto,
		User:        primitive.NewObjectID(),
		CreatedAt:   time.Now(),
	}
	assert.NoError(t, validateStruct(bc))

	bc.Careers = []string{"Underwater Basket Weaving"}
	assertValidation(t, validateStruct(bc), "must be one of")

	bc.Careers = []string{"Web Development"}
	bc.Website = "not a url"
	assertValidation(t, validateStruct(bc), "valid URL")
}
