package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/authz"
	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/handlers"
	"github.com/maariam000/DevCamper/internal/middleware"
	"github.com/maariam000/DevCamper/internal/models"
	"github.com/maariam000/DevCamper/internal/services"
)

type fakeCourseService struct {
	courses []models.Course
	detail  *services.CourseDetail
	err     error

	gotBootcamp primitive.ObjectID
}

func (f *fakeCourseService) ListByBootcamp(_ context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	f.gotBootcamp = bootcampID
	return f.courses, f.err
}

func (f *fakeCourseService) Get(_ context.Context, _ primitive.ObjectID) (*services.CourseDetail, error) {
	return f.detail, f.err
}

func (f *fakeCourseService) Create(_ context.Context, _ authz.Principal, bootcampID primitive.ObjectID, _ services.CreateCourseInput) (*models.Course, error) {
	f.gotBootcamp = bootcampID
	if f.err != nil {
		return nil, f.err
	}
	return &f.courses[0], nil
}

func (f *fakeCourseService) Update(_ context.Context, _ authz.Principal, _ primitive.ObjectID, _ services.UpdateCourseInput) (*models.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.courses[0], nil
}

func (f *fakeCourseService) Delete(_ context.Context, _ authz.Principal, _ primitive.ObjectID) error {
	return f.err
}

// withAdvancedResult stands in for the list middleware on top-level routes.
func withAdvancedResult(result middleware.Result) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.AdvancedResultKey, result)
		return c.Next()
	}
}

func newCourseApp(fake *fakeCourseService, result middleware.Result) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h := handlers.NewCourseHandler(fake)

	app.Get("/api/v1/courses", withAdvancedResult(result), h.List)
	app.Get("/api/v1/courses/:id", h.GetByID)
	app.Get("/api/v1/bootcamps/:bootcampId/courses", h.List)

	return app
}

func TestListCoursesForBootcamp(t *testing.T) {
	bootcampID := primitive.NewObjectID()
	fake := &fakeCourseService{courses: []models.Course{
		{ID: primitive.NewObjectID(), Title: "Front End Web Development", Bootcamp: bootcampID},
		{ID: primitive.NewObjectID(), Title: "Full Stack Web Development", Bootcamp: bootcampID},
	}}
	app := newCourseApp(fake, middleware.Result{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bootcamps/"+bootcampID.Hex()+"/courses", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, bootcampID, fake.gotBootcamp)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
}

func TestListCoursesForBootcampEmpty(t *testing.T) {
	fake := &fakeCourseService{courses: []models.Course{}}
	app := newCourseApp(fake, middleware.Result{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/bootcamps/"+primitive.NewObjectID().Hex()+"/courses", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["count"])
	assert.NotNil(t, body["data"], "empty listing still returns an array")
}

func TestListCoursesTopLevelUsesAdvancedResult(t *testing.T) {
	fake := &fakeCourseService{}
	result := middleware.Result{
		Success: true,
		Count:   1,
		Data:    []bson.M{{"title": "Front End Web Development"}},
	}
	app := newCourseApp(fake, result)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/courses", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, primitive.NilObjectID, fake.gotBootcamp, "top-level list bypasses the service")

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["count"])
}

func TestGetCourseWithParentBootcamp(t *testing.T) {
	id := primitive.NewObjectID()
	parent := primitive.NewObjectID()
	fake := &fakeCourseService{detail: &services.CourseDetail{
		Course: models.Course{ID: id, Title: "Front End Web Development"},
		Bootcamp: models.BootcampRef{
			ID:          parent,
			Name:        "Devworks",
			Description: "Full stack bootcamp",
		},
	}}
	app := newCourseApp(fake, middleware.Result{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/courses/"+id.Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Front End Web Development", data["title"])
	assert.Equal(t, "Devworks", data["bootcamp"].(map[string]interface{})["name"])
}

func TestGetCourseNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	fake := &fakeCourseService{err: errs.NotFoundf("Course not found with id of %s", id.Hex())}
	app := newCourseApp(fake, middleware.Result{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/courses/"+id.Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetCourseMalformedID(t *testing.T) {
	app := newCourseApp(&fakeCourseService{}, middleware.Result{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/courses/123", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Resource not found with id of 123", body["error"])
}
