package router

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maariam000/DevCamper/internal/handlers"
	"github.com/maariam000/DevCamper/internal/middleware"
	"github.com/maariam000/DevCamper/internal/models"
)

// Deps carries everything the route table needs.
type Deps struct {
	DB        *mongo.Database
	JWTSecret string

	Auth      *handlers.AuthHandler
	Bootcamps *handlers.BootcampHandler
	Courses   *handlers.CourseHandler
	Reviews   *handlers.ReviewHandler
	Users     *handlers.UserHandler
}

// Setup registers the API route table.
func Setup(app *fiber.App, d Deps) {
	protect := middleware.Protect(d.JWTSecret)

	bootcampParent := &middleware.Populate{
		Collection: "bootcamps",
		LocalField: "bootcamp",
		Fields:     []string{"name", "description"},
	}

	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)
	auth.Get("/logout", d.Auth.Logout)
	auth.Get("/me", protect, d.Auth.Me)
	auth.Put("/updatedetails", protect, d.Auth.UpdateDetails)
	auth.Put("/updatepassword", protect, d.Auth.UpdatePassword)
	auth.Post("/forgotpassword", d.Auth.ForgotPassword)
	auth.Put("/resetpassword/:resettoken", d.Auth.ResetPassword)

	// Bootcamp routes
	bootcamps := api.Group("/bootcamps")
	bootcamps.Get("/", middleware.AdvancedResult(d.DB.Collection("bootcamps"), nil), d.Bootcamps.List)
	bootcamps.Post("/", protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin), d.Bootcamps.Create)
	bootcamps.Get("/:id", d.Bootcamps.GetByID)
	bootcamps.Put("/:id", protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin), d.Bootcamps.Update)
	bootcamps.Delete("/:id", protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin), d.Bootcamps.Delete)
	bootcamps.Put("/:id/photo", protect, d.Bootcamps.UploadPhoto)

	// Nested resource routes under a bootcamp
	bootcamps.Get("/:bootcampId/courses", d.Courses.List)
	bootcamps.Post("/:bootcampId/courses", protect, d.Courses.Create)
	bootcamps.Get("/:bootcampId/reviews", d.Reviews.List)
	bootcamps.Post("/:bootcampId/reviews", protect, middleware.Authorize(models.RoleUser, models.RoleAdmin), d.Reviews.Create)

	// Course routes
	courses := api.Group("/courses")
	courses.Get("/", middleware.AdvancedResult(d.DB.Collection("courses"), bootcampParent), d.Courses.List)
	courses.Get("/:id", d.Courses.GetByID)
	courses.Put("/:id", protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin), d.Courses.Update)
	courses.Delete("/:id", protect, middleware.Authorize(models.RolePublisher, models.RoleAdmin), d.Courses.Delete)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Get("/", middleware.AdvancedResult(d.DB.Collection("reviews"), bootcampParent), d.Reviews.List)
	reviews.Get("/:id", d.Reviews.GetByID)
	reviews.Put("/:id", protect, middleware.Authorize(models.RoleUser, models.RoleAdmin), d.Reviews.Update)
	reviews.Delete("/:id", protect, middleware.Authorize(models.RoleUser, models.RoleAdmin), d.Reviews.Delete)

	// User management, admin only
	users := api.Group("/users", protect, middleware.Authorize(models.RoleAdmin))
	users.Get("/", middleware.AdvancedResult(d.DB.Collection("users"), nil), d.Users.List)
	users.Post("/", d.Users.Create)
	users.Get("/:id", d.Users.GetByID)
	users.Put("/:id", d.Users.Update)
	users.Delete("/:id", d.Users.Delete)
}
