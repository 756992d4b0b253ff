package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maariam000/DevCamper/internal/authz"
	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/models"
)

type CourseService struct {
	courses   *mongo.Collection
	bootcamps *mongo.Collection
}

func NewCourseService(db *mongo.Database) *CourseService {
	return &CourseService{
		courses:   db.Collection("courses"),
		bootcamps: db.Collection("bootcamps"),
	}
}

// CourseDetail is a course with its parent's name and description attached.
type CourseDetail struct {
	models.Course
	Bootcamp models.BootcampRef `json:"bootcamp"`
}

// ListByBootcamp returns the flat, unpaginated children of one bootcamp.
func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	cursor, err := s.courses.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, err
	}

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id primitive.ObjectID) (*CourseDetail, error) {
	var course models.Course
	if err := s.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, errs.NotFoundf("Course with the id of %s not found", id.Hex())
	}

	detail := CourseDetail{Course: course}
	_ = s.bootcamps.FindOne(ctx, bson.M{"_id": course.Bootcamp},
		options.FindOne().SetProjection(bson.D{
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
		})).Decode(&detail.Bootcamp)

	return &detail, nil
}

type CreateCourseInput struct {
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Weeks                int     `json:"weeks"`
	Tuition              float64 `json:"tuition"`
	MinimumSkill         string  `json:"minimumSkill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

// Create adds a course under a bootcamp the actor owns and recomputes the
// parent's average cost.
func (s *CourseService) Create(ctx context.Context, actor authz.Principal, bootcampID primitive.ObjectID, in CreateCourseInput) (*models.Course, error) {
	var parent models.Bootcamp
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": bootcampID}).Decode(&parent); err != nil {
		return nil, errs.NotFoundf("Bootcamp not found with id of %s", bootcampID.Hex())
	}

	if !authz.CanModify(actor, parent.User) {
		return nil, errs.Forbiddenf("User with the id of %s is unable to add a course to bootcamp %s", actor.ID.Hex(), bootcampID.Hex())
	}

	course := models.Course{
		ID:                   primitive.NewObjectID(),
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		Bootcamp:             bootcampID,
		User:                 actor.ID,
		CreatedAt:            time.Now(),
	}
	if err := validateStruct(course); err != nil {
		return nil, err
	}

	if _, err := s.courses.InsertOne(ctx, course); err != nil {
		return nil, err
	}

	s.recomputeAverageCost(ctx, bootcampID)
	return &course, nil
}

type UpdateCourseInput struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         *string  `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

func (s *CourseService) Update(ctx context.Context, actor authz.Principal, id primitive.ObjectID, in UpdateCourseInput) (*models.Course, error) {
	var course models.Course
	if err := s.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, errs.NotFoundf("Course with the id of %s not found", id.Hex())
	}

	if !authz.CanModify(actor, course.User) {
		return nil, errs.Forbiddenf("User with the id of %s is unable to perform this action", actor.ID.Hex())
	}

	if in.Title != nil {
		course.Title = *in.Title
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Weeks != nil {
		course.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		course.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		course.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		course.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := validateStruct(course); err != nil {
		return nil, err
	}

	if _, err := s.courses.ReplaceOne(ctx, bson.M{"_id": id}, course); err != nil {
		return nil, err
	}

	s.recomputeAverageCost(ctx, course.Bootcamp)
	return &course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor authz.Principal, id primitive.ObjectID) error {
	var course models.Course
	if err := s.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return errs.NotFoundf("Course with the id of %s not found", id.Hex())
	}

	if !authz.CanModify(actor, course.User) {
		return errs.Forbiddenf("User with the id of %s is unable to perform this action", actor.ID.Hex())
	}

	if _, err := s.courses.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}

	// recompute runs after the removal is visible, over the remaining courses
	s.recomputeAverageCost(ctx, course.Bootcamp)
	return nil
}

// recomputeAverageCost recalculates the parent's derived averageCost from the
// current course set. Idempotent; a failure leaves a stale value that heals on
// the next mutation.
func (s *CourseService) recomputeAverageCost(ctx context.Context, bootcampID primitive.ObjectID) {
	cursor, err := s.courses.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$bootcamp",
			"value": bson.M{"$avg": "$tuition"},
		}}},
	})
	if err != nil {
		logrus.WithError(err).Error("average cost aggregation failed")
		return
	}

	var results []meanResult
	if err := cursor.All(ctx, &results); err != nil {
		logrus.WithError(err).Error("average cost aggregation failed")
		return
	}

	if _, err := s.bootcamps.UpdateByID(ctx, bootcampID, bson.M{"$set": bson.M{"averageCost": averageCostOf(results)}}); err != nil {
		logrus.WithError(err).Error("average cost update failed")
	}
}
