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

type ReviewService struct {
	reviews   *mongo.Collection
	bootcamps *mongo.Collection
}

func NewReviewService(db *mongo.Database) *ReviewService {
	return &ReviewService{
		reviews:   db.Collection("reviews"),
		bootcamps: db.Collection("bootcamps"),
	}
}

// ReviewDetail is a review with its parent's name and description attached.
type ReviewDetail struct {
	models.Review
	Bootcamp models.BootcampRef `json:"bootcamp"`
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	cursor, err := s.reviews.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, err
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, id primitive.ObjectID) (*ReviewDetail, error) {
	var review models.Review
	if err := s.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, errs.NotFoundf("No review found with the id of %s", id.Hex())
	}

	detail := ReviewDetail{Review: review}
	_ = s.bootcamps.FindOne(ctx, bson.M{"_id": review.Bootcamp},
		options.FindOne().SetProjection(bson.D{
			{Key: "name", Value: 1},
			{Key: "description", Value: 1},
		})).Decode(&detail.Bootcamp)

	return &detail, nil
}

type CreateReviewInput struct {
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

// Create adds a review under an existing bootcamp; one review per user per
// bootcamp.
func (s *ReviewService) Create(ctx context.Context, actor authz.Principal, bootcampID primitive.ObjectID, in CreateReviewInput) (*models.Review, error) {
	var parent models.Bootcamp
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": bootcampID}).Decode(&parent); err != nil {
		return nil, errs.NotFoundf("Bootcamp not found with id of %s", bootcampID.Hex())
	}

	var existing models.Review
	if err := s.reviews.FindOne(ctx, bson.M{"bootcamp": bootcampID, "user": actor.ID}).Decode(&existing); err == nil {
		return nil, errs.Conflictf("User with the id of %s already reviewed this bootcamp", actor.ID.Hex())
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		Title:     in.Title,
		Text:      in.Text,
		Rating:    in.Rating,
		Bootcamp:  bootcampID,
		User:      actor.ID,
		CreatedAt: time.Now(),
	}
	if err := validateStruct(review); err != nil {
		return nil, err
	}

	if _, err := s.reviews.InsertOne(ctx, review); err != nil {
		return nil, err
	}

	s.recomputeAverageRating(ctx, bootcampID)
	return &review, nil
}

type UpdateReviewInput struct {
	Title  *string  `json:"title"`
	Text   *string  `json:"text"`
	Rating *float64 `json:"rating"`
}

func (s *ReviewService) Update(ctx context.Context, actor authz.Principal, id primitive.ObjectID, in UpdateReviewInput) (*models.Review, error) {
	var review models.Review
	if err := s.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, errs.NotFoundf("No review found with the id of %s", id.Hex())
	}

	if !authz.CanModify(actor, review.User) {
		return nil, errs.Forbiddenf("User with the id of %s is not authorized to perform this action", actor.ID.Hex())
	}

	if in.Title != nil {
		review.Title = *in.Title
	}
	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Rating != nil {
		review.Rating = *in.Rating
	}

	if err := validateStruct(review); err != nil {
		return nil, err
	}

	if _, err := s.reviews.ReplaceOne(ctx, bson.M{"_id": id}, review); err != nil {
		return nil, err
	}

	s.recomputeAverageRating(ctx, review.Bootcamp)
	return &review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor authz.Principal, id primitive.ObjectID) error {
	var review models.Review
	if err := s.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return errs.NotFoundf("No review found with the id of %s", id.Hex())
	}

	if !authz.CanModify(actor, review.User) {
		return errs.Forbiddenf("User with the id of %s is not authorized to perform this action", actor.ID.Hex())
	}

	if _, err := s.reviews.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}

	s.recomputeAverageRating(ctx, review.Bootcamp)
	return nil
}

// recomputeAverageRating recalculates the parent's averageRating from the
// current review set.
func (s *ReviewService) recomputeAverageRating(ctx context.Context, bootcampID primitive.ObjectID) {
	cursor, err := s.reviews.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$bootcamp",
			"value": bson.M{"$avg": "$rating"},
		}}},
	})
	if err != nil {
		logrus.WithError(err).Error("average rating aggregation failed")
		return
	}

	var results []meanResult
	if err := cursor.All(ctx, &results); err != nil {
		logrus.WithError(err).Error("average rating aggregation failed")
		return
	}

	if _, err := s.bootcamps.UpdateByID(ctx, bootcampID, bson.M{"$set": bson.M{"averageRating": averageRatingOf(results)}}); err != nil {
		logrus.WithError(err).Error("average rating update failed")
	}
}
