package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/models"
)

// UserService backs the admin-only user management endpoints.
type UserService struct {
	users *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{users: db.Collection("users")}
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, errs.NotFoundf("User not found with id of %s", id.Hex())
	}
	return &user, nil
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.users.FindOne(ctx, bson.M{"email": in.Email}).Decode(&existing); err == nil {
		return nil, errs.Conflictf("Email already in use")
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := validateStruct(user); err != nil {
		return nil, err
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, errs.Validationf("Password must be at least 6 characters")
		}
		hashed, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := validateStruct(*user); err != nil {
		return nil, err
	}

	if _, err := s.users.ReplaceOne(ctx, bson.M{"_id": id}, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NotFoundf("User not found with id of %s", id.Hex())
	}
	return nil
}
