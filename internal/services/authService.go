package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/models"
)

// Mailer delivers transactional mail. The concrete implementation is an
// external collaborator (Mailgun).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthService struct {
	users    *mongo.Collection
	secret   string
	tokenTTL time.Duration
	resetTTL time.Duration
	mailer   Mailer
}

func NewAuthService(db *mongo.Database, secret string, tokenTTL, resetTTL time.Duration, mailer Mailer) *AuthService {
	return &AuthService{
		users:    db.Collection("users"),
		secret:   secret,
		tokenTTL: tokenTTL,
		resetTTL: resetTTL,
		mailer:   mailer,
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT generates a token carrying the user id and role.
func GenerateJWT(secret, userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func generateSecureToken() (string, error) {
	token := make([]byte, 20)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(token), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

// Register creates a user and returns a signed token. The admin role can
// never be self-assigned.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	var existing models.User
	if err := s.users.FindOne(ctx, bson.M{"email": in.Email}).Decode(&existing); err == nil {
		return nil, "", errs.Conflictf("Email already in use")
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", err
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
		return nil, "", err
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(s.secret, user.ID.Hex(), user.Role, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errs.Validationf("Please provide an email and password")
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return "", errs.Unauthorized("Invalid credentials")
	}

	if !VerifyPassword(password, user.Password) {
		return "", errs.Unauthorized("Invalid credentials")
	}

	return GenerateJWT(s.secret, user.ID.Hex(), user.Role, s.tokenTTL)
}

// GetUser returns a single user document.
func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, errs.NotFoundf("User not found with id of %s", id.Hex())
	}
	return &user, nil
}

type UpdateDetailsInput struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateDetails changes name and/or email of the authenticated user.
func (s *AuthService) UpdateDetails(ctx context.Context, id primitive.ObjectID, in UpdateDetailsInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Email != "" {
		set["email"] = in.Email
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}

	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if err != nil {
		return nil, errs.NotFoundf("User not found with id of %s", id.Hex())
	}
	return &user, nil
}

// UpdatePassword verifies the current password and replaces it, returning a
// fresh token.
func (s *AuthService) UpdatePassword(ctx context.Context, id primitive.ObjectID, current, newPassword string) (string, error) {
	if len(newPassword) < 6 {
		return "", errs.Validationf("Password must be at least 6 characters")
	}

	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return "", errs.NotFoundf("User not found with id of %s", id.Hex())
	}

	if !VerifyPassword(current, user.Password) {
		return "", errs.Unauthorized("Password is incorrect")
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return "", err
	}

	if _, err := s.users.UpdateByID(ctx, id, bson.M{"$set": bson.M{"password": hashed}}); err != nil {
		return "", err
	}

	return GenerateJWT(s.secret, user.ID.Hex(), user.Role, s.tokenTTL)
}

// ForgotPassword stores a hashed reset token and mails the reset URL. The
// plain token only ever leaves the system inside the email.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetBaseURL string) error {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return errs.NotFoundf("There is no user with that email")
	}

	token, err := generateSecureToken()
	if err != nil {
		return err
	}

	expire := time.Now().Add(s.resetTTL)
	_, err = s.users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"resetPasswordToken":  hashResetToken(token),
		"resetPasswordExpire": expire,
	}})
	if err != nil {
		return err
	}

	body := fmt.Sprintf("You are receiving this email because you (or someone else) has requested the reset of a password. Please make a PUT request to: \n\n%s/%s", resetBaseURL, token)
	if err := s.mailer.Send(ctx, user.Email, "Password reset token", body); err != nil {
		// roll the token back so a half-sent reset cannot linger
		_, _ = s.users.UpdateByID(ctx, user.ID, bson.M{"$unset": bson.M{
			"resetPasswordToken":  "",
			"resetPasswordExpire": "",
		}})
		return errs.Newf(500, "Email could not be sent")
	}

	return nil
}

// ResetPassword redeems an emailed token for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	if len(newPassword) < 6 {
		return "", errs.Validationf("Password must be at least 6 characters")
	}

	var user models.User
	err := s.users.FindOne(ctx, bson.M{
		"resetPasswordToken":  hashResetToken(token),
		"resetPasswordExpire": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		return "", errs.Validationf("Invalid token")
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return "", err
	}

	_, err = s.users.UpdateByID(ctx, user.ID, bson.M{
		"$set":   bson.M{"password": hashed},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
	})
	if err != nil {
		return "", err
	}

	return GenerateJWT(s.secret, user.ID.Hex(), user.Role, s.tokenTTL)
}
