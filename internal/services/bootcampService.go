package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maariam000/DevCamper/internal/authz"
	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/models"
	"github.com/maariam000/DevCamper/internal/storage"
	"github.com/maariam000/DevCamper/internal/utils"
)

// Geocoder resolves a street address to a GeoJSON location. The concrete
// implementation calls an external geocoding API.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Location, error)
}

// childDeleter is the slice of the collection API the cascade delete needs.
// *mongo.Collection satisfies it.
type childDeleter interface {
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type BootcampService struct {
	bootcamps   *mongo.Collection
	courses     childDeleter
	reviews     childDeleter
	geocoder    Geocoder
	photos      storage.PhotoStore
	maxFileSize int64
}

func NewBootcampService(db *mongo.Database, geocoder Geocoder, photos storage.PhotoStore, maxFileSize int64) *BootcampService {
	return &BootcampService{
		bootcamps:   db.Collection("bootcamps"),
		courses:     db.Collection("courses"),
		reviews:     db.Collection("reviews"),
		geocoder:    geocoder,
		photos:      photos,
		maxFileSize: maxFileSize,
	}
}

func (s *BootcampService) Get(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	var bc models.Bootcamp
	if err := s.bootcamps.FindOne(ctx, bson.M{"_id": id}).Decode(&bc); err != nil {
		return nil, errs.NotFoundf("Bootcamp not found with id of %s", id.Hex())
	}
	return &bc, nil
}

type CreateBootcampInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address" validate:"required"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// Create persists a new bootcamp owned by the actor. Non-admin publishers may
// only publish one.
func (s *BootcampService) Create(ctx context.Context, actor authz.Principal, in CreateBootcampInput) (*models.Bootcamp, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		var existing models.Bootcamp
		if err := s.bootcamps.FindOne(ctx, bson.M{"user": actor.ID}).Decode(&existing); err == nil {
			return nil, errs.Conflictf("User with the id of %s already published a bootcamp", actor.ID.Hex())
		}
	}

	location, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	bc := models.Bootcamp{
		ID:            primitive.NewObjectID(),
		Name:          in.Name,
		Slug:          models.Slugify(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Location:      location,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
		Photo:         models.DefaultPhoto,
		User:          actor.ID,
		CreatedAt:     time.Now(),
	}
	if err := validateStruct(bc); err != nil {
		return nil, err
	}

	if _, err := s.bootcamps.InsertOne(ctx, bc); err != nil {
		return nil, err
	}
	return &bc, nil
}

type UpdateBootcampInput struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
	AcceptGi      *bool     `json:"acceptGi"`
}

// Update applies a partial update after the ownership gate, re-running
// validation and re-geocoding when the address changes.
func (s *BootcampService) Update(ctx context.Context, actor authz.Principal, id primitive.ObjectID, in UpdateBootcampInput) (*models.Bootcamp, error) {
	bc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanModify(actor, bc.User) {
		return nil, errs.Forbiddenf("User with the id of %s is unable to perform this action", actor.ID.Hex())
	}

	if in.Name != nil {
		bc.Name = *in.Name
		bc.Slug = models.Slugify(*in.Name)
	}
	if in.Description != nil {
		bc.Description = *in.Description
	}
	if in.Website != nil {
		bc.Website = *in.Website
	}
	if in.Phone != nil {
		bc.Phone = *in.Phone
	}
	if in.Email != nil {
		bc.Email = *in.Email
	}
	if in.Careers != nil {
		bc.Careers = *in.Careers
	}
	if in.Housing != nil {
		bc.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		bc.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		bc.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGi != nil {
		bc.AcceptGi = *in.AcceptGi
	}
	if in.Address != nil {
		location, err := s.geocoder.Geocode(ctx, *in.Address)
		if err != nil {
			return nil, err
		}
		bc.Location = location
	}

	if err := validateStruct(*bc); err != nil {
		return nil, err
	}

	if _, err := s.bootcamps.ReplaceOne(ctx, bson.M{"_id": id}, bc); err != nil {
		return nil, err
	}
	return bc, nil
}

// Delete removes the bootcamp and cascades to its courses and reviews. The
// children are removed first so no orphaned aggregates survive the parent.
func (s *BootcampService) Delete(ctx context.Context, actor authz.Principal, id primitive.ObjectID) error {
	bc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModify(actor, bc.User) {
		return errs.Forbiddenf("User with the id of %s is unable to perform this action", actor.ID.Hex())
	}

	if err := deleteChildren(ctx, id, s.courses, s.reviews); err != nil {
		return err
	}

	_, err = s.bootcamps.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// deleteChildren removes every child document of a bootcamp in parallel. It
// runs before the bootcamp document itself goes away so no orphaned children
// survive the parent.
func deleteChildren(ctx context.Context, bootcampID primitive.ObjectID, children ...childDeleter) error {
	tasks := make([]utils.ParallelTask, len(children))
	for i, child := range children {
		child := child
		tasks[i] = func() error {
			_, err := child.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
			return err
		}
	}
	return utils.RunParallelTasks(tasks...)
}

// PhotoUpload carries the multipart file into the service.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// validatePhoto runs every upload check that must pass before any byte is
// written to the store.
func validatePhoto(upload PhotoUpload, maxSize int64) error {
	if !strings.HasPrefix(upload.ContentType, "image") {
		return errs.Validationf("Please upload an image file")
	}
	if upload.Size > maxSize {
		return errs.Validationf("Please upload an image less than %d bytes", maxSize)
	}
	return nil
}

// UploadPhoto validates the file, writes it through the photo store and only
// then persists the filename, so a failed write never corrupts the record.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor authz.Principal, id primitive.ObjectID, upload PhotoUpload) (string, error) {
	bc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if !authz.CanModify(actor, bc.User) {
		return "", errs.Forbiddenf("User with the id of %s is unable to perform this action", actor.ID.Hex())
	}

	if err := validatePhoto(upload, s.maxFileSize); err != nil {
		return "", err
	}

	name := fmt.Sprintf("Photo_%s%s", id.Hex(), strings.ToLower(filepath.Ext(upload.Filename)))

	if err := s.photos.Save(ctx, name, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return "", errs.Uploadf("Problem with file upload")
	}

	if _, err := s.bootcamps.UpdateByID(ctx, id, bson.M{"$set": bson.M{"photo": name}}); err != nil {
		return "", err
	}
	return name, nil
}
