package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SkillBeginner     = "Beginner"
	SkillIntermediate = "Intermediate"
	SkillAdvanced     = "Advanced"
)

type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title                string             `bson:"title" json:"title" validate:"required"`
	Description          string             `bson:"description" json:"description" validate:"required"`
	Weeks                int                `bson:"weeks" json:"weeks" validate:"min=1"`
	Tuition              float64            `bson:"tuition" json:"tuition" validate:"min=0"`
	MinimumSkill         string             `bson:"minimumSkill" json:"minimumSkill" validate:"required,oneof=Beginner Intermediate Advanced"`
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User                 primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
