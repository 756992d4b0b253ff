package authz

import (
	"github.com/maariam000/DevCamper/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated identity extracted from the JWT. It travels
// explicitly from middleware to handlers to services; request bodies can never
// set ownership fields.
type Principal struct {
	ID   primitive.ObjectID
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanModify reports whether the actor may mutate a resource owned by ownerID:
// the owner themselves, or any admin.
func CanModify(actor Principal, ownerID primitive.ObjectID) bool {
	return actor.ID == ownerID || actor.Role == models.RoleAdmin
}
