package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/models"
)

func TestCanModify(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	assert.True(t, CanModify(Principal{ID: owner, Role: models.RoleUser}, owner), "owner may modify")
	assert.True(t, CanModify(Principal{ID: other, Role: models.RoleAdmin}, owner), "admin may modify anything")
	assert.False(t, CanModify(Principal{ID: other, Role: models.RoleUser}, owner))
	assert.False(t, CanModify(Principal{ID: other, Role: models.RolePublisher}, owner))
	assert.False(t, CanModify(Principal{}, owner), "zero principal may not modify")
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, Principal{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, Principal{Role: models.RolePublisher}.IsAdmin())
}
