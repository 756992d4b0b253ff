package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "devworks-bootcamp", Slugify("Devworks Bootcamp"))
	assert.Equal(t, "moderntech", Slugify("  ModernTech  "))
	assert.Equal(t, "ui-ux-academy", Slugify("UI/UX Academy!"))
	assert.Equal(t, "bootcamp-42", Slugify("Bootcamp 42"))
	assert.Equal(t, "", Slugify("***"))
}
