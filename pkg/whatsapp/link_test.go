package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/25377123456", Link("+253 77 12 34 56"))
	assert.Equal(t, "https://wa.me/25377123456", Link("25377123456"))
	assert.Equal(t, "", Link(""))
	assert.Equal(t, "", Link(" + "))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "25377123456", Normalize("+253 77 12 34 56"))
	assert.Equal(t, "0077", Normalize("00 77"))
}
