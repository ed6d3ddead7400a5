package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModifyListing(t *testing.T) {
	cases := []struct {
		name     string
		callerID uint
		role     string
		ownerID  uint
		want     bool
	}{
		{"owner", 1, RoleUser, 1, true},
		{"other user", 2, RoleUser, 1, false},
		{"moderator on foreign listing", 2, RoleModerator, 1, true},
		{"admin on foreign listing", 2, RoleAdmin, 1, true},
		{"unknown role non-owner", 2, "anonymous", 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanModifyListing(tc.callerID, tc.role, tc.ownerID))
		})
	}
}

func TestCurrencyValid(t *testing.T) {
	assert.True(t, Currency("DJF").Valid())
	assert.True(t, Currency("USD").Valid())
	assert.False(t, Currency("EUR").Valid())
	assert.False(t, Currency("djf").Valid(), "currencies are case sensitive")
	assert.False(t, Currency("").Valid())
}

func TestContactMethodValid(t *testing.T) {
	assert.True(t, ContactMethod("whatsapp").Valid())
	assert.True(t, ContactMethod("phone").Valid())
	assert.True(t, ContactMethod("both").Valid())
	assert.False(t, ContactMethod("email").Valid())
}

func TestPlanValid(t *testing.T) {
	assert.True(t, Plan("FREE").Valid())
	assert.True(t, Plan("PREMIUM").Valid())
	assert.False(t, Plan("premium").Valid())
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	assert.True(t, ve.Empty())

	ve.Add("title", "le titre est requis").Add("image", "une image est requise")
	assert.False(t, ve.Empty())
	assert.Equal(t, "validation failed: image: une image est requise; title: le titre est requis", ve.Error())

	got, ok := AsValidation(error(ve))
	assert.True(t, ok)
	assert.Equal(t, ve, got)

	_, ok = AsValidation(ErrNotFound)
	assert.False(t, ok)
}
