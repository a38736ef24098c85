package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "plain ascii", username: "chef_olga", wantErr: false},
		{name: "allowed punctuation", username: "chef.olga@kitchen+1-2", wantErr: false},
		{name: "reserved word", username: "me", wantErr: true},
		{name: "space", username: "chef olga", wantErr: true},
		{name: "hash and percent", username: "chef#ol%ga", wantErr: true},
		{name: "empty is fine for this rule", username: "", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUsername)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsernameListsOffendingChars(t *testing.T) {
	err := ValidateUsername("a!b!c?")
	assert.ErrorIs(t, err, ErrInvalidUsername)
	// Each distinct bad character appears exactly once.
	assert.Contains(t, err.Error(), "!?")
	assert.NotContains(t, err.Error(), "!!")
}

func TestValidateAmount(t *testing.T) {
	assert.ErrorIs(t, ValidateAmount(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(-5), ErrInvalidAmount)
	assert.NoError(t, ValidateAmount(1))
	assert.NoError(t, ValidateAmount(500))
}

func TestValidateCookingTime(t *testing.T) {
	assert.ErrorIs(t, ValidateCookingTime(0), ErrInvalidCookingTime)
	assert.NoError(t, ValidateCookingTime(1))
	// No upper bound is enforced.
	assert.NoError(t, ValidateCookingTime(100000))
}

func TestValidateIngredientIDs(t *testing.T) {
	assert.NoError(t, ValidateIngredientIDs(nil))
	assert.NoError(t, ValidateIngredientIDs([]uint{1, 2, 3}))
	assert.ErrorIs(t, ValidateIngredientIDs([]uint{1, 2, 1}), ErrDuplicateIngredient)
}

func TestValidateTagIDs(t *testing.T) {
	assert.ErrorIs(t, ValidateTagIDs(nil), ErrNoTags)
	assert.ErrorIs(t, ValidateTagIDs([]uint{}), ErrNoTags)
	assert.ErrorIs(t, ValidateTagIDs([]uint{7, 7}), ErrDuplicateTag)
	assert.NoError(t, ValidateTagIDs([]uint{1, 2}))
}

func TestValidateSubscription(t *testing.T) {
	assert.ErrorIs(t, ValidateSubscription(3, 3), ErrSelfSubscription)
	assert.NoError(t, ValidateSubscription(3, 4))
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrAlreadyFavorited, ErrAlreadyInCart))
	assert.False(t, errors.Is(ErrDuplicateTag, ErrDuplicateIngredient))
}
