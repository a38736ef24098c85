package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Lower bounds for recipe numeric fields. Only the minimums are enforced;
// there is no confirmed upper limit.
const (
	MinAmount      = 1
	MinCookingTime = 1
)

// reservedUsernames can never be registered; "me" collides with the
// /users/me route.
var reservedUsernames = []string{"me"}

var invalidUsernameChars = regexp.MustCompile(`[^\w.@+-]`)

var (
	ErrInvalidUsername       = errors.New("invalid username")
	ErrInvalidAmount         = fmt.Errorf("ingredient amount must be at least %d", MinAmount)
	ErrInvalidCookingTime    = fmt.Errorf("cooking time must be at least %d minute", MinCookingTime)
	ErrDuplicateIngredient   = errors.New("ingredients must not repeat within a recipe")
	ErrNoTags                = errors.New("a recipe needs at least one tag")
	ErrDuplicateTag          = errors.New("tags must not repeat within a recipe")
	ErrSelfSubscription      = errors.New("you cannot subscribe to yourself")
	ErrDuplicateSubscription = errors.New("you are already subscribed to this author")
	ErrAlreadyFavorited      = errors.New("recipe is already in favorites")
	ErrAlreadyInCart         = errors.New("recipe is already in the shopping cart")
)

// ValidateUsername rejects reserved names and any character outside the
// allowed [\w.@+-] set. The error lists the distinct offending characters.
func ValidateUsername(value string) error {
	for _, reserved := range reservedUsernames {
		if value == reserved {
			return fmt.Errorf("%w: %q cannot be used as a username", ErrInvalidUsername, value)
		}
	}
	if matches := invalidUsernameChars.FindAllString(value, -1); len(matches) > 0 {
		seen := make(map[string]bool)
		var chars []string
		for _, m := range matches {
			for _, r := range m {
				if s := string(r); !seen[s] {
					seen[s] = true
					chars = append(chars, s)
				}
			}
		}
		sort.Strings(chars)
		return fmt.Errorf("%w: characters %q are not allowed", ErrInvalidUsername, strings.Join(chars, ""))
	}
	return nil
}

// ValidateAmount checks the ingredient amount lower bound.
func ValidateAmount(amount int) error {
	if amount < MinAmount {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateCookingTime checks the cooking time lower bound.
func ValidateCookingTime(minutes int) error {
	if minutes < MinCookingTime {
		return ErrInvalidCookingTime
	}
	return nil
}

// ValidateIngredientIDs rejects a submission that references the same
// ingredient twice.
func ValidateIngredientIDs(ids []uint) error {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return ErrDuplicateIngredient
		}
		seen[id] = true
	}
	return nil
}

// ValidateTagIDs requires at least one tag and no repeats.
func ValidateTagIDs(ids []uint) error {
	if len(ids) == 0 {
		return ErrNoTags
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return ErrDuplicateTag
		}
		seen[id] = true
	}
	return nil
}

// ValidateSubscription rejects a user following themselves.
func ValidateSubscription(userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfSubscription
	}
	return nil
}
