package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type lookup struct {
	ISBN   string `validate:"required,isbn_digits"`
	Status string `validate:"omitempty,reading_status"`
}

type profile struct {
	Username *string `validate:"omitempty,username"`
}

func TestIsISBN(t *testing.T) {
	assert.True(t, IsISBN("0451524934"))
	assert.True(t, IsISBN("9780451524935"))
	assert.False(t, IsISBN("978-0451524935"))
	assert.False(t, IsISBN("045152493"))
	assert.False(t, IsISBN("04515249341"))
	assert.False(t, IsISBN("045152493X"))
}

func TestValidateCustomRules(t *testing.T) {
	assert.Nil(t, Validate(lookup{ISBN: "9780451524935", Status: "reading"}))

	errs := Validate(lookup{ISBN: "123", Status: "abandoned"})
	assert.Equal(t, "isbn_digits", errs["isbn"])
	assert.Equal(t, "reading_status", errs["status"])

	errs = Validate(lookup{})
	assert.Equal(t, "required", errs["isbn"])
}

func TestFieldsNonValidationError(t *testing.T) {
	errs := Fields(errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", errs["body"])
	assert.Nil(t, Fields(nil))
}

func TestUsernameTrimsBeforeCheckingLength(t *testing.T) {
	name, ok := Username("  reader  ")
	assert.True(t, ok)
	assert.Equal(t, "reader", name)

	_, ok = Username("    ")
	assert.False(t, ok)
	_, ok = Username("  ab")
	assert.False(t, ok)
	_, ok = Username(strings.Repeat("ü", 255))
	assert.True(t, ok)
	_, ok = Username(strings.Repeat("a", 256))
	assert.False(t, ok)
}

func TestUsernameRule(t *testing.T) {
	blank := "    "
	short := "  ab"
	good := " abc "
	assert.Equal(t, "username", Validate(profile{Username: &blank})["username"])
	assert.Equal(t, "username", Validate(profile{Username: &short})["username"])
	assert.Nil(t, Validate(profile{Username: &good}))
	assert.Nil(t, Validate(profile{}))
}
