package validator

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"publicsquare/internal/domain"
)

var (
	validate = validator.New()
	isbnRe   = regexp.MustCompile(`^\d{10}(\d{3})?$`)
	once     sync.Once
)

func init() {
	registerRules(validate)
}

// RegisterGinRules adds the custom rules to gin's binding validator so
// ShouldBindJSON enforces them.
func RegisterGinRules() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerRules(v)
		}
	})
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("isbn_digits", func(fl validator.FieldLevel) bool {
		return IsISBN(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		_, ok := Username(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("reading_status", func(fl validator.FieldLevel) bool {
		return domain.ReadingStatus(fl.Field().String()).Valid()
	})
}

// IsISBN accepts 10 or 13 digits, nothing else.
func IsISBN(s string) bool {
	return isbnRe.MatchString(s)
}

// Username trims s and reports whether what is left is 3 to 255 characters.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	return s, n >= 3 && n <= 255
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	return Fields(validate.Struct(v))
}

// Fields flattens validation errors into field -> failed tag. Other errors
// (malformed JSON) come back under "body".
func Fields(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}
