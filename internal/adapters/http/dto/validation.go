package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/stackit/internal/domain"
)

// Validation errors.
var (
	// ErrValidation indicates a request failed its shape rules.
	ErrValidation = errors.New("validation failed")

	// ErrBinding indicates the JSON body or query string could not be decoded.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the board rules registered:
//
//	vote  an int that is exactly 1 or -1
//	sort  a string ParseSortOption accepts
//	tag   a tag without commas, since the ask form splits on them
//
// Field names in errors are taken from json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		_ = validate.RegisterValidation("vote", validateVote)
		_ = validate.RegisterValidation("sort", validateSort)
		_ = validate.RegisterValidation("tag", validateTag)
	})

	return validate
}

// Validate checks v against its struct tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors maps each failing field to a readable message. Slice
// elements are reported by index, e.g. "tags[2]".
func ValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
	}

	return fields
}

// IsValidationError reports whether err carries field failures.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

var validationMessages = map[string]string{
	"email": "must be a valid email address",
	"vote":  "must be 1 or -1",
	"sort":  "must be one of: " + sortChoices(),
	"tag":   "must not contain commas",
	"gte":   "must be greater than or equal to {param}",
	"lte":   "must be less than or equal to {param}",
}

func validationMessage(fe validator.FieldError) string {
	tag := fe.Tag()

	if tag == "min" || tag == "max" {
		return lengthMessage(fe)
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + tag
}

// lengthMessage words min/max by what is being measured: characters for
// text, items for tag lists, a plain bound for numbers.
func lengthMessage(fe validator.FieldError) string {
	bound := "at most"
	if fe.Tag() == "min" {
		bound = "at least"
	}

	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must have %s %s items", bound, fe.Param())
	default:
		return fmt.Sprintf("must be %s %s", bound, fe.Param())
	}
}

func validateVote(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v == 1 || v == -1
}

func validateSort(fl validator.FieldLevel) bool {
	_, err := domain.ParseSortOption(fl.Field().String())
	return err == nil
}

func validateTag(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), ",")
}

func sortChoices() string {
	return strings.Join([]string{
		string(domain.SortNewest),
		string(domain.SortVotes),
		string(domain.SortAnswers),
	}, " ")
}
