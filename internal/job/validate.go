package job

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		// Report fields by their JSON names so messages match the file format.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}

			return name
		})

		_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
			return Status(fl.Field().String()).IsValid()
		})

		validate = v
	})

	return validate
}

// ValidateForm checks the fields a user must provide before a form is handed
// to the store. The store itself does not validate.
func ValidateForm(f *Form) error {
	err := formValidator().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "jobstatus":
		return fmt.Sprintf("status %q must be one of Applied, Interviewing, Offer, Rejected", fe.Value())
	case "datetime":
		return fmt.Sprintf("%s %q must be a date in YYYY-MM-DD form", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
