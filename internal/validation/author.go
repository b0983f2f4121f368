package validation

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
)

// AuthorForm is the raw author form as submitted, and the echo rendered back
// into the form after sanitization.
type AuthorForm struct {
	FirstName   string `form:"first_name"`
	FamilyName  string `form:"family_name"`
	DateOfBirth string `form:"date_of_birth"`
	DateOfDeath string `form:"date_of_death"`
}

// AuthorFields holds validated author input.
type AuthorFields struct {
	firstName   string
	familyName  string
	dateOfBirth *time.Time
	dateOfDeath *time.Time
	form        AuthorForm
}

func (f AuthorFields) FirstName() string       { return f.firstName }
func (f AuthorFields) FamilyName() string      { return f.familyName }
func (f AuthorFields) DateOfBirth() *time.Time { return copyTime(f.dateOfBirth) }
func (f AuthorFields) DateOfDeath() *time.Time { return copyTime(f.dateOfDeath) }
func (f AuthorFields) Form() AuthorForm        { return f.form }

type authorRules struct {
	FirstName   string `validate:"required,alphanum,max=100"`
	FamilyName  string `validate:"required,alphanum,max=100"`
	DateOfBirth string `validate:"omitempty,iso8601"`
	DateOfDeath string `validate:"omitempty,iso8601"`
}

var authorFields = []struct {
	name  string
	field string
	label string
}{
	{"FirstName", "first_name", "First name"},
	{"FamilyName", "family_name", "Family name"},
	{"DateOfBirth", "date_of_birth", "date of birth"},
	{"DateOfDeath", "date_of_death", "date of death"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := model.ParseISODate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// SanitizeAuthor trims and escapes every field of the form.
func SanitizeAuthor(form AuthorForm) AuthorForm {
	return AuthorForm{
		FirstName:   Sanitize(form.FirstName),
		FamilyName:  Sanitize(form.FamilyName),
		DateOfBirth: Sanitize(form.DateOfBirth),
		DateOfDeath: Sanitize(form.DateOfDeath),
	}
}

// ValidateAuthor sanitizes the form and checks it. On failure the returned
// error is an Errors listing one failure per offending field.
func ValidateAuthor(form AuthorForm) (AuthorFields, error) {
	clean := SanitizeAuthor(form)

	err := validate.Struct(authorRules(clean))
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return AuthorFields{}, err
		}
		return AuthorFields{}, authorErrors(verrs)
	}

	fields := AuthorFields{
		firstName:  clean.FirstName,
		familyName: clean.FamilyName,
		form:       clean,
	}
	if fields.dateOfBirth, err = parseOptionalDate(clean.DateOfBirth); err != nil {
		return AuthorFields{}, err
	}
	if fields.dateOfDeath, err = parseOptionalDate(clean.DateOfDeath); err != nil {
		return AuthorFields{}, err
	}

	return fields, nil
}

func authorErrors(verrs validator.ValidationErrors) Errors {
	byField := make(map[string]validator.FieldError, len(verrs))
	for _, fe := range verrs {
		byField[fe.StructField()] = fe
	}

	out := make(Errors, 0, len(verrs))
	for _, f := range authorFields {
		fe, ok := byField[f.name]
		if !ok {
			continue
		}
		out = append(out, FieldError{
			Field:   f.field,
			Rule:    fe.Tag(),
			Message: authorMessage(f.label, fe),
		})
	}
	return out
}

func authorMessage(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " must be specified."
	case "alphanum":
		return label + " has non-alphanumeric characters."
	case "max":
		return label + " must be at most " + fe.Param() + " characters."
	case "iso8601":
		return "Invalid " + label
	default:
		return label + " is invalid (" + fe.Tag() + ")"
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := model.ParseISODate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
