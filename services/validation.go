package services

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/anjiri1684/tutor_cards/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their JSON names so clients can match them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of s and converts failures into an
// apperrors.ValidationError. Failed "required" rules are reported as
// missing fields in declaration order.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing []string
	var fields []apperrors.FieldError
	for _, fe := range verrs {
		name := trimNamespace(fe.Namespace())
		if fe.Tag() == "required" {
			missing = append(missing, name)
			continue
		}
		fields = append(fields, apperrors.FieldError{Field: name, Error: "must be a valid " + fe.Tag()})
	}
	return apperrors.NewValidationError(missing, fields...)
}

// trimNamespace drops the leading struct name: "Card.name" becomes "name",
// "TeacherProfile.subjects[0].subjectName" becomes "subjects[0].subjectName".
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
