package model

import (
	"errors"
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across the package; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report wire names instead of Go field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// abspath accepts absolute POSIX paths only.
	_ = v.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
		return path.IsAbs(fl.Field().String())
	})

	return v
}

// Validate checks required fields, absolute paths, and chunk size bounds.
func (r *SyncRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks required fields, the status enum, and that every storage
// path is absolute.
func (hb *WorkerHeartbeat) Validate() error {
	return validate.Struct(hb)
}

// Validate checks the fields a result must carry to be attributable.
func (r *SyncResult) Validate() error {
	return validate.Struct(r)
}

// FieldErrors flattens a validator error into wire-name/rule pairs for
// transport in problem responses. Returns nil for non-validation errors.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
