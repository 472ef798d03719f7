package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un payload de request contra sus tags `validate`.
func Struct(s any) error {
	return v.Struct(s)
}

// Message arma un mensaje corto y estable para responder 400.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return strings.ToLower(fe.Field()) + " failed " + fe.Tag() + "=" + fe.Param()
		}
		return strings.ToLower(fe.Field()) + " failed " + fe.Tag()
	}
	return "invalid payload"
}
