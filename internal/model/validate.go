package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every validation failure so callers can map it to a
// 400 response with errors.Is.
var ErrInvalid = errors.New("invalid record")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("group", func(fl validator.FieldLevel) bool {
		return Group(fl.Field().String()).Valid()
	})
}

// ValidateHall checks hall geometry and identity before the record reaches
// storage or the placement engine.
func ValidateHall(h Hall) error {
	return check(h)
}

// ValidateCandidate checks a candidate record, including its group.
func ValidateCandidate(c Candidate) error {
	return check(c)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
