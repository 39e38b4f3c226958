package handler

import (
	"errors"
	"strings"

	"talent-hive/internal/delivery/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = validator.New()

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// validateRequest maps validator failures to a 400 listing the failing fields.
func validateRequest(req any, message string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return middleware.NewAppError(fiber.StatusBadRequest, message, nil, err)
	}

	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{Field: lowerFirst(fe.Field()), Rule: fe.Tag()})
	}
	return middleware.NewAppError(fiber.StatusBadRequest, message, fields, err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
