package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateDate valida que una fecha use el formato YYYY-MM-DD
func ValidateDate(value, fieldName string) error {
	if _, err := time.ParseInLocation(event.DateLayout, value, time.Local); err != nil {
		return fmt.Errorf("%s must use format %s", fieldName, event.DateLayout)
	}
	return nil
}

// PersonValidation contiene validaciones específicas para personas
type PersonValidation struct{}

// ValidateName valida el nombre de una persona
func (v PersonValidation) ValidateName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 50, "name")
}

// EventValidation contiene validaciones específicas para eventos
type EventValidation struct{}

// ValidateReason valida la razón de un evento
func (v EventValidation) ValidateReason(reason string) error {
	if err := ValidateRequired(reason, "reason"); err != nil {
		return err
	}
	return ValidateMaxLength(reason, 500, "reason")
}

// ValidateDate valida la fecha de un evento; vacía significa "hoy"
func (v EventValidation) ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	return ValidateDate(date, "date")
}
