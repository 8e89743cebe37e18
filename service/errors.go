package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation = errors.New("failed validation")
	ErrRecordNotFound   = errors.New("record not found")
	ErrEditConflict     = errors.New("edit conflict")
	ErrDuplicateRecord  = errors.New("duplicate record")
	ErrBadRequest       = errors.New("bad request")
)

// failedValidation flattens a validation error map into an error that wraps
// ErrFailedValidation, so callers can both match the class with errors.Is
// and surface the per-field messages.
func (s *service) failedValidation(errorMap map[string]string) error {
	fields := make([]string, 0, len(errorMap))
	for field := range errorMap {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%q %s", field, errorMap[field]))
	}
	return fmt.Errorf("%w: %s", ErrFailedValidation, strings.Join(parts, "; "))
}
