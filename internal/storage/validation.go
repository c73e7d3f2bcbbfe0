// Package storage provides the SQLite persistence layer for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Guard errors for parameters that should never reach the database layer.
var (
	ErrInit         = errors.New("storage initialization failed")
	ErrNilContext   = errors.New("context cannot be nil")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}
