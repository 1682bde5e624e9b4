package service

import (
	"errors"
	"fmt"
)

// Erros de domínio. O handler mapeia cada um para o código de negócio
// e o status HTTP correspondentes.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderLocked       = errors.New("order is not editable in its current status")
	ErrOrderNotApproved  = errors.New("order is not approved")
	ErrDuplicateCode     = errors.New("code already in use")
	ErrInUse             = errors.New("record has linked rows")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInactiveUser      = errors.New("user is inactive")
)

// ValidationError descreve um campo rejeitado na entrada.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateCNPJError aponta o cadastro que já usa o CNPJ.
type DuplicateCNPJError struct {
	ExistingID uint
}

func (e *DuplicateCNPJError) Error() string {
	return fmt.Sprintf("CNPJ já cadastrado (id=%d)", e.ExistingID)
}
