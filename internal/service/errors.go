package service

import (
	"errors"
	"fmt"

	"stash-connect/internal/domain"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrNoIdentity       = errors.New("payload carries no usable id")
	ErrEmptyKey         = errors.New("resolved key is empty")

	ErrKeyResolverNotConfigured = errors.New("key resolver not configured")
)

// KeyResolutionError indica que no se pudo establecer la clave de un destino.
// Aborta la construcción del mensaje o conversación dependiente.
type KeyResolutionError struct {
	Ref domain.KeyRef
	Err error
}

func (e *KeyResolutionError) Error() string {
	return fmt.Sprintf("resolve key for %s: %v", e.Ref, e.Err)
}

func (e *KeyResolutionError) Unwrap() error { return e.Err }

// DecryptionError indica que un campo cifrado no pudo descifrarse con la clave e IV dados.
type DecryptionError struct {
	Field string
	Err   error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decrypt %s: %v", e.Field, e.Err)
}

func (e *DecryptionError) Unwrap() error { return e.Err }

// HydrationError indica que una entidad no pudo completarse ni tras el reintento.
type HydrationError struct {
	Kind domain.Kind
	ID   int64
	Err  error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("hydrate %s %d: %v", e.Kind, e.ID, e.Err)
}

func (e *HydrationError) Unwrap() error { return e.Err }
