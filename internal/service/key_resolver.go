package service

import (
	"context"

	"stash-connect/internal/domain"
)

// KeyResolver resuelve la clave simétrica de un destino. No guarda estado entre llamadas.
type KeyResolver struct {
	source KeySource
}

func NewKeyResolver(source KeySource) *KeyResolver {
	return &KeyResolver{source: source}
}

// Resolve usa explicit si viene informada; si no, pide la clave a la fuente para ref.
func (r *KeyResolver) Resolve(ctx context.Context, ref domain.KeyRef, explicit domain.SymmetricKey) (domain.SymmetricKey, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if r == nil || r.source == nil {
		return nil, &KeyResolutionError{Ref: ref, Err: ErrKeyResolverNotConfigured}
	}

	key, err := r.source.ConversationKey(ctx, ref)
	if err != nil {
		return nil, &KeyResolutionError{Ref: ref, Err: err}
	}
	if len(key) == 0 {
		return nil, &KeyResolutionError{Ref: ref, Err: ErrEmptyKey}
	}
	return key, nil
}
