package service

import (
	"context"

	"go.uber.org/zap"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// Attempt es el resultado de construir una entidad desde un payload:
// Complete(entity) o Incomplete(reason).
type Attempt[T any] struct {
	entity T
	reason error
}

func Complete[T any](entity T) Attempt[T] {
	return Attempt[T]{entity: entity}
}

func Incomplete[T any](reason error) Attempt[T] {
	return Attempt[T]{reason: reason}
}

func (a Attempt[T]) IsComplete() bool { return a.reason == nil }

// Reason es el motivo por el que el payload no bastó; nil si la entidad está completa.
func (a Attempt[T]) Reason() error { return a.reason }

// attemptFunc solo devuelve error para fallos que no se arreglan con otro registro
// (p.ej. una entidad anidada que no pudo hidratarse).
type attemptFunc[T any] func(ctx context.Context, rec payload.Record) (Attempt[T], error)

// Hydrator completa entidades parciales pidiendo el registro completo una sola vez.
type Hydrator struct {
	fetcher RecordFetcher
	logger  *zap.Logger
}

func NewHydrator(fetcher RecordFetcher, logger *zap.Logger) *Hydrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hydrator{fetcher: fetcher, logger: logger}
}

// hydrate acepta un registro o una referencia desnuda (solo el id).
func hydrate[T any](ctx context.Context, h *Hydrator, kind domain.Kind, raw any, attempt attemptFunc[T]) (T, error) {
	var zero T

	id, ok := payload.RefID(raw)
	if !ok {
		return zero, &HydrationError{Kind: kind, Err: ErrNoIdentity}
	}

	var reason error = &payload.FieldError{Field: "$", Reason: payload.ErrShape}
	if rec, isRecord := payload.AsRecord(raw); isRecord {
		first, err := attempt(ctx, rec)
		if err != nil {
			return zero, err
		}
		if first.IsComplete() {
			return first.entity, nil
		}
		reason = first.Reason()
	}

	if h.fetcher == nil {
		return zero, &HydrationError{Kind: kind, ID: id, Err: reason}
	}
	h.logger.Debug("partial payload, fetching full record",
		zap.String("kind", string(kind)),
		zap.Int64("id", id),
		zap.NamedError("reason", reason),
	)

	full, err := h.fetcher.FetchFull(ctx, kind, id)
	if err != nil {
		return zero, &HydrationError{Kind: kind, ID: id, Err: err}
	}
	second, err := attempt(ctx, full)
	if err != nil {
		return zero, err
	}
	if !second.IsComplete() {
		return zero, &HydrationError{Kind: kind, ID: id, Err: second.Reason()}
	}
	return second.entity, nil
}
