package service

import (
	"context"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// User hidrata un usuario desde un registro, un resumen parcial o un id.
func (h *Hydrator) User(ctx context.Context, raw any) (domain.User, error) {
	return hydrate(ctx, h, domain.KindUser, raw, h.attemptUser)
}

func (h *Hydrator) attemptUser(_ context.Context, rec payload.Record) (Attempt[domain.User], error) {
	f := readFields(rec)
	u := domain.User{
		ID:          f.id("id"),
		FirstName:   f.str("first_name"),
		LastName:    f.str("last_name"),
		Email:       f.str("email"),
		Status:      f.str("status"),
		Image:       f.str("image"),
		Language:    f.str("language"),
		LastLogin:   f.num("last_login"),
		Online:      f.flag("online"),
		Permissions: f.value("permissions"),
		PublicKey:   f.str("public_key"),
		Companies:   f.value("roles"),
	}
	if f.failed() {
		return Incomplete[domain.User](f.Err()), nil
	}
	return Complete(u), nil
}
