package service

import (
	"context"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// Company construye una empresa desde un registro completo o desde una
// referencia {"company_id": ...}. La referencia siempre provoca una búsqueda.
func (h *Hydrator) Company(ctx context.Context, rec payload.Record) (domain.Company, error) {
	if rec.Has("company_id") {
		id, err := rec.ID("company_id")
		if err != nil {
			return domain.Company{}, &HydrationError{Kind: domain.KindCompany, Err: ErrNoIdentity}
		}
		return h.CompanyByID(ctx, id)
	}

	id, _ := rec.ID("id")
	return h.buildCompany(ctx, id, rec)
}

// CompanyByID busca siempre el registro completo; no es un reintento.
func (h *Hydrator) CompanyByID(ctx context.Context, id int64) (domain.Company, error) {
	if h.fetcher == nil {
		return domain.Company{}, &HydrationError{Kind: domain.KindCompany, ID: id, Err: ErrMalformedPayload}
	}
	full, err := h.fetcher.FetchFull(ctx, domain.KindCompany, id)
	if err != nil {
		return domain.Company{}, &HydrationError{Kind: domain.KindCompany, ID: id, Err: err}
	}
	return h.buildCompany(ctx, id, full)
}

func (h *Hydrator) buildCompany(ctx context.Context, id int64, rec payload.Record) (domain.Company, error) {
	attempt, err := h.attemptCompany(ctx, rec)
	if err != nil {
		return domain.Company{}, err
	}
	if !attempt.IsComplete() {
		return domain.Company{}, &HydrationError{Kind: domain.KindCompany, ID: id, Err: attempt.Reason()}
	}
	return attempt.entity, nil
}

func (h *Hydrator) attemptCompany(ctx context.Context, rec payload.Record) (Attempt[domain.Company], error) {
	f := readFields(rec)
	users := f.object("users")
	c := domain.Company{
		ID:               f.id("id"),
		Name:             f.str("name"),
		TimeCreated:      f.num("created"),
		TimeJoined:       f.num("time_joined"),
		UnreadMessages:   f.num("unread_messages"),
		LogoURL:          f.str("logo_url"),
		Domain:           f.str("domain"),
		MaxUsers:         f.num("max_users"),
		ActiveUsers:      users.num("active"),
		CreatedUsers:     users.num("created"),
		MembershipExpiry: f.num("membership_expiry"),
		OnlinePayment:    f.flag("online_payment"),
		Protected:        f.flag("protected"),
		Provider:         f.str("provider"),
		Quota:            f.num("quota"),
		Freemium:         f.flag("freemium"),
		Deactivated:      f.flag("deactivated"),
		Deleted:          f.flag("deleted"),
		Features:         f.value("features"),
		Permission:       f.value("permission"),
		Roles:            f.value("roles"),
		Settings:         f.value("settings"),
	}
	manager := f.ref("manager")
	if f.failed() {
		return Incomplete[domain.Company](f.Err()), nil
	}

	u, err := h.User(ctx, manager)
	if err != nil {
		return Attempt[domain.Company]{}, err
	}
	c.Manager = u
	return Complete(c), nil
}
