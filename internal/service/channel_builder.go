package service

import (
	"context"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// Channel hidrata un canal. La empresa del canal llega como referencia y siempre se busca completa.
func (h *Hydrator) Channel(ctx context.Context, raw any) (domain.Channel, error) {
	return hydrate(ctx, h, domain.KindChannel, raw, h.attemptChannel)
}

func (h *Hydrator) attemptChannel(ctx context.Context, rec payload.Record) (Attempt[domain.Channel], error) {
	f := readFields(rec)
	m := f.object("membership")
	ch := domain.Channel{
		ID:                       f.id("id"),
		CryptoProperties:         f.str("crypto_properties"),
		Encrypted:                f.flag("encrypted"),
		Federated:                f.flag("federated"),
		UniqueIdentifier:         f.str("unique_identifier"),
		Description:              f.str("description"),
		Name:                     f.str("name"),
		Image:                    f.str("image"),
		GroupID:                  f.num("group_id"),
		CanLeave:                 f.flag("can_leave"),
		Inviteable:               f.str("inviteable"),
		LastAction:               f.num("last_action"),
		LDAPName:                 f.str("ldap_name"),
		MXRoomAlias:              f.str("mx_room_alias"),
		MXRoomID:                 f.str("mx_room_id"),
		MXRoomServerStatus:       f.str("mx_room_server_status"),
		NumMembersWithoutKeys:    f.num("num_members_without_keys"),
		Password:                 f.str("password"),
		PendingCount:             f.num("pending_count"),
		RequestCount:             f.num("request_count"),
		ShowActivities:           f.flag("show_activities"),
		ShowMembershipActivities: f.flag("show_membership_activities"),
		Type:                     f.str("type"),
		UserCount:                f.num("user_count"),
		Visible:                  f.flag("visible"),
		Writable:                 f.str("writable"),
		Membership: domain.Membership{
			IsMember:          m.flag("is_member"),
			Joined:            m.num("joined"),
			MayManage:         m.flag("may_manage"),
			Muted:             m.str("muted"),
			Write:             m.flag("write"),
			Confirmation:      m.num("confirmation"),
			InvitedAt:         m.num("invited_at"),
			InvitedBy:         m.num("invited_by"),
			InvitedByMXUserID: m.str("invited_by_mx_user_id"),
		},
	}
	company := f.ref("company")
	if f.failed() {
		return Incomplete[domain.Channel](f.Err()), nil
	}

	companyID, _ := payload.RefID(company)
	c, err := h.CompanyByID(ctx, companyID)
	if err != nil {
		return Attempt[domain.Channel]{}, err
	}
	ch.Company = c
	return Complete(ch), nil
}
