package domain

type Channel struct {
	ID                       int64      `json:"id"`
	Company                  Company    `json:"company"`
	CryptoProperties         string     `json:"crypto_properties"`
	Encrypted                bool       `json:"encrypted"`
	Federated                bool       `json:"federated"`
	UniqueIdentifier         string     `json:"unique_identifier"`
	Description              string     `json:"description"`
	Name                     string     `json:"name"`
	Image                    string     `json:"image"`
	GroupID                  int64      `json:"group_id"`
	CanLeave                 bool       `json:"can_leave"`
	Inviteable               string     `json:"inviteable"`
	LastAction               int64      `json:"last_action"`
	LDAPName                 string     `json:"ldap_name"`
	MXRoomAlias              string     `json:"mx_room_alias"`
	MXRoomID                 string     `json:"mx_room_id"`
	MXRoomServerStatus       string     `json:"mx_room_server_status"`
	NumMembersWithoutKeys    int64      `json:"num_members_without_keys"`
	Password                 string     `json:"password"`
	PendingCount             int64      `json:"pending_count"`
	RequestCount             int64      `json:"request_count"`
	ShowActivities           bool       `json:"show_activities"`
	ShowMembershipActivities bool       `json:"show_membership_activities"`
	Type                     string     `json:"type"`
	UserCount                int64      `json:"user_count"`
	Visible                  bool       `json:"visible"`
	Writable                 string     `json:"writable"`
	Membership               Membership `json:"membership"`
}

// Membership describe la relación del usuario actual con el canal.
type Membership struct {
	IsMember          bool   `json:"is_member"`
	Joined            int64  `json:"joined"`
	MayManage         bool   `json:"may_manage"`
	Muted             string `json:"muted"`
	Write             bool   `json:"write"`
	Confirmation      int64  `json:"confirmation"`
	InvitedAt         int64  `json:"invited_at"`
	InvitedBy         int64  `json:"invited_by"`
	InvitedByMXUserID string `json:"invited_by_mx_user_id"`
}
