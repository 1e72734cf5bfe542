package domain

type Company struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Manager          User   `json:"manager"`
	TimeCreated      int64  `json:"created"`
	TimeJoined       int64  `json:"time_joined"`
	UnreadMessages   int64  `json:"unread_messages"`
	LogoURL          string `json:"logo_url"`
	Domain           string `json:"domain"`
	MaxUsers         int64  `json:"max_users"`
	ActiveUsers      int64  `json:"active_users"`
	CreatedUsers     int64  `json:"created_users"`
	MembershipExpiry int64  `json:"membership_expiry"`
	OnlinePayment    bool   `json:"online_payment"`
	Protected        bool   `json:"protected"`
	Provider         string `json:"provider"`
	Quota            int64  `json:"quota"`
	Freemium         bool   `json:"freemium"`
	Deactivated      bool   `json:"deactivated"`
	Deleted          bool   `json:"deleted"`
	Features         any    `json:"features,omitempty"`
	Permission       any    `json:"permission,omitempty"`
	Roles            any    `json:"roles,omitempty"`
	Settings         any    `json:"settings,omitempty"`
}
