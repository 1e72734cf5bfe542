package domain

// Conversation es un chat directo o de grupo fuera de un canal.
type Conversation struct {
	ID             int64        `json:"id"`
	KeySender      int64        `json:"key_sender"`
	Key            SymmetricKey `json:"-"`
	Encrypted      bool         `json:"encrypted"`
	Favorited      bool         `json:"favorite"`
	Archived       bool         `json:"archive"`
	LastAction     int64        `json:"last_action"`
	LastActivity   int64        `json:"last_activity"`
	Muted          string       `json:"muted"`
	Name           string       `json:"name"`
	UnreadMessages int64        `json:"unread_messages"`
	UserCount      int64        `json:"user_count"`
	Members        []User       `json:"members"`
	Callable       []User       `json:"callable"`
}

func (c Conversation) Addressing() Addressing {
	return ConversationTarget(c.ID)
}
