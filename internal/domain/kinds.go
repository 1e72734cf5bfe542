package domain

import "fmt"

// Kind identifica el tipo de entidad que se hidrata o se busca en remoto.
type Kind string

const (
	KindUser         Kind = "User"
	KindChannel      Kind = "Channel"
	KindFile         Kind = "File"
	KindCompany      Kind = "Company"
	KindConversation Kind = "Conversation"
)

// TargetType distingue los dos espacios de claves: conversaciones y canales.
type TargetType string

const (
	TargetConversation TargetType = "conversation"
	TargetChannel      TargetType = "channel"
)

func ParseTargetType(raw string) (TargetType, error) {
	switch TargetType(raw) {
	case TargetConversation, TargetChannel:
		return TargetType(raw), nil
	default:
		return "", fmt.Errorf("unknown target type %q", raw)
	}
}

// Addressing es el destino de un mensaje: Conversation(id) o Channel(id).
type Addressing struct {
	Type TargetType `json:"type"`
	ID   int64      `json:"id"`
}

func ConversationTarget(id int64) Addressing {
	return Addressing{Type: TargetConversation, ID: id}
}

func ChannelTarget(id int64) Addressing {
	return Addressing{Type: TargetChannel, ID: id}
}

func (a Addressing) IsConversation() bool { return a.Type == TargetConversation }

func (a Addressing) IsChannel() bool { return a.Type == TargetChannel }

// KeyRef devuelve el par etiquetado que indexa la clave simétrica del destino.
func (a Addressing) KeyRef() KeyRef {
	return KeyRef{Type: a.Type, ID: a.ID}
}

func (a Addressing) String() string {
	switch a.Type {
	case TargetConversation:
		return fmt.Sprintf("Conversation(%d)", a.ID)
	case TargetChannel:
		return fmt.Sprintf("Channel(%d)", a.ID)
	default:
		return fmt.Sprintf("Unknown(%d)", a.ID)
	}
}
