package domain

import "fmt"

// SymmetricKey es la clave AES de una conversación o canal.
type SymmetricKey []byte

// KeyRef nunca es un entero pelado: conversaciones y canales comparten rangos de ids.
type KeyRef struct {
	Type TargetType
	ID   int64
}

func (k KeyRef) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.ID)
}
