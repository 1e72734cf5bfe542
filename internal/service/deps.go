package service

import (
	"context"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// RecordFetcher obtiene el registro completo de una entidad.
type RecordFetcher interface {
	FetchFull(ctx context.Context, kind domain.Kind, id int64) (payload.Record, error)
}

// KeySource obtiene la clave simétrica de una conversación o canal.
type KeySource interface {
	ConversationKey(ctx context.Context, ref domain.KeyRef) (domain.SymmetricKey, error)
}

// Decrypter es la primitiva simétrica (AES) usada para texto y ubicaciones.
type Decrypter interface {
	Decrypt(ciphertext, key, iv []byte) ([]byte, error)
}

// KeyUnwrapper descifra claves envueltas con la clave privada local.
type KeyUnwrapper interface {
	Unwrap(wrapped string) ([]byte, error)
}

// LocalKey informa si hay material de clave local configurado.
type LocalKey interface {
	Configured() bool
}
