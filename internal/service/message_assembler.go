package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

var ErrInvalidUTF8 = errors.New("plaintext is not valid utf-8")

// MessageAssembler convierte un registro de mensaje en un domain.Message descifrado.
// Cada llamada es independiente; puede usarse en paralelo para mensajes distintos.
type MessageAssembler struct {
	logger    *zap.Logger
	resolver  *KeyResolver
	decrypter Decrypter
	hydrator  *Hydrator
	localKey  LocalKey
}

func NewMessageAssembler(logger *zap.Logger, resolver *KeyResolver, decrypter Decrypter, hydrator *Hydrator, localKey LocalKey) *MessageAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageAssembler{
		logger:    logger,
		resolver:  resolver,
		decrypter: decrypter,
		hydrator:  hydrator,
		localKey:  localKey,
	}
}

// Assemble nunca devuelve un mensaje parcial: cualquier fallo de clave,
// descifrado o hidratación aborta el mensaje completo.
func (a *MessageAssembler) Assemble(ctx context.Context, rec payload.Record) (domain.Message, error) {
	f := readFields(rec)
	msg := domain.Message{
		ID:         f.id("id"),
		Ciphertext: f.str("text"),
		Encrypted:  f.flag("encrypted"),
	}
	channelID := f.num("channel_id")
	var conversationID int64
	if channelID == 0 {
		conversationID = f.id("conversation_id")
	}
	sender := f.value("sender")
	files := f.array("files")
	if f.failed() {
		return domain.Message{}, fmt.Errorf("%w: message: %w", ErrMalformedPayload, f.Err())
	}

	if channelID == 0 {
		msg.Addressing = domain.ConversationTarget(conversationID)
	} else {
		msg.Addressing = domain.ChannelTarget(channelID)
	}

	key, err := a.resolver.Resolve(ctx, msg.Addressing.KeyRef(), nil)
	if err != nil {
		return domain.Message{}, err
	}

	if msg.Encrypted {
		iv, err := a.iv(rec)
		if err != nil {
			return domain.Message{}, err
		}
		msg.IV = iv
		text, err := a.decryptHex("text", msg.Ciphertext, key, iv)
		if err != nil {
			return domain.Message{}, err
		}
		msg.Plaintext = text
	} else {
		msg.Plaintext = msg.Ciphertext
	}

	// Un objeto de ubicación sin coordenadas equivale a no tener ubicación.
	if loc, ok := payload.AsRecord(rec["location"]); ok && (loc.Has("latitude") || loc.Has("longitude")) {
		location, err := a.location(msg, loc, key, rec)
		if err != nil {
			return domain.Message{}, err
		}
		msg.Location = location
	}

	a.passThrough(&msg, rec)

	author, err := a.hydrator.User(ctx, sender)
	if err != nil {
		return domain.Message{}, err
	}
	msg.Author = author

	msg.Files = make([]domain.File, 0, len(files))
	for _, raw := range files {
		file, err := a.hydrator.File(ctx, raw)
		if err != nil {
			return domain.Message{}, err
		}
		msg.Files = append(msg.Files, file)
	}
	return msg, nil
}

func (a *MessageAssembler) location(msg domain.Message, loc payload.Record, key domain.SymmetricKey, rec payload.Record) (*domain.Location, error) {
	f := readFields(loc)
	out := &domain.Location{
		Latitude:  f.str("latitude"),
		Longitude: f.str("longitude"),
	}
	if loc.Has("encrypted") {
		out.Encrypted = f.flag("encrypted")
	}
	if f.failed() {
		return nil, fmt.Errorf("%w: location: %w", ErrMalformedPayload, f.Err())
	}

	if !out.Encrypted {
		out.Decoded = true
		return out, nil
	}

	if a.localKey == nil || !a.localKey.Configured() {
		a.logger.Warn("encrypted location left undecoded: no local decryption key configured",
			zap.Int64("message_id", msg.ID),
			zap.Stringer("target", msg.Addressing),
		)
		return out, nil
	}

	iv := msg.IV
	if iv == nil {
		var err error
		if iv, err = a.iv(rec); err != nil {
			return nil, err
		}
	}
	lat, err := a.decryptHex("location.latitude", out.Latitude, key, iv)
	if err != nil {
		return nil, err
	}
	lng, err := a.decryptHex("location.longitude", out.Longitude, key, iv)
	if err != nil {
		return nil, err
	}
	out.Latitude, out.Longitude, out.Decoded = lat, lng, true
	return out, nil
}

func (a *MessageAssembler) iv(rec payload.Record) ([]byte, error) {
	raw, err := rec.String("iv")
	if err != nil {
		return nil, &DecryptionError{Field: "iv", Err: err}
	}
	iv, err := hex.DecodeString(raw)
	if err != nil {
		return nil, &DecryptionError{Field: "iv", Err: err}
	}
	return iv, nil
}

func (a *MessageAssembler) decryptHex(field, value string, key domain.SymmetricKey, iv []byte) (string, error) {
	ciphertext, err := hex.DecodeString(value)
	if err != nil {
		return "", &DecryptionError{Field: field, Err: err}
	}
	plain, err := a.decrypter.Decrypt(ciphertext, key, iv)
	if err != nil {
		return "", &DecryptionError{Field: field, Err: err}
	}
	if !utf8.Valid(plain) {
		return "", &DecryptionError{Field: field, Err: ErrInvalidUTF8}
	}
	return string(plain), nil
}

// passThrough copia los campos opcionales que no participan en el descifrado.
func (a *MessageAssembler) passThrough(msg *domain.Message, rec payload.Record) {
	msg.Time, _ = rec.Int("time")
	msg.Flagged, _ = rec.Bool("flagged")
	msg.Liked, _ = rec.Bool("liked")
	msg.Likes, _ = rec.Int("likes")
	msg.Kind, _ = rec.String("kind")
	msg.Hash, _ = rec.String("hash")
	msg.Links = rec["links"]
}
