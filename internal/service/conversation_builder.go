package service

import (
	"context"
	"fmt"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

// ConversationBuilder construye conversaciones desde el listado de conversaciones.
// El payload trae su propia clave envuelta, que se usa como clave explícita.
type ConversationBuilder struct {
	resolver  *KeyResolver
	unwrapper KeyUnwrapper
	hydrator  *Hydrator
}

func NewConversationBuilder(resolver *KeyResolver, unwrapper KeyUnwrapper, hydrator *Hydrator) *ConversationBuilder {
	return &ConversationBuilder{resolver: resolver, unwrapper: unwrapper, hydrator: hydrator}
}

func (b *ConversationBuilder) Build(ctx context.Context, rec payload.Record) (domain.Conversation, error) {
	f := readFields(rec)
	conv := domain.Conversation{
		ID:             f.id("id"),
		KeySender:      f.num("key_sender"),
		Encrypted:      f.flag("encrypted"),
		Favorited:      f.flag("favorite"),
		Archived:       f.flag("archive"),
		LastAction:     f.num("last_action"),
		LastActivity:   f.num("last_activity"),
		Muted:          f.str("muted"),
		Name:           f.str("name"),
		UnreadMessages: f.num("unread_messages"),
		UserCount:      f.num("user_count"),
	}
	wrapped := f.str("key")
	members := f.array("members")
	callable := f.array("callable")
	if f.failed() {
		return domain.Conversation{}, fmt.Errorf("%w: conversation: %w", ErrMalformedPayload, f.Err())
	}

	ref := conv.Addressing().KeyRef()
	explicit, err := b.explicitKey(ref, wrapped)
	if err != nil {
		return domain.Conversation{}, err
	}
	key, err := b.resolver.Resolve(ctx, ref, explicit)
	if err != nil {
		return domain.Conversation{}, err
	}
	conv.Key = key

	if conv.Members, err = b.users(ctx, members); err != nil {
		return domain.Conversation{}, err
	}
	if conv.Callable, err = b.users(ctx, callable); err != nil {
		return domain.Conversation{}, err
	}
	return conv, nil
}

// explicitKey desenvuelve la clave del payload. Sin clave en el payload devuelve nil
// y la resolución pasa a la fuente de claves.
func (b *ConversationBuilder) explicitKey(ref domain.KeyRef, wrapped string) (domain.SymmetricKey, error) {
	if wrapped == "" {
		return nil, nil
	}
	if b.unwrapper == nil {
		return nil, &KeyResolutionError{Ref: ref, Err: ErrKeyResolverNotConfigured}
	}
	key, err := b.unwrapper.Unwrap(wrapped)
	if err != nil {
		return nil, &KeyResolutionError{Ref: ref, Err: err}
	}
	return key, nil
}

func (b *ConversationBuilder) users(ctx context.Context, raw []any) ([]domain.User, error) {
	out := make([]domain.User, 0, len(raw))
	for _, item := range raw {
		u, err := b.hydrator.User(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
