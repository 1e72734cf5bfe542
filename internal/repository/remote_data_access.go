package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
	"stash-connect/internal/stash"
)

// ErrKeyUnavailable indica que el servicio no tiene clave para el destino (p.ej. aún no intercambiada).
var ErrKeyUnavailable = errors.New("conversation key unavailable")

// KeyUnwrapper descifra una clave envuelta con la clave privada local.
type KeyUnwrapper interface {
	Unwrap(wrapped string) ([]byte, error)
}

type endpoint struct {
	path    string
	idField string
	field   string
	extra   url.Values
}

var fullRecordEndpoints = map[domain.Kind]endpoint{
	domain.KindUser:         {path: "users/info", idField: "user_id", field: "user", extra: url.Values{"withkey": {"true"}}},
	domain.KindChannel:      {path: "channels/info", idField: "channel_id", field: "channels", extra: url.Values{"without_members": {"true"}}},
	domain.KindFile:         {path: "file/info", idField: "file_id", field: "file"},
	domain.KindCompany:      {path: "company/details", idField: "company_id", field: "company"},
	domain.KindConversation: {path: "message/conversation", idField: "conversation_id", field: "conversation"},
}

// RemoteDataAccess resuelve registros completos y claves contra la API remota.
type RemoteDataAccess struct {
	api       stash.API
	unwrapper KeyUnwrapper
}

func NewRemoteDataAccess(api stash.API, unwrapper KeyUnwrapper) *RemoteDataAccess {
	return &RemoteDataAccess{api: api, unwrapper: unwrapper}
}

// FetchFull obtiene el registro completo de una entidad por id.
func (d *RemoteDataAccess) FetchFull(ctx context.Context, kind domain.Kind, id int64) (payload.Record, error) {
	ep, ok := fullRecordEndpoints[kind]
	if !ok {
		return nil, fmt.Errorf("no detail endpoint for %s", kind)
	}
	form := url.Values{ep.idField: {strconv.FormatInt(id, 10)}}
	for k, v := range ep.extra {
		form[k] = v
	}

	resp, err := d.api.Post(ctx, ep.path, form)
	if err != nil {
		return nil, err
	}
	rec, err := resp.Object(ep.field)
	if err != nil {
		return nil, fmt.Errorf("%s response: %w", ep.path, err)
	}
	return rec, nil
}

// ConversationKey obtiene la clave envuelta del destino y la descifra localmente.
func (d *RemoteDataAccess) ConversationKey(ctx context.Context, ref domain.KeyRef) (domain.SymmetricKey, error) {
	var kind domain.Kind
	switch ref.Type {
	case domain.TargetConversation:
		kind = domain.KindConversation
	case domain.TargetChannel:
		kind = domain.KindChannel
	default:
		return nil, fmt.Errorf("unknown key space %q", ref.Type)
	}

	rec, err := d.FetchFull(ctx, kind, ref.ID)
	if err != nil {
		return nil, err
	}
	wrapped, err := rec.String("key")
	if err != nil || wrapped == "" {
		return nil, fmt.Errorf("%s: %w", ref, ErrKeyUnavailable)
	}
	if d.unwrapper == nil {
		return nil, fmt.Errorf("%s: no key unwrapper configured", ref)
	}
	key, err := d.unwrapper.Unwrap(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return key, nil
}

// ListMessages devuelve una página de mensajes crudos de un destino.
func (d *RemoteDataAccess) ListMessages(ctx context.Context, target domain.Addressing, limit, offset int) ([]any, error) {
	form := url.Values{
		string(target.Type) + "_id": {strconv.FormatInt(target.ID, 10)},
		"source":                    {string(target.Type)},
		"limit":                     {strconv.Itoa(limit)},
		"offset":                    {strconv.Itoa(offset)},
	}
	resp, err := d.api.Post(ctx, "message/content", form)
	if err != nil {
		return nil, err
	}
	items, err := resp.Array("messages")
	if err != nil {
		return nil, fmt.Errorf("message/content response: %w", err)
	}
	return items, nil
}

// ListConversations devuelve una página de conversaciones crudas.
func (d *RemoteDataAccess) ListConversations(ctx context.Context, limit, offset int) ([]any, error) {
	form := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	resp, err := d.api.Post(ctx, "message/conversations", form)
	if err != nil {
		return nil, err
	}
	items, err := resp.Array("conversations")
	if err != nil {
		return nil, fmt.Errorf("message/conversations response: %w", err)
	}
	return items, nil
}
