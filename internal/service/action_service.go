package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stash-connect/internal/stash"
)

var (
	ErrActionServiceNotConfigured = errors.New("action service not configured")
	ErrActionInvalidInput         = errors.New("action invalid input")
)

// Action es una acción reenviada tal cual al servicio remoto.
type Action string

const (
	ActionLikeMessage            Action = "like"
	ActionUnlikeMessage          Action = "unlike"
	ActionFlagMessage            Action = "flag"
	ActionUnflagMessage          Action = "unflag"
	ActionDeleteMessage          Action = "delete"
	ActionArchiveConversation    Action = "archive"
	ActionFavoriteConversation   Action = "favorite"
	ActionUnfavoriteConversation Action = "unfavorite"
	ActionQuitChannel            Action = "quit"
)

type actionRoute struct {
	path  string
	param string
}

var messageActions = map[Action]actionRoute{
	ActionLikeMessage:   {path: "message/like", param: "message_id"},
	ActionUnlikeMessage: {path: "message/unlike", param: "message_id"},
	ActionFlagMessage:   {path: "message/set_flag", param: "message_id"},
	ActionUnflagMessage: {path: "message/unset_flag", param: "message_id"},
	ActionDeleteMessage: {path: "message/delete", param: "message_id"},
}

var conversationActions = map[Action]actionRoute{
	ActionArchiveConversation:    {path: "message/archive_conversation", param: "conversation_id"},
	ActionFavoriteConversation:   {path: "message/set_favorite", param: "conversation_id"},
	ActionUnfavoriteConversation: {path: "message/unset_favorite", param: "conversation_id"},
}

var channelActions = map[Action]actionRoute{
	ActionQuitChannel: {path: "channels/quit", param: "channel_id"},
}

// ActionService reenvía acciones de usuario sobre mensajes, conversaciones y canales.
type ActionService struct {
	api    stash.API
	logger *zap.Logger
}

func NewActionService(api stash.API, logger *zap.Logger) *ActionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionService{api: api, logger: logger}
}

func (s *ActionService) Message(ctx context.Context, action Action, messageID int64) error {
	return s.forward(ctx, messageActions, action, messageID, nil)
}

func (s *ActionService) Conversation(ctx context.Context, action Action, conversationID int64) error {
	return s.forward(ctx, conversationActions, action, conversationID, nil)
}

func (s *ActionService) Channel(ctx context.Context, action Action, channelID int64) error {
	return s.forward(ctx, channelActions, action, channelID, nil)
}

func (s *ActionService) RenameChannel(ctx context.Context, channelID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrActionInvalidInput
	}
	route := map[Action]actionRoute{"rename": {path: "channels/rename", param: "channel_id"}}
	return s.forward(ctx, route, "rename", channelID, url.Values{"channel_name": {name}})
}

func (s *ActionService) forward(ctx context.Context, routes map[Action]actionRoute, action Action, id int64, extra url.Values) error {
	if s == nil || s.api == nil {
		return ErrActionServiceNotConfigured
	}
	route, ok := routes[action]
	if !ok || id <= 0 {
		return ErrActionInvalidInput
	}

	form := url.Values{route.param: {strconv.FormatInt(id, 10)}}
	for k, v := range extra {
		form[k] = v
	}
	if _, err := s.api.Post(ctx, route.path, form); err != nil {
		return fmt.Errorf("%s %d: %w", action, id, err)
	}
	s.logger.Info("action forwarded", zap.String("action", string(action)), zap.String("path", route.path), zap.Int64("id", id))
	return nil
}
