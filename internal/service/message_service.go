package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
	"stash-connect/internal/repository"
)

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

// MessageLister lista registros crudos del servicio remoto.
type MessageLister interface {
	ListMessages(ctx context.Context, target domain.Addressing, limit, offset int) ([]any, error)
	ListConversations(ctx context.Context, limit, offset int) ([]any, error)
}

// MessageService sincroniza páginas de mensajes: las descifra y, si hay repositorio, las archiva.
type MessageService struct {
	lister        MessageLister
	assembler     *MessageAssembler
	conversations *ConversationBuilder
	repo          repository.MessageRepository
	logger        *zap.Logger
}

var (
	ErrMessageServiceNotConfigured = errors.New("message service not configured")
	ErrArchiveNotConfigured        = errors.New("message archive not configured")
	ErrMessageInvalidInput         = errors.New("message invalid input")
)

// NewMessageService acepta repo nil: en ese caso no se archiva nada.
func NewMessageService(lister MessageLister, assembler *MessageAssembler, conversations *ConversationBuilder, repo repository.MessageRepository, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		lister:        lister,
		assembler:     assembler,
		conversations: conversations,
		repo:          repo,
		logger:        logger,
	}
}

func normalizePage(limit, offset int) (int, int, error) {
	if offset < 0 {
		return 0, 0, ErrMessageInvalidInput
	}
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	return limit, offset, nil
}

// Sync trae una página de mensajes del destino. El primer mensaje que falla aborta la página.
func (s *MessageService) Sync(ctx context.Context, target domain.Addressing, limit, offset int) ([]domain.Message, error) {
	if s == nil || s.lister == nil || s.assembler == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	if target.ID <= 0 || (!target.IsConversation() && !target.IsChannel()) {
		return nil, ErrMessageInvalidInput
	}
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	raw, err := s.lister.ListMessages(ctx, target, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages of %s: %w", target, err)
	}

	messages := make([]domain.Message, 0, len(raw))
	for i, item := range raw {
		rec, ok := payload.AsRecord(item)
		if !ok {
			return nil, fmt.Errorf("%w: message %d of %s is not an object", ErrMalformedPayload, i, target)
		}
		msg, err := s.assembler.Assemble(ctx, rec)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if s.repo != nil {
		for _, msg := range messages {
			if err := s.repo.Save(ctx, msg); err != nil {
				return nil, fmt.Errorf("archive message %d: %w", msg.ID, err)
			}
		}
		s.logger.Debug("messages archived", zap.Stringer("target", target), zap.Int("count", len(messages)))
	}
	return messages, nil
}

// Archived devuelve los mensajes ya archivados del destino.
func (s *MessageService) Archived(ctx context.Context, target domain.Addressing) ([]domain.Message, error) {
	if s == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	if s.repo == nil {
		return nil, ErrArchiveNotConfigured
	}
	if target.ID <= 0 {
		return []domain.Message{}, nil
	}
	return s.repo.ListByTarget(ctx, target)
}

// Conversations lista una página de conversaciones con sus claves ya resueltas.
func (s *MessageService) Conversations(ctx context.Context, limit, offset int) ([]domain.Conversation, error) {
	if s == nil || s.lister == nil || s.conversations == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	raw, err := s.lister.ListConversations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	out := make([]domain.Conversation, 0, len(raw))
	for i, item := range raw {
		rec, ok := payload.AsRecord(item)
		if !ok {
			return nil, fmt.Errorf("%w: conversation %d is not an object", ErrMalformedPayload, i)
		}
		conv, err := s.conversations.Build(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}
