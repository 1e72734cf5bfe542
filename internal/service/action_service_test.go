package service

import (
	"context"
	"errors"
	"testing"

	"stash-connect/internal/payload"
	"stash-connect/internal/stash"
)

func TestActionService_ForwardsMessageActions(t *testing.T) {
	api := &stash.MockClient{Responses: map[string]payload.Record{
		"message/like":     {},
		"message/set_flag": {},
	}}
	svc := NewActionService(api, nil)

	if err := svc.Message(context.Background(), ActionLikeMessage, 100); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := svc.Message(context.Background(), ActionFlagMessage, 100); err != nil {
		t.Fatalf("flag: %v", err)
	}
	if len(api.Calls) != 2 || api.Calls[0].Form.Get("message_id") != "100" {
		t.Fatalf("unexpected calls: %+v", api.Calls)
	}
}

func TestActionService_ConversationAndChannel(t *testing.T) {
	api := &stash.MockClient{Responses: map[string]payload.Record{
		"message/archive_conversation": {},
		"channels/quit":                {},
		"channels/rename":              {},
	}}
	svc := NewActionService(api, nil)

	if err := svc.Conversation(context.Background(), ActionArchiveConversation, 42); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := svc.Channel(context.Background(), ActionQuitChannel, 7); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if err := svc.RenameChannel(context.Background(), 7, " nuevo "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	last := api.Calls[len(api.Calls)-1]
	if last.Form.Get("channel_id") != "7" || last.Form.Get("channel_name") != "nuevo" {
		t.Fatalf("unexpected rename form: %v", last.Form)
	}
	if api.Calls[0].Form.Get("conversation_id") != "42" {
		t.Fatalf("unexpected archive form: %v", api.Calls[0].Form)
	}
}

func TestActionService_Validation(t *testing.T) {
	api := &stash.MockClient{}
	svc := NewActionService(api, nil)

	if err := svc.Message(context.Background(), ActionQuitChannel, 1); !errors.Is(err, ErrActionInvalidInput) {
		t.Fatalf("expected ErrActionInvalidInput for wrong target, got %v", err)
	}
	if err := svc.Message(context.Background(), ActionLikeMessage, 0); !errors.Is(err, ErrActionInvalidInput) {
		t.Fatalf("expected ErrActionInvalidInput for zero id, got %v", err)
	}
	if err := svc.RenameChannel(context.Background(), 7, "  "); !errors.Is(err, ErrActionInvalidInput) {
		t.Fatalf("expected ErrActionInvalidInput for empty name, got %v", err)
	}
	if len(api.Calls) != 0 {
		t.Fatalf("expected no remote calls, got %d", len(api.Calls))
	}

	var nilSvc *ActionService
	if err := nilSvc.Message(context.Background(), ActionLikeMessage, 1); !errors.Is(err, ErrActionServiceNotConfigured) {
		t.Fatalf("expected ErrActionServiceNotConfigured, got %v", err)
	}
}

func TestActionService_RemoteErrorIsWrapped(t *testing.T) {
	api := &stash.MockClient{}
	svc := NewActionService(api, nil)

	err := svc.Message(context.Background(), ActionUnlikeMessage, 100)
	if !errors.Is(err, stash.ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound, got %v", err)
	}
}
