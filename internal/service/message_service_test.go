package service

import (
	"context"
	"errors"
	"testing"

	"stash-connect/internal/crypto"
	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
)

type mockMessageLister struct {
	messages      []any
	conversations []any
	err           error
	lastTarget    domain.Addressing
	lastLimit     int
	lastOffset    int
}

func (m *mockMessageLister) ListMessages(_ context.Context, target domain.Addressing, limit, offset int) ([]any, error) {
	m.lastTarget, m.lastLimit, m.lastOffset = target, limit, offset
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *mockMessageLister) ListConversations(_ context.Context, limit, offset int) ([]any, error) {
	m.lastLimit, m.lastOffset = limit, offset
	if m.err != nil {
		return nil, m.err
	}
	return m.conversations, nil
}

type mockMessageServiceRepo struct {
	saved    []domain.Message
	saveErr  error
	listData []domain.Message
	listErr  error
	lastList domain.Addressing
}

func (m *mockMessageServiceRepo) Save(_ context.Context, message domain.Message) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, message)
	return nil
}

func (m *mockMessageServiceRepo) ListByTarget(_ context.Context, target domain.Addressing) ([]domain.Message, error) {
	m.lastList = target
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listData, nil
}

func newTestMessageService(lister MessageLister, repo *mockMessageServiceRepo) (*MessageService, *mockDataAccess) {
	da := newMockDataAccess()
	da.put(domain.KindUser, 5, userRecord(5))
	da.keys[domain.ChannelTarget(7).KeyRef()] = testChannelKey
	h := NewHydrator(da, nil)
	resolver := NewKeyResolver(da)
	assembler := NewMessageAssembler(nil, resolver, crypto.AESCBC{}, h, staticLocalKey(false))
	conversations := NewConversationBuilder(resolver, nil, h)
	if repo == nil {
		return NewMessageService(lister, assembler, conversations, nil, nil), da
	}
	return NewMessageService(lister, assembler, conversations, repo, nil), da
}

func TestMessageServiceSync_AssemblesAndArchives(t *testing.T) {
	lister := &mockMessageLister{messages: []any{
		messageRecord(7, 0, "uno", false),
		map[string]any(messageRecord(7, 0, "dos", false)),
	}}
	repo := &mockMessageServiceRepo{}
	svc, _ := newTestMessageService(lister, repo)

	msgs, err := svc.Sync(context.Background(), domain.ChannelTarget(7), 0, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(msgs) != 2 || msgs[0].Plaintext != "uno" || msgs[1].Plaintext != "dos" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if lister.lastLimit != defaultPageSize || lister.lastTarget != domain.ChannelTarget(7) {
		t.Fatalf("expected default page size, got limit=%d target=%s", lister.lastLimit, lister.lastTarget)
	}
	if len(repo.saved) != 2 {
		t.Fatalf("expected 2 archived messages, got %d", len(repo.saved))
	}
}

func TestMessageServiceSync_ClampsLimitAndValidates(t *testing.T) {
	lister := &mockMessageLister{}
	svc, _ := newTestMessageService(lister, nil)

	if _, err := svc.Sync(context.Background(), domain.ChannelTarget(7), 1000, 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if lister.lastLimit != maxPageSize || lister.lastOffset != 5 {
		t.Fatalf("expected clamped limit, got limit=%d offset=%d", lister.lastLimit, lister.lastOffset)
	}

	cases := []struct {
		target domain.Addressing
		offset int
	}{
		{target: domain.ChannelTarget(0)},
		{target: domain.Addressing{Type: "group", ID: 1}},
		{target: domain.ChannelTarget(7), offset: -1},
	}
	for i, c := range cases {
		if _, err := svc.Sync(context.Background(), c.target, 10, c.offset); !errors.Is(err, ErrMessageInvalidInput) {
			t.Fatalf("case %d expected ErrMessageInvalidInput, got %v", i, err)
		}
	}
}

func TestMessageServiceSync_FirstFailureAbortsPage(t *testing.T) {
	broken := messageRecord(7, 0, "x", false)
	delete(broken, "sender")
	lister := &mockMessageLister{messages: []any{messageRecord(7, 0, "ok", false), broken}}
	repo := &mockMessageServiceRepo{}
	svc, _ := newTestMessageService(lister, repo)

	msgs, err := svc.Sync(context.Background(), domain.ChannelTarget(7), 10, 0)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if msgs != nil || len(repo.saved) != 0 {
		t.Fatalf("expected nothing returned or archived, got %d/%d", len(msgs), len(repo.saved))
	}

	lister.messages = []any{"not-an-object"}
	if _, err := svc.Sync(context.Background(), domain.ChannelTarget(7), 10, 0); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for scalar item, got %v", err)
	}
}

func TestMessageServiceSync_ListError(t *testing.T) {
	listErr := errors.New("boom")
	svc, _ := newTestMessageService(&mockMessageLister{err: listErr}, nil)

	if _, err := svc.Sync(context.Background(), domain.ChannelTarget(7), 10, 0); !errors.Is(err, listErr) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
}

func TestMessageServiceArchived(t *testing.T) {
	svc, _ := newTestMessageService(&mockMessageLister{}, nil)
	if _, err := svc.Archived(context.Background(), domain.ChannelTarget(7)); !errors.Is(err, ErrArchiveNotConfigured) {
		t.Fatalf("expected ErrArchiveNotConfigured, got %v", err)
	}

	repo := &mockMessageServiceRepo{listData: []domain.Message{{ID: 1}}}
	svc, _ = newTestMessageService(&mockMessageLister{}, repo)
	msgs, err := svc.Archived(context.Background(), domain.ConversationTarget(42))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(msgs) != 1 || repo.lastList != domain.ConversationTarget(42) {
		t.Fatalf("unexpected archive lookup: %+v target=%s", msgs, repo.lastList)
	}
}

func TestMessageService_NotConfigured(t *testing.T) {
	var svc *MessageService
	if _, err := svc.Sync(context.Background(), domain.ChannelTarget(7), 10, 0); !errors.Is(err, ErrMessageServiceNotConfigured) {
		t.Fatalf("expected ErrMessageServiceNotConfigured, got %v", err)
	}
	if _, err := svc.Archived(context.Background(), domain.ChannelTarget(7)); !errors.Is(err, ErrMessageServiceNotConfigured) {
		t.Fatalf("expected ErrMessageServiceNotConfigured, got %v", err)
	}
}

func TestMessageServiceConversations(t *testing.T) {
	lister := &mockMessageLister{conversations: []any{payload.Record(conversationRecord(42, ""))}}
	svc, da := newTestMessageService(lister, nil)
	da.put(domain.KindUser, 6, userRecord(6))
	da.keys[domain.ConversationTarget(42).KeyRef()] = testOtherKey

	convs, err := svc.Conversations(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(convs) != 1 || convs[0].ID != 42 || len(convs[0].Members) != 2 {
		t.Fatalf("unexpected conversations: %+v", convs)
	}
	if lister.lastLimit != 5 {
		t.Fatalf("expected limit 5, got %d", lister.lastLimit)
	}
}
