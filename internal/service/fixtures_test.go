package service

import (
	"context"
	"sync"

	"stash-connect/internal/domain"
	"stash-connect/internal/payload"
	"stash-connect/internal/stash"
)

type mockDataAccess struct {
	mu       sync.Mutex
	records  map[domain.Kind]map[int64]payload.Record
	fetchErr error
	keys     map[domain.KeyRef]domain.SymmetricKey
	keyErr   error
	fetches  []domain.Kind
	keyCalls []domain.KeyRef
}

func newMockDataAccess() *mockDataAccess {
	return &mockDataAccess{
		records: map[domain.Kind]map[int64]payload.Record{},
		keys:    map[domain.KeyRef]domain.SymmetricKey{},
	}
}

func (m *mockDataAccess) put(kind domain.Kind, id int64, rec payload.Record) {
	if m.records[kind] == nil {
		m.records[kind] = map[int64]payload.Record{}
	}
	m.records[kind][id] = rec
}

func (m *mockDataAccess) FetchFull(_ context.Context, kind domain.Kind, id int64) (payload.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, kind)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	rec, ok := m.records[kind][id]
	if !ok {
		return nil, stash.ErrNotFound
	}
	return rec, nil
}

func (m *mockDataAccess) ConversationKey(_ context.Context, ref domain.KeyRef) (domain.SymmetricKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyCalls = append(m.keyCalls, ref)
	if m.keyErr != nil {
		return nil, m.keyErr
	}
	key, ok := m.keys[ref]
	if !ok {
		return nil, stash.ErrPermission
	}
	return key, nil
}

func (m *mockDataAccess) fetchCount(kind domain.Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.fetches {
		if k == kind {
			n++
		}
	}
	return n
}

type staticLocalKey bool

func (k staticLocalKey) Configured() bool { return bool(k) }

func userRecord(id int64) payload.Record {
	return payload.Record{
		"id":          id,
		"first_name":  "Ada",
		"last_name":   "Lovelace",
		"email":       "ada@example.com",
		"status":      "online",
		"image":       "",
		"language":    "de",
		"last_login":  "1700000000",
		"online":      "1",
		"permissions": []any{},
		"public_key":  "-----BEGIN PUBLIC KEY-----",
		"roles":       []any{},
	}
}

func fileRecord(id, ownerID int64) payload.Record {
	return payload.Record{
		"id":               id,
		"name":             "report.pdf",
		"virtual_folder":   0,
		"folder_type":      "conversation",
		"type_id":          42,
		"size":             "1024",
		"size_byte":        "1024",
		"size_string":      "1 KB",
		"dimensions":       payload.Record{"width": nil, "height": nil},
		"ext":              "pdf",
		"mime":             "application/pdf",
		"base_64":          nil,
		"uploaded":         "1700000000",
		"modified":         "1700000000",
		"permission":       "owner",
		"owner_id":         ownerID,
		"owner":            payload.Record{"id": ownerID},
		"last_download":    nil,
		"times_downloaded": 0,
		"status":           "ok",
		"deleted":          false,
		"encrypted":        true,
		"e2e_iv":           "00112233445566778899aabbccddeeff",
		"md5":              "d41d8cd98f00b204e9800998ecf8427e",
	}
}

func companyRecord(id, managerID int64) payload.Record {
	return payload.Record{
		"id":                id,
		"name":              "ACME",
		"manager":           payload.Record{"id": managerID},
		"created":           "1600000000",
		"time_joined":       "1600000001",
		"unread_messages":   0,
		"logo_url":          "",
		"domain":            "acme.example",
		"max_users":         100,
		"users":             payload.Record{"active": 5, "created": 7},
		"membership_expiry": nil,
		"online_payment":    false,
		"protected":         "0",
		"provider":          "",
		"quota":             "1073741824",
		"freemium":          false,
		"deactivated":       false,
		"deleted":           false,
		"features":          []any{},
		"permission":        []any{},
		"roles":             []any{},
		"settings":          payload.Record{},
	}
}

func channelRecord(id, companyID int64) payload.Record {
	return payload.Record{
		"id":                         id,
		"company":                    companyID,
		"crypto_properties":          "",
		"encrypted":                  true,
		"federated":                  false,
		"unique_identifier":          "ch-7",
		"description":                "",
		"name":                       "general",
		"image":                      "",
		"group_id":                   nil,
		"can_leave":                  true,
		"inviteable":                 "manager",
		"last_action":                "1700000000",
		"ldap_name":                  "",
		"mx_room_alias":              "",
		"mx_room_id":                 "",
		"mx_room_server_status":      "",
		"num_members_without_keys":   0,
		"password":                   "",
		"pending_count":              0,
		"request_count":              0,
		"show_activities":            true,
		"show_membership_activities": false,
		"type":                       "public",
		"user_count":                 12,
		"visible":                    true,
		"writable":                   "all",
		"membership": payload.Record{
			"is_member":             true,
			"joined":                "1690000000",
			"may_manage":            false,
			"muted":                 nil,
			"write":                 true,
			"confirmation":          nil,
			"invited_at":            nil,
			"invited_by":            nil,
			"invited_by_mx_user_id": nil,
		},
	}
}
