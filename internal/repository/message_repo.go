package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stash-connect/internal/domain"
)

// MessageRepository archiva mensajes ya descifrados.
type MessageRepository interface {
	Save(ctx context.Context, message domain.Message) error
	ListByTarget(ctx context.Context, target domain.Addressing) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Save(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, target_type, target_id, text, encrypted, location, author, files, sent_at, flagged, likes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			location = EXCLUDED.location,
			author = EXCLUDED.author,
			files = EXCLUDED.files,
			flagged = EXCLUDED.flagged,
			likes = EXCLUDED.likes
	`

	var location []byte
	if message.Location != nil {
		raw, err := json.Marshal(message.Location)
		if err != nil {
			return fmt.Errorf("marshal location: %w", err)
		}
		location = raw
	}
	author, err := json.Marshal(message.Author)
	if err != nil {
		return fmt.Errorf("marshal author: %w", err)
	}
	files, err := json.Marshal(message.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		message.ID,
		string(message.Addressing.Type),
		message.Addressing.ID,
		message.Plaintext,
		message.Encrypted,
		location,
		author,
		files,
		message.Time,
		message.Flagged,
		message.Likes,
	)
	return err
}

func (r *PgMessageRepository) ListByTarget(ctx context.Context, target domain.Addressing) ([]domain.Message, error) {
	const query = `
		SELECT id, target_type, target_id, text, encrypted, location, author, files, sent_at, flagged, likes
		FROM messages
		WHERE target_type = $1 AND target_id = $2
		ORDER BY sent_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, string(target.Type), target.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var (
			msg        domain.Message
			targetType string
			location   []byte
			author     []byte
			files      []byte
		)
		err = rows.Scan(
			&msg.ID,
			&targetType,
			&msg.Addressing.ID,
			&msg.Plaintext,
			&msg.Encrypted,
			&location,
			&author,
			&files,
			&msg.Time,
			&msg.Flagged,
			&msg.Likes,
		)
		if err != nil {
			return nil, err
		}
		msg.Addressing.Type = domain.TargetType(targetType)
		if len(location) > 0 {
			msg.Location = &domain.Location{}
			if err := json.Unmarshal(location, msg.Location); err != nil {
				return nil, fmt.Errorf("unmarshal location of message %d: %w", msg.ID, err)
			}
		}
		if err := json.Unmarshal(author, &msg.Author); err != nil {
			return nil, fmt.Errorf("unmarshal author of message %d: %w", msg.ID, err)
		}
		if err := json.Unmarshal(files, &msg.Files); err != nil {
			return nil, fmt.Errorf("unmarshal files of message %d: %w", msg.ID, err)
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
