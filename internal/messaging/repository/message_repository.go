package repository

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"marketplace_service/internal/messaging/domain"
)

// MessageRepository definition get message / conversation info
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// FindByParticipant user 為寄件者或收件者的所有訊息，新到舊
	FindByParticipant(ctx context.Context, userID int64) ([]domain.Message, error)
	// FetchConversationAndMarkRead 單一交易內讀取雙向訊息並標記已讀，
	// 回傳的 is_read 為轉換前的值
	FetchConversationAndMarkRead(ctx context.Context, userID, partnerID int64) ([]domain.Message, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type messageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository create a MessageRepository
func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (sender_id, recipient_id, subject, body, order_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, is_read, created_at`,
		msg.SenderID, msg.RecipientID, msg.Subject, msg.Body, msg.OrderID,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *messageRepository) FindByParticipant(ctx context.Context, userID int64) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, recipient_id, subject, body, order_id, is_read, created_at
		 FROM messages
		 WHERE sender_id = $1 OR recipient_id = $1
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body,
			&m.OrderID, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) FetchConversationAndMarkRead(ctx context.Context, userID, partnerID int64) ([]domain.Message, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, sender_id, recipient_id, subject, body, order_id, is_read, created_at
		 FROM messages
		 WHERE (sender_id = $1 AND recipient_id = $2)
		    OR (sender_id = $2 AND recipient_id = $1)
		 ORDER BY created_at ASC, id ASC`, userID, partnerID)
	if err != nil {
		return nil, err
	}

	msgs := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Body,
			&m.OrderID, &m.IsRead, &m.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		msgs = append(msgs, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 只標記夥伴寄給 user 的未讀訊息，回傳值保留讀取當下的 is_read
	_, err = tx.Exec(ctx,
		`UPDATE messages SET is_read = true
		 WHERE recipient_id = $1 AND sender_id = $2 AND is_read = false`,
		userID, partnerID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND is_read = false",
		userID).Scan(&count)
	return count, err
}
