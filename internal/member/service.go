package member

import (
	"context"

	"github.com/Evayanr/hike-organizer/internal/db"
)

const defaultRole = "participant"

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Register stores a group member. Registering the same user twice is a
// no-op, not an error.
func (s *Service) Register(ctx context.Context, userID, name, role string) error {
	if role == "" {
		role = defaultRole
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO members (user_id, name, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, name, role)
	return err
}

func (s *Service) Get(ctx context.Context, userID string) (Member, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, name, role, created_at
		FROM members WHERE user_id=$1
	`, userID)
	var m Member
	if err := row.Scan(&m.UserID, &m.Name, &m.Role, &m.CreatedAt); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (s *Service) LogMessage(ctx context.Context, groupID, userID, text string, isBot bool) (Message, error) {
	msg := Message{GroupID: groupID, UserID: userID, Text: text, IsBot: isBot}
	row := s.db.QueryRow(ctx, `
		INSERT INTO messages (group_id, user_id, message, is_bot)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`, groupID, userID, text, isBot)
	if err := row.Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Recent lists a group's latest messages, newest first.
func (s *Service) Recent(ctx context.Context, groupID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, group_id, user_id, message, is_bot, created_at
		FROM messages WHERE group_id=$1
		ORDER BY created_at DESC LIMIT $2
	`, groupID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.GroupID, &msg.UserID, &msg.Text, &msg.IsBot, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
