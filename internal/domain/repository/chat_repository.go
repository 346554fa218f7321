package repository

import (
	"context"

	"sunumarche/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	// MarkMessagesRead flips Read on every unread message in the chat that is
	// addressed to userID, and returns how many it flipped.
	MarkMessagesRead(ctx context.Context, chatID, userID string) (int, error)
}
