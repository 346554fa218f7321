package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/pkg/errors"
)

// memoryChatRepository keeps chats and messages in process-local maps behind
// a single mutex, so concurrent get-or-create calls for the same pair cannot
// duplicate a record and unread counter updates cannot be lost.
type memoryChatRepository struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message // keyed by chat id, append order
}

func NewMemoryChatRepository() repository.ChatRepository {
	return &memoryChatRepository{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *memoryChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chats[chat.ID]; exists {
		// idempotent get-or-create upstream; treat a duplicate create as a no-op
		return nil
	}

	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	stored := *chat
	r.chats[chat.ID] = &stored
	return nil
}

func (r *memoryChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, exists := r.chats[id]
	if !exists {
		return nil, errors.NotFound("Chat", nil)
	}

	copied := *chat
	return &copied, nil
}

func (r *memoryChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chats[chat.ID]; !exists {
		return errors.NotFound("Chat", nil)
	}

	chat.UpdatedAt = time.Now()
	stored := *chat
	r.chats[chat.ID] = &stored
	return nil
}

func (r *memoryChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var chats []*entity.Chat
	for _, chat := range r.chats {
		for _, p := range chat.Participants {
			if p == userID {
				copied := *chat
				chats = append(chats, &copied)
				break
			}
		}
	}

	// most recent activity first; chats that never saw a message carry a
	// zero timestamp and sink to the bottom
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})

	total := int64(len(chats))

	if offset > len(chats) {
		offset = len(chats)
	}
	chats = chats[offset:]
	if limit > 0 && limit < len(chats) {
		chats = chats[:limit]
	}

	return chats, total, nil
}

func (r *memoryChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	stored := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &stored)
	return nil
}

func (r *memoryChatRepository) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.messages[chatID]
	total := int64(len(all))

	// newest first, matching the production store's ordering
	ordered := make([]*entity.Message, len(all))
	for i, m := range all {
		copied := *m
		ordered[len(all)-1-i] = &copied
	}

	if offset > len(ordered) {
		offset = len(ordered)
	}
	ordered = ordered[offset:]
	if limit > 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}

	return ordered, total, nil
}

func (r *memoryChatRepository) MarkMessagesRead(ctx context.Context, chatID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flipped := 0
	for _, message := range r.messages[chatID] {
		if message.ReceiverID == userID && !message.Read {
			message.Read = true
			flipped++
		}
	}

	return flipped, nil
}
