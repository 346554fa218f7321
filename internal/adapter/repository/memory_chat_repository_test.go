package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunumarche/internal/domain/entity"
)

func TestMemoryChatRepositoryDuplicateCreateIsNoOp(t *testing.T) {
	repo := NewMemoryChatRepository()
	ctx := context.Background()

	chat := &entity.Chat{
		ID:           "alice-bob",
		Participants: []string{"alice", "bob"},
		UnreadCount:  map[string]int{},
	}
	require.NoError(t, repo.Create(ctx, chat))

	require.NoError(t, repo.CreateMessage(ctx, &entity.Message{
		ChatID: "alice-bob", SenderID: "alice", ReceiverID: "bob", Content: "Bonjour",
	}))

	// a second create for the same id must not wipe the message history
	require.NoError(t, repo.Create(ctx, &entity.Chat{
		ID:           "alice-bob",
		Participants: []string{"alice", "bob"},
		UnreadCount:  map[string]int{},
	}))

	_, total, err := repo.GetMessagesByChat(ctx, "alice-bob", 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestMemoryChatRepositoryListOrdering(t *testing.T) {
	repo := NewMemoryChatRepository()
	ctx := context.Background()

	now := time.Now()

	older := &entity.Chat{ID: "alice-bob", Participants: []string{"alice", "bob"}}
	require.NoError(t, repo.Create(ctx, older))
	older.LastMessageAt = now.Add(-time.Hour)
	require.NoError(t, repo.Update(ctx, older))

	newer := &entity.Chat{ID: "alice-carol", Participants: []string{"alice", "carol"}}
	require.NoError(t, repo.Create(ctx, newer))
	newer.LastMessageAt = now
	require.NoError(t, repo.Update(ctx, newer))

	// never messaged, zero LastMessageAt
	require.NoError(t, repo.Create(ctx, &entity.Chat{ID: "alice-dave", Participants: []string{"alice", "dave"}}))

	chats, total, err := repo.ListByUserID(ctx, "alice", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, chats, 3)

	assert.Equal(t, "alice-carol", chats[0].ID)
	assert.Equal(t, "alice-bob", chats[1].ID)
	assert.Equal(t, "alice-dave", chats[2].ID)

	// bob only sees his own conversation
	chats, total, err = repo.ListByUserID(ctx, "bob", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "alice-bob", chats[0].ID)
}

func TestMemoryChatRepositoryMarkMessagesRead(t *testing.T) {
	repo := NewMemoryChatRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Chat{
		ID:           "alice-bob",
		Participants: []string{"alice", "bob"},
	}))

	for _, content := range []string{"un", "deux"} {
		require.NoError(t, repo.CreateMessage(ctx, &entity.Message{
			ChatID: "alice-bob", SenderID: "alice", ReceiverID: "bob", Content: content,
		}))
	}
	require.NoError(t, repo.CreateMessage(ctx, &entity.Message{
		ChatID: "alice-bob", SenderID: "bob", ReceiverID: "alice", Content: "trois",
	}))

	flipped, err := repo.MarkMessagesRead(ctx, "alice-bob", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, flipped)

	// repeated call finds nothing left to flip
	flipped, err = repo.MarkMessagesRead(ctx, "alice-bob", "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)

	messages, _, err := repo.GetMessagesByChat(ctx, "alice-bob", 50, 0)
	require.NoError(t, err)
	for _, m := range messages {
		if m.ReceiverID == "bob" {
			assert.True(t, m.Read)
		} else {
			assert.False(t, m.Read)
		}
	}
}

func TestMemoryChatRepositoryMessagesNewestFirst(t *testing.T) {
	repo := NewMemoryChatRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Chat{
		ID:           "alice-bob",
		Participants: []string{"alice", "bob"},
	}))

	base := time.Now()
	for i, content := range []string{"un", "deux", "trois"} {
		require.NoError(t, repo.CreateMessage(ctx, &entity.Message{
			ChatID:     "alice-bob",
			SenderID:   "alice",
			ReceiverID: "bob",
			Content:    content,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	messages, total, err := repo.GetMessagesByChat(ctx, "alice-bob", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, messages, 2)
	assert.Equal(t, "trois", messages[0].Content)
	assert.Equal(t, "deux", messages[1].Content)
}
