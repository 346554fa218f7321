package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/internal/infrastructure/ratelimit"
	"sunumarche/pkg/errors"
	"sunumarche/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		rateLimiter: rateLimiter,
	}
}

// ChatIDFor derives the canonical conversation id for an unordered pair:
// the two ids sorted lexicographically and joined with a hyphen, so both
// call orders land on the same record. The id is never parsed back;
// Participants is the authority for membership.
func ChatIDFor(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "-")
}

type CreateChatInput struct {
	RecipientID    string
	ListingID      string
	InitialMessage string
}

type SendMessageInput struct {
	ChatID  string
	Content string
}

type ChatResponse struct {
	*entity.Chat
	OtherUser *entity.User `json:"other_user,omitempty"`
	Listing   *entity.Listing `json:"listing,omitempty"`
	// Unread is the viewer's own counter; it shadows the per-recipient map
	// in the JSON output.
	Unread int `json:"unread_count"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.User `json:"sender,omitempty"`
}

// GetOrCreateChat returns the single conversation between the caller and the
// recipient, creating it on first contact. Repeated calls with the same pair
// (in either order) return the same chat and never reset its state.
func (uc *ChatUseCase) GetOrCreateChat(ctx context.Context, userID string, input CreateChatInput) (*ChatResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "create_chat")
	if !allowed {
		logger.Warn("GetOrCreateChat rate limited: user %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another chat")
	}

	if userID == input.RecipientID {
		return nil, errors.BadRequest("You cannot start a chat with yourself", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		logger.Warn("GetOrCreateChat: recipient %s not found: %v", input.RecipientID, err)
		return nil, errors.NotFound("Recipient", err)
	}

	var listing *entity.Listing
	if input.ListingID != "" {
		listing, err = uc.listingRepo.GetByID(ctx, input.ListingID)
		if err != nil {
			return nil, errors.NotFound("Listing", err)
		}
	}

	chatID := ChatIDFor(userID, input.RecipientID)

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.Error("GetOrCreateChat: failed to look up chat %s: %v", chatID, err)
			return nil, err
		}

		participants := []string{userID, input.RecipientID}
		sort.Strings(participants)

		chat = &entity.Chat{
			ID:           chatID,
			Participants: participants,
			ListingID:    input.ListingID,
			UnreadCount:  make(map[string]int),
		}

		if err := uc.chatRepo.Create(ctx, chat); err != nil {
			logger.Error("GetOrCreateChat: failed to create chat %s: %v", chatID, err)
			return nil, err
		}
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, userID, SendMessageInput{
			ChatID:  chat.ID,
			Content: input.InitialMessage,
		}); err != nil {
			return nil, err
		}
		// re-read so the response reflects the message bookkeeping
		if refreshed, err := uc.chatRepo.GetByID(ctx, chat.ID); err == nil {
			chat = refreshed
		}
	}

	return &ChatResponse{
		Chat:      chat,
		OtherUser: recipient,
		Listing:   listing,
		Unread:    chat.UnreadCount[userID],
	}, nil
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*MessageResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "send_message")
	if !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message")
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.Validation("content must not be empty")
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		logger.Warn("SendMessage: chat %s not found: %v", input.ChatID, err)
		return nil, err
	}

	if !containsString(chat.Participants, userID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	receiverID := otherParticipant(chat.Participants, userID)

	message := &entity.Message{
		ChatID:     input.ChatID,
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    input.Content,
		Read:       false,
		CreatedAt:  time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		logger.Error("SendMessage: failed to create message for chat %s: %v", input.ChatID, err)
		return nil, err
	}

	chat.LastMessage = input.Content
	chat.LastMessageAt = message.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	// self-addressed messages never inflate the counter
	if receiverID != userID {
		chat.UnreadCount[receiverID]++
	}

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Error("SendMessage: failed to update chat %s after message: %v", chat.ID, err)
		return nil, err
	}

	return &MessageResponse{
		Message: message,
		Sender:  sender,
	}, nil
}

type ChatMessagesResult struct {
	Messages []*entity.Message `json:"messages"`
	HasMore  bool              `json:"has_more"`
}

func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string, limit, offset int, markAsRead bool) (*ChatMessagesResult, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !containsString(chat.Participants, userID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	messages, total, err := uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, err
	}

	if markAsRead {
		if err := uc.MarkChatAsRead(ctx, userID, chatID); err != nil {
			logger.Warn("GetChatMessages: mark-as-read failed for chat %s: %v", chatID, err)
		}
	}

	return &ChatMessagesResult{
		Messages: messages,
		HasMore:  int64(offset+len(messages)) < total,
	}, nil
}

// MarkChatAsRead flips the read flag on every unread message addressed to
// the viewer and zeroes the viewer's unread counter. It is the only path
// that mutates the read flag, and only ever false -> true.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !containsString(chat.Participants, userID) {
		return errors.Forbidden("User is not a participant in this chat", nil)
	}

	flipped, err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID)
	if err != nil {
		logger.Error("MarkChatAsRead: failed to mark messages read in chat %s: %v", chatID, err)
		return err
	}
	logger.Debug("MarkChatAsRead: chat %s, viewer %s, %d messages flipped", chatID, userID, flipped)

	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	chat.UnreadCount[userID] = 0

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Error("MarkChatAsRead: failed to reset unread counter for chat %s: %v", chatID, err)
		return err
	}

	return nil
}

func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string, limit, offset int) ([]*ChatResponse, int64, error) {
	chats, total, err := uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp := &ChatResponse{
			Chat:   chat,
			Unread: chat.UnreadCount[userID],
		}

		otherID := otherParticipant(chat.Participants, userID)
		if otherID != "" && otherID != userID {
			if other, err := uc.userRepo.GetByID(ctx, otherID); err == nil {
				resp.OtherUser = other
			} else {
				logger.Warn("GetUserChats: participant %s of chat %s not found: %v", otherID, chat.ID, err)
			}
		}

		responses = append(responses, resp)
	}

	return responses, total, nil
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func otherParticipant(participants []string, userID string) string {
	for _, p := range participants {
		if p != userID {
			return p
		}
	}
	return userID
}
