package entity

import "time"

// Message is immutable after creation except for the Read flag, which only
// ever transitions false -> true when the receiver marks the chat read.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	Content    string    `json:"content" firestore:"content"`
	Read       bool      `json:"read" firestore:"read"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
