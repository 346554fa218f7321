package entity

import "time"

// Chat is the single conversation between an unordered pair of users. Its ID
// is the sorted, hyphen-joined pair of participant ids, so chat(a,b) and
// chat(b,a) resolve to the same record. The ID is write-only: membership and
// receiver resolution always go through Participants, never by parsing the ID.
type Chat struct {
	ID            string         `json:"id" firestore:"id"`
	Participants  []string       `json:"participants" firestore:"participants"`
	ListingID     string         `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"` // per-recipient unread counters
}
