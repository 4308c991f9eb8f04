package domain

import "time"

// Message 買賣家之間的一則訊息。除了 is_read 的單向轉換外不可變更。
type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	OrderID     *int64    `json:"order_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartnerOf 回傳訊息中與 userID 對話的另一方
func (m *Message) PartnerOf(userID int64) int64 {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}

// UnreadFor 只有 user 為收件者且未讀時才計入未讀
func (m *Message) UnreadFor(userID int64) bool {
	return m.RecipientID == userID && !m.IsRead
}

// Partner 對話另一方的摘要
type Partner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ConversationSummary 每個對話夥伴一筆，請求期間即時推導，不落地
type ConversationSummary struct {
	Partner     Partner `json:"partner"`
	LastMessage Message `json:"last_message"`
	UnreadCount int     `json:"unread_count"`
}

// Inbox 收件匣回應
type Inbox struct {
	Conversations []ConversationSummary `json:"conversations"`
	TotalUnread   int                   `json:"total_unread"`
}
