package services

import "time"

// User is the authenticated operator account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Member is a person under care.
type Member struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is one entry in a member's conversation.
type Message struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"memberId"`
	TemplateID string     `json:"templateId,omitempty"`
	Subject    string     `json:"subject,omitempty"`
	Body       string     `json:"body"`
	Direction  string     `json:"direction"` // "outbound" or "inbound"
	SentAt     time.Time  `json:"sentAt"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
}

// Template is a reusable message body.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings are the per-account preferences.
type Settings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	EmailDigest          bool   `json:"emailDigest"`
	Timezone             string `json:"timezone"`
	Locale               string `json:"locale"`
}

// AnalyticsSummary aggregates care activity over a date range.
type AnalyticsSummary struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	TotalMembers  int       `json:"totalMembers"`
	ActiveMembers int       `json:"activeMembers"`
	MessagesSent  int       `json:"messagesSent"`
	MessagesRead  int       `json:"messagesRead"`
	ResponseRate  float64   `json:"responseRate"`
}

// Event is a client-side analytics event.
type Event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
