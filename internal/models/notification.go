package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelKafka NotificationChannel = "kafka"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// Notification is the audit record of one outbound notification attempt.
type Notification struct {
	ID           uuid.UUID           `json:"id"`
	Channel      NotificationChannel `json:"channel"`
	Recipient    string              `json:"recipient"`
	Subject      string              `json:"subject,omitempty"`
	Content      string              `json:"content"`
	Status       NotificationStatus  `json:"status"`
	ErrorMessage string              `json:"error,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
