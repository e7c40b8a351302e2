package models

import (
	"time"
)

// NotificationType distinguishes invites from join requests
type NotificationType string

const (
	NotificationTeamInvite  NotificationType = "TEAM_INVITE"
	NotificationJoinRequest NotificationType = "JOIN_REQUEST"
)

// NotificationStatus is the tri-state response status of a notification.
// PENDING is the only state a transition is possible from; ACCEPTED and
// DECLINED are absorbing.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "PENDING"
	NotificationAccepted NotificationStatus = "ACCEPTED"
	NotificationDeclined NotificationStatus = "DECLINED"
)

// Notification is an addressed record representing a pending team invite or
// join request awaiting the addressee's decision.
type Notification struct {
	ID             int64              `json:"id" db:"id"`
	UserID         int64              `json:"user_id" db:"user_id"` // Addressee; only this user may respond
	Type           NotificationType   `json:"type" db:"type"`
	TeamID         int64              `json:"team_id" db:"team_id"`
	SenderID       int64              `json:"sender_id" db:"sender_id"`
	Status         NotificationStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	SenderUsername string             `json:"sender_username"` // Joined from users, no db tag
	TeamName       string             `json:"team_name"`       // Joined from teams, no db tag
}
