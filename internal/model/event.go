package model

import "time"

const (
	EventPostCreated    = "POST_CREATED"
	EventPostUpdated    = "POST_UPDATED"
	EventPostDeleted    = "POST_DELETED"
	EventUserFollowed   = "USER_FOLLOWED"
	EventUserUnfollowed = "USER_UNFOLLOWED"
)

// Event is the closed union over the inbound event kinds.
type Event interface {
	Kind() string
}

// EventEnvelope carries only the discriminator; the payload is decoded a
// second time into the concrete event type.
type EventEnvelope struct {
	MessageType string `json:"messageType"`
}

type PostCreatedEvent struct {
	PostID     string    `json:"postId" validate:"required"`
	AuthorID   string    `json:"authorId" validate:"required"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt" validate:"required"`
}

func (PostCreatedEvent) Kind() string { return EventPostCreated }

type PostUpdatedEvent struct {
	PostID     string    `json:"postId" validate:"required"`
	Content    string    `json:"content"`
	ModifiedAt time.Time `json:"modifiedAt" validate:"required"`
}

func (PostUpdatedEvent) Kind() string { return EventPostUpdated }

type PostDeletedEvent struct {
	PostID   string `json:"postId" validate:"required"`
	AuthorID string `json:"authorId" validate:"required"`
}

func (PostDeletedEvent) Kind() string { return EventPostDeleted }

type UserFollowedEvent struct {
	FollowerID string `json:"followerId" validate:"required"`
	FolloweeID string `json:"followeeId" validate:"required"`
}

func (UserFollowedEvent) Kind() string { return EventUserFollowed }

type UserUnfollowedEvent struct {
	FollowerID string `json:"followerId" validate:"required"`
	FolloweeID string `json:"followeeId" validate:"required"`
}

func (UserUnfollowedEvent) Kind() string { return EventUserUnfollowed }
