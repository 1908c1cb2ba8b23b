package models

import "fmt"

// TargetType identifies which kind of content a like or comment attaches to.
// The set is closed; values are persisted as-is and must not be renamed.
type TargetType string

const (
	TargetPost    TargetType = "Post"
	TargetStory   TargetType = "Story"
	TargetComment TargetType = "Comment"
	// TargetReel is reserved; no content store is registered for it yet.
	TargetReel TargetType = "Reel"
)

// ParseTargetType validates a type tag coming from a request path or payload.
func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(s); t {
	case TargetPost, TargetStory, TargetComment, TargetReel:
		return t, nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// NotificationType enumerates the social actions that produce notifications.
type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationComment NotificationType = "comment"
	// NotificationLike is part of the persisted enumeration but no flow
	// currently emits it; likes do not notify.
	NotificationLike NotificationType = "like"
)
