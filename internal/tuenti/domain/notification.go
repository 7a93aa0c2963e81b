package domain

import (
	"errors"
	"time"
)

// NotificationType is a closed set. Anything else is rejected on parse.
type NotificationType string

const (
	NotifyFriendRequest   NotificationType = "friend_request"
	NotifyMessage         NotificationType = "message"
	NotifyPrivateMessages NotificationType = "private_messages"
	NotifyComment         NotificationType = "comment"
	NotifyTag             NotificationType = "tag"
	NotifyEventInvitation NotificationType = "event_invitation"
)

var ErrUnknownNotificationType = errors.New("unknown notification type")

// NotificationTypes lists every known type in display order.
var NotificationTypes = []NotificationType{
	NotifyFriendRequest,
	NotifyMessage,
	NotifyPrivateMessages,
	NotifyComment,
	NotifyTag,
	NotifyEventInvitation,
}

func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if _, ok := presentations[t]; !ok {
		return "", ErrUnknownNotificationType
	}
	return t, nil
}

// Notification belongs to exactly one recipient (UserID).
type Notification struct {
	ID          string
	UserID      string
	ActorID     string
	Type        NotificationType
	ReferenceID string // friendship, post, photo or event id depending on Type
	Read        bool
	CreatedAt   time.Time
}

// NotificationAction is something the recipient can do inline.
type NotificationAction string

const (
	ActionAccept NotificationAction = "accept"
	ActionReject NotificationAction = "reject"
)

// Presentation is how a notification is rendered and where a click leads.
type Presentation struct {
	Label   string
	Icon    string
	Target  string
	Actions []NotificationAction
}

type presentation struct {
	label   string
	icon    string
	target  func(Notification) string
	actions []NotificationAction
}

var presentations = map[NotificationType]presentation{
	NotifyFriendRequest: {
		label:   "wants to be your friend",
		icon:    "user-plus",
		target:  func(n Notification) string { return "/profile/" + n.ActorID },
		actions: []NotificationAction{ActionAccept, ActionReject},
	},
	NotifyMessage: {
		label:  "left a message on your profile",
		icon:   "message-square",
		target: func(n Notification) string { return "/profile/" + n.UserID },
	},
	NotifyPrivateMessages: {
		label:  "sent you a private message",
		icon:   "mail",
		target: func(n Notification) string { return "/messages/" + n.ActorID },
	},
	NotifyComment: {
		label:  "commented on your post",
		icon:   "message-circle",
		target: func(n Notification) string { return "/posts/" + n.ReferenceID },
	},
	NotifyTag: {
		label:  "tagged you in a photo",
		icon:   "tag",
		target: func(n Notification) string { return "/photos/" + n.ReferenceID },
	},
	NotifyEventInvitation: {
		label:  "invited you to an event",
		icon:   "calendar",
		target: func(n Notification) string { return "/events/" + n.ReferenceID },
	},
}

// Present returns the rendering of n. It fails only for a type outside the
// closed set, which can happen for rows written by a newer release. Read
// notifications carry no actions.
func (n Notification) Present() (Presentation, error) {
	p, ok := presentations[n.Type]
	if !ok {
		return Presentation{}, ErrUnknownNotificationType
	}
	out := Presentation{
		Label:  p.label,
		Icon:   p.icon,
		Target: p.target(n),
	}
	if !n.Read {
		out.Actions = append([]NotificationAction(nil), p.actions...)
	}
	return out, nil
}

// Allows reports whether action can be taken on n.
func (n Notification) Allows(action NotificationAction) bool {
	for _, a := range presentations[n.Type].actions {
		if a == action {
			return true
		}
	}
	return false
}
