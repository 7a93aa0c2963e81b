package http

import (
	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

func toProfile(p domain.Profile) tuentisdk.Profile {
	return tuentisdk.Profile{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		DisplayName:   p.DisplayName(),
		Bio:           p.Bio,
		City:          p.City,
		AvatarMediaID: p.AvatarMediaID,
	}
}

func toProfiles(ps []domain.Profile) []tuentisdk.Profile {
	out := make([]tuentisdk.Profile, len(ps))
	for i, p := range ps {
		out[i] = toProfile(p)
	}
	return out
}

func toTokens(t domain.TokenPair) tuentisdk.TokenResponse {
	return tuentisdk.TokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresIn:    int(t.ExpiresIn.Seconds()),
	}
}

func toMedia(m domain.Media) tuentisdk.Media {
	return tuentisdk.Media{
		ID:          m.ID,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		Width:       m.Width,
		Height:      m.Height,
		URL:         "/v1/media/" + m.ID,
	}
}

func toFeedItem(it domain.FeedItem) tuentisdk.FeedItem {
	out := tuentisdk.FeedItem{
		ID:        it.Post.ID,
		Author:    toProfile(it.Author),
		Content:   it.Post.Content,
		CreatedAt: it.Post.CreatedAt,
		TimeAgo:   it.TimeAgo,
	}
	if it.Media != nil {
		m := toMedia(*it.Media)
		out.Media = &m
	}
	return out
}

// toFeed sets NextBefore only when the page is full.
func toFeed(items []domain.FeedItem, limit int) tuentisdk.FeedResponse {
	out := tuentisdk.FeedResponse{Items: make([]tuentisdk.FeedItem, len(items))}
	for i, it := range items {
		out.Items[i] = toFeedItem(it)
	}
	if limit == 0 {
		limit = service.DefaultFeedLimit
	}
	if len(items) > 0 && len(items) == limit {
		out.NextBefore = items[len(items)-1].Post.ID
	}
	return out
}

func toInvitation(inv domain.Invitation, expired bool) tuentisdk.Invitation {
	return tuentisdk.Invitation{
		ID:        inv.ID,
		Used:      inv.Used,
		UsedBy:    inv.UsedBy,
		Expired:   expired,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

func toFriendship(f domain.Friendship) tuentisdk.Friendship {
	return tuentisdk.Friendship{
		ID:          f.ID,
		RequesterID: f.RequesterID,
		AddresseeID: f.AddresseeID,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
	}
}

func toNotification(v service.NotificationView) tuentisdk.Notification {
	n := v.Notification
	actions := make([]string, len(v.Presentation.Actions))
	for i, a := range v.Presentation.Actions {
		actions[i] = string(a)
	}
	return tuentisdk.Notification{
		ID:          n.ID,
		Type:        string(n.Type),
		Actor:       toProfile(v.Actor),
		ReferenceID: n.ReferenceID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
		TimeAgo:     v.TimeAgo,
		Label:       v.Presentation.Label,
		Icon:        v.Presentation.Icon,
		Target:      v.Presentation.Target,
		Actions:     actions,
	}
}
