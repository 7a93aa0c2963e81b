package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

// HandleList godoc
//
//	@Summary		Notifications
//	@Description	The caller's notifications, newest first, with their presentation
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			unread_only	query		bool	false	"Only unread"
//	@Param			limit		query		int		false	"Page size (1-200)"
//	@Success		200			{object}	tuentisdk.NotificationsResponse
//	@Failure		400			{object}	tuentisdk.ErrorResponse
//	@Router			/v1/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	unreadOnly, _ := strconv.ParseBool(v.Get("unread_only"))

	var limit int
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > service.MaxNotificationLimit {
			writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "limit out of range")
			return
		}
		limit = n
	}

	views, err := h.NotificationService.List(r.Context(), httpx.AccountID(r.Context()), unreadOnly, limit)
	if err != nil {
		writeServiceError(w, r, err, "failed to list notifications")
		return
	}

	out := tuentisdk.NotificationsResponse{Notifications: make([]tuentisdk.Notification, len(views))}
	for i, nv := range views {
		out.Notifications[i] = toNotification(nv)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUnreadCount godoc
//
//	@Summary		Unread Count
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tuentisdk.UnreadCountResponse
//	@Router			/v1/notifications/unread-count [get].
func (h *NotificationsHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.NotificationService.UnreadCount(r.Context(), httpx.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "failed to count notifications")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tuentisdk.UnreadCountResponse{Unread: n})
}

// HandleMarkAllRead godoc
//
//	@Summary		Mark All Read
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tuentisdk.MarkAllReadResponse
//	@Router			/v1/notifications/read-all [post].
func (h *NotificationsHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.NotificationService.MarkAllRead(r.Context(), httpx.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "failed to mark notifications read")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tuentisdk.MarkAllReadResponse{Updated: n})
}

// HandleMarkRead godoc
//
//	@Summary		Mark Read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/notifications/{id}/read [post].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkRead(r.Context(), httpx.AccountID(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to mark notification read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAccept godoc
//
//	@Summary		Accept From Notification
//	@Description	Accept the friend request a notification refers to and mark it read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204
//	@Failure		400	{object}	tuentisdk.ErrorResponse	"notification has no such action"
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Failure		409	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/notifications/{id}/accept [post].
func (h *NotificationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, domain.ActionAccept)
}

// HandleReject godoc
//
//	@Summary		Reject From Notification
//	@Description	Reject the friend request a notification refers to and mark it read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204
//	@Failure		400	{object}	tuentisdk.ErrorResponse	"notification has no such action"
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Failure		409	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/notifications/{id}/reject [post].
func (h *NotificationsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, domain.ActionReject)
}

func (h *NotificationsHandler) act(w http.ResponseWriter, r *http.Request, action domain.NotificationAction) {
	err := h.NotificationService.Act(r.Context(), httpx.AccountID(r.Context()), r.PathValue("id"), action)
	if err != nil {
		writeServiceError(w, r, err, "failed to answer notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
