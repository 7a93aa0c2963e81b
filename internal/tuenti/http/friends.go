package http

import (
	"net/http"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

type FriendsHandler struct {
	FriendshipService *service.FriendshipService
}

// HandleSendRequest godoc
//
//	@Summary		Send Friend Request
//	@Description	Ask another user to be friends. The addressee is notified.
//	@Tags			Friends
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		tuentisdk.FriendRequestCreate	true	"Addressee"
//	@Success		201		{object}	tuentisdk.Friendship
//	@Failure		400		{object}	tuentisdk.ErrorResponse	"self request"
//	@Failure		404		{object}	tuentisdk.ErrorResponse	"unknown user"
//	@Failure		409		{object}	tuentisdk.ErrorResponse	"already friends or pending"
//	@Router			/v1/friends/requests [post].
func (h *FriendsHandler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.FriendRequestCreate
	if !decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "user_id is required")
		return
	}

	f, err := h.FriendshipService.SendRequest(r.Context(), httpx.AccountID(r.Context()), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to send friend request")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toFriendship(f))
}

// HandleListRequests godoc
//
//	@Summary		Pending Friend Requests
//	@Description	Requests waiting for the caller's answer
//	@Tags			Friends
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tuentisdk.PendingRequestsResponse
//	@Router			/v1/friends/requests [get].
func (h *FriendsHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.FriendshipService.ListPendingRequests(r.Context(), httpx.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "failed to list friend requests")
		return
	}

	out := tuentisdk.PendingRequestsResponse{Requests: make([]tuentisdk.PendingRequest, len(reqs))}
	for i, p := range reqs {
		out.Requests[i] = tuentisdk.PendingRequest{
			Friendship: toFriendship(p.Friendship),
			Requester:  toProfile(p.Requester),
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleListFriends godoc
//
//	@Summary		Friends
//	@Description	Accepted friends of the caller
//	@Tags			Friends
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tuentisdk.FriendsResponse
//	@Router			/v1/friends [get].
func (h *FriendsHandler) HandleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.FriendshipService.ListFriends(r.Context(), httpx.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "failed to list friends")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tuentisdk.FriendsResponse{Friends: toProfiles(friends)})
}

// HandleAccept godoc
//
//	@Summary		Accept Friend Request
//	@Tags			Friends
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Friendship ID"
//	@Success		204
//	@Failure		403	{object}	tuentisdk.ErrorResponse	"caller sent the request"
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Failure		409	{object}	tuentisdk.ErrorResponse	"already answered"
//	@Router			/v1/friends/requests/{id}/accept [post].
func (h *FriendsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	if err := h.FriendshipService.Accept(r.Context(), httpx.AccountID(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to accept friend request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReject godoc
//
//	@Summary		Reject Friend Request
//	@Tags			Friends
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Friendship ID"
//	@Success		204
//	@Failure		403	{object}	tuentisdk.ErrorResponse	"caller sent the request"
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Failure		409	{object}	tuentisdk.ErrorResponse	"already answered"
//	@Router			/v1/friends/requests/{id}/reject [post].
func (h *FriendsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	if err := h.FriendshipService.Reject(r.Context(), httpx.AccountID(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to reject friend request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
