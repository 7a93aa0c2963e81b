package http

import (
	"net/http"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

type ProfilesHandler struct {
	ProfileService *service.ProfileService
	FeedService    *service.FeedService
}

// profileID resolves "me" to the caller.
func profileID(r *http.Request) string {
	id := r.PathValue("id")
	if id == "me" {
		return httpx.AccountID(r.Context())
	}
	return id
}

// HandleGet godoc
//
//	@Summary		Profile Page
//	@Description	A profile with its friend count and its relation to the caller. Use "me" for the caller.
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Profile ID or me"
//	@Success		200	{object}	tuentisdk.ProfilePage
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/profiles/{id} [get].
func (h *ProfilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page, err := h.ProfileService.Page(r.Context(), httpx.AccountID(r.Context()), profileID(r))
	if err != nil {
		writeServiceError(w, r, err, "failed to load profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tuentisdk.ProfilePage{
		Profile:      toProfile(page.Profile),
		FriendCount:  page.FriendCount,
		Relation:     string(page.Relation),
		FriendshipID: page.FriendshipID,
	})
}

// HandleUpdate godoc
//
//	@Summary		Update Profile
//	@Description	Change the caller's profile. Omitted fields are left unchanged.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		tuentisdk.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	tuentisdk.Profile
//	@Failure		400		{object}	tuentisdk.ErrorResponse
//	@Failure		403		{object}	tuentisdk.ErrorResponse	"avatar not owned"
//	@Router			/v1/profiles/me [patch].
func (h *ProfilesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.ProfileService.UpdateProfile(r.Context(), httpx.AccountID(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to update profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(p))
}

// HandlePosts godoc
//
//	@Summary		Profile Posts
//	@Description	Posts written by one profile, newest first
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"Profile ID or me"
//	@Param			filter	query		string	false	"all or photos"	Enums(all, photos)
//	@Param			limit	query		int		false	"Page size (1-100)"
//	@Param			before	query		string	false	"Cursor from next_before"
//	@Success		200		{object}	tuentisdk.FeedResponse
//	@Failure		400		{object}	tuentisdk.ErrorResponse
//	@Failure		404		{object}	tuentisdk.ErrorResponse
//	@Router			/v1/profiles/{id}/posts [get].
func (h *ProfilesHandler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	q, ok := feedQuery(w, r)
	if !ok {
		return
	}

	items, err := h.FeedService.ListProfilePosts(r.Context(), httpx.AccountID(r.Context()), profileID(r), q)
	if err != nil {
		writeServiceError(w, r, err, "failed to load posts")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toFeed(items, q.Limit))
}

