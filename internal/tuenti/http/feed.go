package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

type FeedHandler struct {
	FeedService *service.FeedService
}

// feedQuery reads filter, limit and before, answering 400 itself on failure.
func feedQuery(w http.ResponseWriter, r *http.Request) (service.FeedQuery, bool) {
	v := r.URL.Query()

	filter, err := domain.ParseFeedFilter(v.Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, err.Error())
		return service.FeedQuery{}, false
	}

	var limit int
	if s := v.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "limit must be a positive integer")
			return service.FeedQuery{}, false
		}
	}

	return service.FeedQuery{Filter: filter, Limit: limit, Before: v.Get("before")}, true
}

// HandleFeed godoc
//
//	@Summary		Dashboard Feed
//	@Description	Posts by the caller and their friends, newest first
//	@Tags			Feed
//	@Produce		json
//	@Security		BearerAuth
//	@Param			filter	query		string	false	"Audience"	Enums(all, mine, friends, photos)
//	@Param			limit	query		int		false	"Page size (1-100)"
//	@Param			before	query		string	false	"Cursor from next_before"
//	@Success		200		{object}	tuentisdk.FeedResponse
//	@Failure		400		{object}	tuentisdk.ErrorResponse
//	@Failure		401		{object}	tuentisdk.ErrorResponse
//	@Router			/v1/feed [get].
func (h *FeedHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	q, ok := feedQuery(w, r)
	if !ok {
		return
	}

	items, err := h.FeedService.LoadFeed(r.Context(), httpx.AccountID(r.Context()), q)
	if err != nil {
		writeServiceError(w, r, err, "failed to load feed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toFeed(items, q.Limit))
}

// HandleCreatePost godoc
//
//	@Summary		Create Post
//	@Description	Publish a status update, optionally attaching one of the caller's uploads
//	@Tags			Feed
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		tuentisdk.CreatePostRequest	true	"Post"
//	@Success		201		{object}	tuentisdk.FeedItem
//	@Failure		400		{object}	tuentisdk.ErrorResponse
//	@Failure		403		{object}	tuentisdk.ErrorResponse	"media not owned"
//	@Router			/v1/posts [post].
func (h *FeedHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.CreatePostRequest
	if !decode(w, r, &req) {
		return
	}

	item, err := h.FeedService.CreatePost(r.Context(), httpx.AccountID(r.Context()), req.Content, req.MediaID)
	if err != nil {
		writeServiceError(w, r, err, "failed to create post")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toFeedItem(item))
}
