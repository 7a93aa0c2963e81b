package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

// multipartOverhead leaves room for boundaries and the text fields.
const multipartOverhead = 64 << 10

type MediaHandler struct {
	MediaService *service.MediaService
}

// HandleUpload godoc
//
//	@Summary		Upload Photo
//	@Description	Store an image. With share=true a post carrying the image and the caption is published too.
//	@Tags			Media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"JPEG, PNG, GIF or WebP image"
//	@Param			share	formData	bool	false	"Publish a post with the image"
//	@Param			caption	formData	string	false	"Post text when sharing"
//	@Success		201		{object}	tuentisdk.UploadResponse
//	@Failure		400		{object}	tuentisdk.ErrorResponse
//	@Failure		413		{object}	tuentisdk.ErrorResponse
//	@Failure		415		{object}	tuentisdk.ErrorResponse
//	@Router			/v1/media [post].
func (h *MediaHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MediaService.MaxUploadBytes()+multipartOverhead)

	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, r, service.ErrMediaTooLarge, "")
			return
		}
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "expected a multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	share, _ := strconv.ParseBool(r.FormValue("share"))

	res, err := h.MediaService.Upload(r.Context(), service.UploadRequest{
		OwnerID:  httpx.AccountID(r.Context()),
		Filename: header.Filename,
		Body:     file,
		Share:    share,
		Caption:  r.FormValue("caption"),
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to upload media")
		return
	}

	out := tuentisdk.UploadResponse{Media: toMedia(res.Media)}
	if res.Post != nil {
		p := toFeedItem(*res.Post)
		out.Post = &p
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

// HandleGet godoc
//
//	@Summary		Fetch Photo
//	@Description	Stream the bytes of an upload
//	@Tags			Media
//	@Produce		image/jpeg,image/png,image/gif,image/webp
//	@Param			id	path	string	true	"Media ID"
//	@Success		200
//	@Failure		404	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/media/{id} [get].
func (h *MediaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, body, err := h.MediaService.Open(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to open media")
		return
	}
	defer func() { _ = body.Close() }()

	w.Header().Set("Content-Type", m.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(m.SizeBytes, 10))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	// Uploads are immutable under their id.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		slogx.FromContext(r.Context()).Warn("media stream interrupted", "media_id", m.ID, "err", err)
	}
}
