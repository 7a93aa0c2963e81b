package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

func writeError(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, tuentisdk.ErrorResponse{Error: code, ErrorDescription: desc})
}

// writeServiceError maps a service error to a response. Unknown errors are
// logged and reported as server_error with fallback as the description.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteJSON(w, http.StatusBadRequest, tuentisdk.ErrorResponse{
			Error:            httpx.ErrCodeInvalidRequest,
			ErrorDescription: verr.Error(),
			Fields:           verr.Fields,
		})
		return
	}

	switch {
	// 400
	case errors.Is(err, service.ErrInvalidInvitationTTL),
		errors.Is(err, service.ErrInvalidFeedQuery),
		errors.Is(err, domain.ErrUnknownFeedFilter),
		errors.Is(err, domain.ErrUnknownNotificationType),
		errors.Is(err, service.ErrSelfFriendship),
		errors.Is(err, service.ErrActionNotAllowed),
		errors.Is(err, service.ErrMediaEmpty),
		errors.Is(err, service.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, err.Error())

	// 401
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefresh):
		writeError(w, http.StatusUnauthorized, httpx.ErrCodeUnauthorized, err.Error())

	// 403
	case errors.Is(err, service.ErrMediaNotOwned),
		errors.Is(err, service.ErrNotAddressee):
		writeError(w, http.StatusForbidden, httpx.ErrCodeForbidden, err.Error())

	// 404
	case errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrMediaNotFound),
		errors.Is(err, service.ErrFriendshipNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		writeError(w, http.StatusNotFound, httpx.ErrCodeNotFound, err.Error())

	// 409
	case errors.Is(err, service.ErrInvitationAlreadyUsed),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, service.ErrFriendshipExists),
		errors.Is(err, service.ErrFriendshipNotPending):
		writeError(w, http.StatusConflict, httpx.ErrCodeConflict, err.Error())

	case errors.Is(err, service.ErrMediaTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, httpx.ErrCodeTooLarge, err.Error())
	case errors.Is(err, service.ErrMediaUnsupported):
		writeError(w, http.StatusUnsupportedMediaType, httpx.ErrCodeUnsupported, err.Error())

	default:
		slogx.FromContext(r.Context()).Error(fallback, "err", err)
		writeError(w, http.StatusInternalServerError, httpx.ErrCodeServer, fallback)
	}
}

// decode reads a JSON body, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, err.Error())
		return false
	}
	return true
}
