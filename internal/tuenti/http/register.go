package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Create an account with an invitation code. Creates the account and profile, consumes the invitation and signs the new user in, atomically.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tuentisdk.RegisterRequest	true	"Registration form"
//	@Success		201		{object}	tuentisdk.RegisterResponse
//	@Failure		400		{object}	tuentisdk.ErrorResponse	"validation failed"
//	@Failure		404		{object}	tuentisdk.ErrorResponse	"unknown or expired invitation"
//	@Failure		409		{object}	tuentisdk.ErrorResponse	"invitation used or email taken"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.RegistrationService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "failed to register")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tuentisdk.RegisterResponse{
		AccountID: res.Account.ID,
		Profile:   toProfile(res.Profile),
		Tokens:    toTokens(res.Tokens),
	})
}

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleValidate godoc
//
//	@Summary		Validate Invitation
//	@Description	Check that an invitation code can still be redeemed. Does not consume it.
//	@Tags			Registration
//	@Produce		json
//	@Param			code	path		string	true	"Invitation code"
//	@Success		200		{object}	tuentisdk.InvitationValidation
//	@Failure		404		{object}	tuentisdk.ErrorResponse	"unknown or expired"
//	@Failure		409		{object}	tuentisdk.ErrorResponse	"already used"
//	@Router			/v1/invitations/{code} [get].
func (h *InvitationsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	v, err := h.InvitationService.Validate(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, r, err, "failed to validate invitation")
		return
	}

	resp := tuentisdk.InvitationValidation{Valid: true, ExpiresAt: v.Invitation.ExpiresAt}
	if v.Inviter != nil {
		p := toProfile(*v.Inviter)
		resp.Inviter = &p
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleMint godoc
//
//	@Summary		Mint Invitation
//	@Description	Create an invitation code for a friend. The code is returned once.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		tuentisdk.MintInvitationRequest	false	"Lifetime"
//	@Success		201		{object}	tuentisdk.MintInvitationResponse
//	@Failure		400		{object}	tuentisdk.ErrorResponse
//	@Failure		401		{object}	tuentisdk.ErrorResponse
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.MintInvitationRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	code, inv, err := h.InvitationService.Mint(r.Context(), httpx.AccountID(r.Context()),
		time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		writeServiceError(w, r, err, "failed to mint invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tuentisdk.MintInvitationResponse{
		Code:       code,
		Invitation: toInvitation(inv, false),
	})
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	Invitations minted by the caller, newest first
//	@Tags			Registration
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tuentisdk.InvitationsResponse
//	@Failure		401	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InvitationService.List(r.Context(), httpx.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "failed to list invitations")
		return
	}

	out := tuentisdk.InvitationsResponse{Invitations: make([]tuentisdk.Invitation, len(invs))}
	for i, inv := range invs {
		out.Invitations[i] = toInvitation(inv.Invitation, inv.Expired)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
