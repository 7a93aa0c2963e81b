package http

import (
	"net/http"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSignIn godoc
//
//	@Summary		Sign In
//	@Description	Exchange email and password for an access token and a refresh token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tuentisdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	tuentisdk.TokenResponse
//	@Failure		401		{object}	tuentisdk.ErrorResponse	"invalid credentials"
//	@Router			/v1/auth/signin [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "email and password are required")
		return
	}

	pair, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "failed to sign in")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokens(pair))
}

// HandleRefresh godoc
//
//	@Summary		Refresh Tokens
//	@Description	Rotate a refresh token. The presented token stops working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tuentisdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	tuentisdk.TokenResponse
//	@Failure		401		{object}	tuentisdk.ErrorResponse
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.RefreshRequest
	if !decode(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err, "failed to refresh")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokens(pair))
}

// HandleSignOut godoc
//
//	@Summary		Sign Out
//	@Description	Revoke the session of the presented access token
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/auth/signout [post].
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	claims, _ := httpx.ClaimsFrom(r.Context())
	if err := h.AuthService.SignOut(r.Context(), claims.Subject, claims.SID); err != nil {
		writeServiceError(w, r, err, "failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSession godoc
//
//	@Summary		Current Session
//	@Description	The signed-in account and its profile
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	tuentisdk.SessionResponse
//	@Failure		401	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/auth/session [get].
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	info, err := h.AuthService.Session(r.Context(), httpx.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "failed to load session")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tuentisdk.SessionResponse{
		AccountID:     info.Account.ID,
		Email:         info.Account.Email,
		EmailVerified: info.Account.EmailVerified(),
		Profile:       toProfile(info.Profile),
	})
}

// HandlePasswordForgot godoc
//
//	@Summary		Request Password Reset
//	@Description	Mail a reset code. Always 202, whether or not the email is registered.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	tuentisdk.PasswordForgotRequest	true	"Email"
//	@Success		202
//	@Router			/v1/auth/password/forgot [post].
func (h *AuthHandler) HandlePasswordForgot(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.PasswordForgotRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err, "failed to request password reset")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandlePasswordReset godoc
//
//	@Summary		Reset Password
//	@Description	Set a new password with a mailed code. Signs the account out everywhere.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	tuentisdk.PasswordResetRequest	true	"Email, code and new password"
//	@Success		204
//	@Failure		400	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/auth/password/reset [post].
func (h *AuthHandler) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.PasswordResetRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.AuthService.ResetPassword(r.Context(), req.Email, req.Code, req.Password); err != nil {
		writeServiceError(w, r, err, "failed to reset password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSendVerification godoc
//
//	@Summary		Send Email Verification
//	@Description	Mail a verification code to the account email
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		202
//	@Failure		409	{object}	tuentisdk.ErrorResponse	"already verified"
//	@Router			/v1/auth/email/send-verification [post].
func (h *AuthHandler) HandleSendVerification(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.SendEmailVerification(r.Context(), httpx.AccountID(r.Context())); err != nil {
		writeServiceError(w, r, err, "failed to send verification email")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleVerifyEmail godoc
//
//	@Summary		Verify Email
//	@Description	Confirm the account email with a mailed code
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	tuentisdk.VerifyEmailRequest	true	"Code"
//	@Success		204
//	@Failure		400	{object}	tuentisdk.ErrorResponse
//	@Router			/v1/auth/email/verify [post].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req tuentisdk.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.AuthService.VerifyEmail(r.Context(), httpx.AccountID(r.Context()), req.Code); err != nil {
		writeServiceError(w, r, err, "failed to verify email")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
