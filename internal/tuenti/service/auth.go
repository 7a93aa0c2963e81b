package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/formx"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrAccountNotFound    = errors.New("account not found")
)

// SessionInfo is the signed-in account and its profile.
type SessionInfo struct {
	Account domain.Account
	Profile domain.Profile
}

type AuthService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Tokens *TokenIssuer
	Mailer Mailer

	// CodeIssuer names the service in verification code secrets.
	CodeIssuer string

	Now func() time.Time
}

// SignIn checks the credentials and starts a new session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (pair domain.TokenPair, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.SignIn")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, formx.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("sign in with unknown email")
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.TokenPair{}, err
	}

	if err := s.Hasher.Verify(password, acc.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("sign in with wrong password", slog.String("account_id", acc.ID))
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.String("account_id", acc.ID), slog.Any("error", err))
		return domain.TokenPair{}, err
	}

	pair, err = s.Tokens.StartSession(ctx, s.Store, acc, now)
	if err != nil {
		log.Error("failed to start session", slog.Any("error", err))
		return domain.TokenPair{}, err
	}

	log.Info("signed in", slog.String("account_id", acc.ID))
	return pair, nil
}

// Refresh rotates refreshToken. The presented token stops working whether
// or not the caller receives the new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (pair domain.TokenPair, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Refresh")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	if refreshToken == "" {
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	oldHash := cryptox.FingerprintToken(refreshToken)

	next, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := tx.Sessions().GetSessionByTokenHash(ctx, oldHash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}
		if sess.Revoked || !now.Before(sess.ExpiresAt) {
			return ErrInvalidRefresh
		}

		acc, err := tx.Accounts().GetAccountByID(ctx, sess.AccountID)
		if err != nil {
			return fmt.Errorf("load session account: %w", err)
		}

		if err := tx.Sessions().RotateSession(ctx, sess.ID, oldHash, cryptox.FingerprintToken(next),
			now.Add(s.Tokens.refreshTTL()), now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		access, err := s.Tokens.signAccess(acc, sess.ID, now)
		if err != nil {
			return err
		}
		pair = domain.TokenPair{
			AccessToken:  access,
			RefreshToken: next,
			TokenType:    TokenTypeBearer,
			ExpiresIn:    s.Tokens.accessTTL(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) {
			log.Info("refresh rejected")
		} else {
			log.Error("refresh failed", slog.Any("error", err))
		}
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// SignOut revokes the session behind the caller's access token.
func (s *AuthService) SignOut(ctx context.Context, accountID, sessionID string) error {
	log := slogx.FromContext(ctx)

	sess, err := s.Store.Sessions().GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if sess.AccountID != accountID {
		return nil
	}
	if err := s.Store.Sessions().RevokeSession(ctx, sess.ID, clock(s.Now)); err != nil {
		log.Error("failed to revoke session", slog.Any("error", err))
		return err
	}

	log.Info("signed out", slog.String("account_id", accountID), slog.String("session_id", sessionID))
	return nil
}

// Session returns the account and profile of a signed-in user.
func (s *AuthService) Session(ctx context.Context, accountID string) (SessionInfo, error) {
	acc, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SessionInfo{}, ErrAccountNotFound
		}
		return SessionInfo{}, err
	}
	p, err := s.Store.Profiles().GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SessionInfo{}, ErrAccountNotFound
		}
		return SessionInfo{}, err
	}
	return SessionInfo{Account: acc, Profile: p}, nil
}

// RequestPasswordReset mails a reset code when email belongs to an account.
// Unknown emails succeed silently so callers cannot probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthService.RequestPasswordReset")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, formx.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("password reset for unknown email")
			return nil
		}
		return err
	}

	return s.sendCode(ctx, acc, domain.PurposePasswordReset,
		"Reset your tuenti password",
		"Your password reset code is %s. It expires in 10 minutes.")
}

// ResetPassword sets a new password with a mailed code and signs the account
// out everywhere.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthService.ResetPassword")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	if reason, ok := formx.ValidatePassword(newPassword); !ok {
		return &ValidationError{Fields: map[string]string{"password": reason}}
	}

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, formx.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := consumeCode(ctx, tx, acc.ID, domain.PurposePasswordReset, code, now); err != nil {
			return err
		}
		if err := tx.Accounts().UpdatePasswordHash(ctx, acc.ID, hash, now); err != nil {
			return err
		}
		return tx.Sessions().RevokeAccountSessions(ctx, acc.ID, now)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			log.Info("password reset with invalid code", slog.String("account_id", acc.ID))
		} else {
			log.Error("password reset failed", slog.Any("error", err))
		}
		return err
	}

	log.Info("password reset", slog.String("account_id", acc.ID))
	return nil
}

// SendEmailVerification mails a verification code to the account email.
func (s *AuthService) SendEmailVerification(ctx context.Context, accountID string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthService.SendEmailVerification")
	defer func() { endSpan(span, err) }()

	acc, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if acc.EmailVerified() {
		return ErrAlreadyVerified
	}

	return s.sendCode(ctx, acc, domain.PurposeEmailVerification,
		"Verify your tuenti email",
		"Your verification code is %s. It expires in 10 minutes.")
}

// VerifyEmail marks the account email verified with a mailed code.
func (s *AuthService) VerifyEmail(ctx context.Context, accountID, code string) (err error) {
	ctx, span := tracer.Start(ctx, "AuthService.VerifyEmail")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	acc, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if acc.EmailVerified() {
		return ErrAlreadyVerified
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := consumeCode(ctx, tx, acc.ID, domain.PurposeEmailVerification, code, now); err != nil {
			return err
		}
		return tx.Accounts().MarkEmailVerified(ctx, acc.ID, now)
	})
	if err != nil {
		return err
	}

	log.Info("email verified", slog.String("account_id", acc.ID))
	return nil
}

// sendCode stores a fresh code secret for purpose and mails the current code.
// The body format takes the code as its only verb.
func (s *AuthService) sendCode(ctx context.Context, acc domain.Account, purpose domain.CodePurpose, subject, body string) error {
	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	secret, err := cryptox.NewCodeSecret(s.CodeIssuer, acc.Email)
	if err != nil {
		return err
	}
	code, err := cryptox.GenerateCode(secret, now)
	if err != nil {
		return err
	}

	vc := domain.VerificationCode{
		ID:        idx.NewAt(now).String(),
		AccountID: acc.ID,
		Purpose:   purpose,
		Secret:    secret,
		ExpiresAt: now.Add(cryptox.CodePeriod),
		CreatedAt: now,
	}
	if err := s.Store.VerificationCodes().CreateCode(ctx, vc); err != nil {
		log.Error("failed to store verification code", slog.Any("error", err))
		return err
	}

	if err := s.Mailer.Send(ctx, Message{
		To:      acc.Email,
		Subject: subject,
		Body:    fmt.Sprintf(body, code),
	}); err != nil {
		log.Error("failed to send code email",
			slog.String("account_id", acc.ID),
			slog.String("purpose", string(purpose)),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("code email sent", slog.String("account_id", acc.ID), slog.String("purpose", string(purpose)))
	return nil
}

// consumeCode checks code against the account's live secrets for purpose
// and deletes them all on success.
func consumeCode(ctx context.Context, st store.Store, accountID string, purpose domain.CodePurpose, code string, now time.Time) error {
	active, err := st.VerificationCodes().ListActiveCodes(ctx, accountID, purpose, now)
	if err != nil {
		return err
	}
	for _, c := range active {
		// A code stays good until its row expires, even past its TOTP step.
		if cryptox.ValidateCode(code, c.Secret, now) || cryptox.ValidateCode(code, c.Secret, c.CreatedAt) {
			return st.VerificationCodes().DeleteCodes(ctx, accountID, purpose)
		}
	}
	return ErrInvalidCode
}
