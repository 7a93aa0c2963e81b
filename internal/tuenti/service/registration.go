package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

var ErrEmailTaken = errors.New("email already registered")

type RegisterResult struct {
	Account domain.Account
	Profile domain.Profile
	Tokens  domain.TokenPair
}

type RegistrationService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Tokens *TokenIssuer
	Now    func() time.Time
}

// Register creates the account and profile, consumes the invitation and
// starts a session, all in one transaction. The invitation is consumed with
// a conditional update, so of two registrations racing on one code exactly
// one succeeds and the other gets ErrInvitationAlreadyUsed.
func (s *RegistrationService) Register(ctx context.Context, req domain.Registration) (res RegisterResult, err error) {
	ctx, span := tracer.Start(ctx, "RegistrationService.Register")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	req = req.Normalize()
	if err := validationError(req.Validate()); err != nil {
		return RegisterResult{}, err
	}

	// Hash outside the transaction; the database has a single connection.
	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return RegisterResult{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitationByCodeHash(ctx, cryptox.FingerprintToken(req.InvitationCode))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}
		if inv.Used {
			return ErrInvitationAlreadyUsed
		}
		if inv.Expired(now) {
			return ErrInvitationNotFound
		}

		// 1. Account
		res.Account = domain.Account{
			ID:           idx.NewAt(now).String(),
			Email:        req.Email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Accounts().CreateAccount(ctx, res.Account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}

		// 2. Profile
		res.Profile = domain.Profile{
			ID:        res.Account.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Profiles().CreateProfile(ctx, res.Profile); err != nil {
			return err
		}

		// 3. Invitation
		if err := tx.Invitations().ConsumeInvitation(ctx, inv.ID, res.Account.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationAlreadyUsed
			}
			return err
		}

		// 4. Session
		res.Tokens, err = s.Tokens.StartSession(ctx, tx, res.Account, now)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound), errors.Is(err, ErrInvitationAlreadyUsed), errors.Is(err, ErrEmailTaken):
			log.Info("registration rejected", slog.String("reason", err.Error()))
		default:
			log.Error("registration failed", slog.Any("error", err))
		}
		return RegisterResult{}, err
	}

	log.Info("account registered",
		slog.String("account_id", res.Account.ID),
	)
	return res, nil
}
