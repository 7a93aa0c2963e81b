package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

const (
	DefaultInvitationTTL = 7 * 24 * time.Hour
	MaxInvitationTTL     = 90 * 24 * time.Hour
)

var (
	ErrInvitationNotFound    = errors.New("invitation not found or expired")
	ErrInvitationAlreadyUsed = errors.New("invitation has already been used")
	ErrInvalidInvitationTTL  = errors.New("invalid invitation lifetime")
)

// ValidatedInvitation is a redeemable invitation and who sent it. Inviter is
// nil for invitations minted from the command line.
type ValidatedInvitation struct {
	Invitation domain.Invitation
	Inviter    *domain.Profile
}

type InvitationService struct {
	Store store.Store
	Now   func() time.Time
}

// Validate checks that code is redeemable right now. It does not consume
// the invitation.
func (s *InvitationService) Validate(ctx context.Context, code string) (v ValidatedInvitation, err error) {
	ctx, span := tracer.Start(ctx, "InvitationService.Validate")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	code = strings.TrimSpace(code)
	if code == "" {
		return ValidatedInvitation{}, ErrInvitationNotFound
	}

	inv, err := s.Store.Invitations().GetInvitationByCodeHash(ctx, cryptox.FingerprintToken(code))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("invitation validation with unknown code")
			return ValidatedInvitation{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return ValidatedInvitation{}, err
	}

	switch {
	case inv.Used:
		log.Info("invitation validation with used code", slog.String("invitation_id", inv.ID))
		return ValidatedInvitation{}, ErrInvitationAlreadyUsed
	case inv.Expired(now):
		log.Info("invitation validation with expired code", slog.String("invitation_id", inv.ID))
		return ValidatedInvitation{}, ErrInvitationNotFound
	}

	v = ValidatedInvitation{Invitation: inv}
	if inv.CreatedBy != "" {
		p, err := s.Store.Profiles().GetProfile(ctx, inv.CreatedBy)
		switch {
		case err == nil:
			v.Inviter = &p
		case !errors.Is(err, store.ErrNotFound):
			return ValidatedInvitation{}, err
		}
	}
	return v, nil
}

// Mint creates an invitation and returns its raw code, which is shown once.
// createdBy is empty for invitations minted outside the API. A zero ttl
// means DefaultInvitationTTL.
func (s *InvitationService) Mint(ctx context.Context, createdBy string, ttl time.Duration) (code string, inv domain.Invitation, err error) {
	ctx, span := tracer.Start(ctx, "InvitationService.Mint")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	if ttl == 0 {
		ttl = DefaultInvitationTTL
	}
	if ttl < time.Minute || ttl > MaxInvitationTTL {
		return "", domain.Invitation{}, ErrInvalidInvitationTTL
	}

	code, err = cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		log.Error("failed to generate invitation code", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}

	inv = domain.Invitation{
		ID:        idx.NewAt(now).String(),
		CodeHash:  cryptox.FingerprintToken(code),
		CreatedBy: createdBy,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}

	log.Info("invitation minted",
		slog.String("invitation_id", inv.ID),
		slog.String("created_by", createdBy),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return code, inv, nil
}

// ListedInvitation is an invitation with its expiry judged by the service
// clock.
type ListedInvitation struct {
	Invitation domain.Invitation
	Expired    bool
}

// List returns the invitations createdBy has minted, newest first.
func (s *InvitationService) List(ctx context.Context, createdBy string) ([]ListedInvitation, error) {
	invs, err := s.Store.Invitations().ListInvitationsByCreator(ctx, createdBy)
	if err != nil {
		return nil, err
	}

	now := clock(s.Now)
	out := make([]ListedInvitation, len(invs))
	for i, inv := range invs {
		out[i] = ListedInvitation{Invitation: inv, Expired: inv.Expired(now)}
	}
	return out, nil
}
