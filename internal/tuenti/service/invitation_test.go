package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvitationValidate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inviter := env.register(t, "Ana")

	code, inv, err := env.invitations.Mint(ctx, inviter.Account.ID, 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, env.clock.Now().Add(24*time.Hour), inv.ExpiresAt)

	t.Run("valid", func(t *testing.T) {
		v, err := env.invitations.Validate(ctx, code)
		require.NoError(t, err)
		require.Equal(t, inv.ID, v.Invitation.ID)
		require.NotNil(t, v.Inviter)
		require.Equal(t, "Ana", v.Inviter.FirstName)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := env.invitations.Validate(ctx, "unknown")
		require.ErrorIs(t, err, ErrInvitationNotFound)
		_, err = env.invitations.Validate(ctx, "  ")
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("used", func(t *testing.T) {
		_, err := env.registration.Register(ctx, validRegistration(code, "bea@example.com"))
		require.NoError(t, err)
		_, err = env.invitations.Validate(ctx, code)
		require.ErrorIs(t, err, ErrInvitationAlreadyUsed)
	})

	t.Run("expired", func(t *testing.T) {
		code, _, err := env.invitations.Mint(ctx, inviter.Account.ID, time.Hour)
		require.NoError(t, err)
		env.clock.Advance(time.Hour)
		_, err = env.invitations.Validate(ctx, code)
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("list", func(t *testing.T) {
		list, err := env.invitations.List(ctx, inviter.Account.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.False(t, list[0].Invitation.Used)
		require.True(t, list[0].Expired)
		require.True(t, list[1].Invitation.Used)
		require.False(t, list[1].Expired)
	})
}

func TestInvitationListJudgesExpiryByServiceClock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.register(t, "Ana")

	_, inv, err := env.invitations.Mint(ctx, ana.Account.ID, 2*time.Hour)
	require.NoError(t, err)

	list, err := env.invitations.List(ctx, ana.Account.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, inv.ID, list[0].Invitation.ID)
	require.False(t, list[0].Expired)

	env.clock.Advance(2*time.Hour - time.Second)
	list, err = env.invitations.List(ctx, ana.Account.ID)
	require.NoError(t, err)
	require.False(t, list[0].Expired)

	env.clock.Advance(time.Second)
	list, err = env.invitations.List(ctx, ana.Account.ID)
	require.NoError(t, err)
	require.True(t, list[0].Expired)
}

func TestInvitationMintRejectsBadTTL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.invitations.Mint(ctx, "", time.Second)
	require.ErrorIs(t, err, ErrInvalidInvitationTTL)
	_, _, err = env.invitations.Mint(ctx, "", MaxInvitationTTL+time.Hour)
	require.ErrorIs(t, err, ErrInvalidInvitationTTL)
}
