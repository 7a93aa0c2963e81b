package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store/drivers/sqlite"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var cheapArgon2 = cryptox.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	store  *sqlite.Store
	clock  *fakeClock
	tokens *TokenIssuer
	keys   *jwtx.KeySet
	hasher *cryptox.PasswordHasher

	invitations   *InvitationService
	registration  *RegistrationService
	feed          *FeedService
	profiles      *ProfileService
	friendships   *FriendshipService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "tuenti.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pem)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	clk := newFakeClock()
	tokens := &TokenIssuer{Signer: signer, Issuer: "tuenti-test", Audience: []string{"tuenti"}}
	hasher := cryptox.NewPasswordHasher("pepper").WithParams(cheapArgon2)

	return &testEnv{
		store:         st,
		clock:         clk,
		tokens:        tokens,
		keys:          keys,
		hasher:        hasher,
		invitations:   &InvitationService{Store: st, Now: clk.Now},
		registration:  &RegistrationService{Store: st, Hasher: hasher, Tokens: tokens, Now: clk.Now},
		feed:          &FeedService{Store: st, Now: clk.Now},
		profiles:      &ProfileService{Store: st, Now: clk.Now},
		friendships:   &FriendshipService{Store: st, Now: clk.Now},
		notifications: &NotificationService{Store: st, Now: clk.Now},
	}
}

// register mints an invitation and registers first with it.
func (e *testEnv) register(t *testing.T, first string) RegisterResult {
	t.Helper()
	ctx := context.Background()

	code, _, err := e.invitations.Mint(ctx, "", 0)
	require.NoError(t, err)

	res, err := e.registration.Register(ctx, domain.Registration{
		InvitationCode:       code,
		Email:                first + "@example.com",
		Password:             "correct horse",
		PasswordConfirmation: "correct horse",
		FirstName:            first,
		LastName:             "Test",
		AcceptedDisclaimer:   true,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) befriend(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	f, err := e.friendships.SendRequest(ctx, a, b)
	require.NoError(t, err)
	require.NoError(t, e.friendships.Accept(ctx, b, f.ID))
}
