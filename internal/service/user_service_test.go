package service

import (
	"context"
	"testing"

	"mediarate/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(f *fixture) *UserService {
	tokens := NewTokenService(session.NewMemoryStore(), testSecret)
	return NewUserService(f.users, f.profiles, f.tx, tokens)
}

func TestRegister_CreatesUserWithProfile(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	user, err := f.users.GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ProfileID)
	// digest, never the password itself
	assert.NotEqual(t, "password123", user.PasswordDigest)

	profile, err := f.profiles.GetByOwner(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user.ProfileID, profile.ID)
	assert.Zero(t, profile.NumberOfLogins)
}

func TestRegister_TrimsUsername(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)

	userID, err := svc.Register(context.Background(), "  alice  ", "password123")
	require.NoError(t, err)

	user, err := f.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "different456")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_EmptyFields(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ReturnsTokenAndCountsLogin(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	profile, err := f.profiles.GetByOwner(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.NumberOfLogins)
}

func TestLogin_RepeatedLoginsReuseTokenButStillCount(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	profile, err := f.profiles.GetByOwner(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.NumberOfLogins)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)

	_, err := svc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	assert.True(t, svc.Logout(ctx, token))
	assert.False(t, svc.Logout(ctx, token))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	ctx := context.Background()

	userID, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	sobriquet := "movie buff"
	require.NoError(t, svc.UpdateProfile(ctx, userID, &sobriquet, nil))

	about := "I rate everything."
	require.NoError(t, svc.UpdateProfile(ctx, userID, nil, &about))

	profile, err := svc.Profile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "movie buff", profile.Sobriquet)
	assert.Equal(t, "I rate everything.", profile.AboutMe)
}

func TestProfile_UnknownUser(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)

	_, err := svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	err = svc.UpdateProfile(context.Background(), "missing", nil, nil)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
