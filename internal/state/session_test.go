package state

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/client"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/forms"
	"github.com/target/admin-panel/internal/localstore"
	"github.com/target/admin-panel/internal/validation"
)

type fakeAuthAPI struct {
	loginCalls  int
	loginErr    error
	logoutCalls int
	logoutErr   error
	pwErr       error
	lastPw      model.ChangePasswordRequest
}

func (f *fakeAuthAPI) Login(_ context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	f.loginCalls++
	switch {
	case f.loginErr != nil:
		return nil, f.loginErr
	case req.Username == "offline":
		return nil, errors.New("dial tcp 127.0.0.1:8080: connection refused")
	case req.Username != "admin" || req.Password != "admin123":
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	return &model.LoginResponse{Token: "tok-1", User: &model.User{ID: "u1", Username: "admin", Name: "Admin"}}, nil
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthAPI) UpdateProfile(_ context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	return &model.User{ID: "u1", Username: "admin", Name: *req.Name}, nil
}

func (f *fakeAuthAPI) ChangePassword(_ context.Context, req model.ChangePasswordRequest) error {
	f.lastPw = req
	return f.pwErr
}

func newTestSession(t *testing.T) (*Session, *fakeAuthAPI, *localstore.Store) {
	t.Helper()
	api := &fakeAuthAPI{}
	store := localstore.New(filepath.Join(t.TempDir(), "session.json"))
	return NewSession(api, store, nil), api, store
}

func TestSession_LoginPersistsAndCheckAuthRestores(t *testing.T) {
	s, _, store := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "admin", "admin123"))
	st := s.Snapshot()
	assert.True(t, st.Authenticated)
	assert.Equal(t, "tok-1", st.Token)
	assert.Equal(t, "tok-1", s.Token())

	restored := NewSession(&fakeAuthAPI{}, store, nil)
	require.NoError(t, restored.CheckAuth())
	st = restored.Snapshot()
	assert.True(t, st.Initialized)
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "admin", st.User.Username)
}

func TestSession_CheckAuthNeedsBothKeys(t *testing.T) {
	s, _, store := newTestSession(t)
	require.NoError(t, store.Set(localstore.KeyAuthToken, "tok"))

	require.NoError(t, s.CheckAuth())
	st := s.Snapshot()
	assert.True(t, st.Initialized)
	assert.False(t, st.Authenticated)
}

func TestSession_LoginFailures(t *testing.T) {
	s, api, _ := newTestSession(t)
	ctx := context.Background()

	err := s.Login(ctx, "", "")
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Username is required", fe["username"])
	assert.Zero(t, api.loginCalls, "invalid forms never reach the API")

	require.Error(t, s.Login(ctx, "admin", "nope"))
	require.NotNil(t, s.Snapshot().Error)
	assert.Equal(t, MsgInvalidCredentials, *s.Snapshot().Error)
	assert.False(t, s.Snapshot().Authenticated)

	require.Error(t, s.Login(ctx, "offline", "x"))
	assert.Contains(t, *s.Snapshot().Error, "connection refused")

	s.ClearError()
	assert.Nil(t, s.Snapshot().Error)
}

func TestSession_LoginShowsServerMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rate limited",
			err:  &client.APIError{StatusCode: http.StatusTooManyRequests, Message: "Too many requests"},
			want: "Too many requests",
		},
		{
			name: "inactive account",
			err:  &client.APIError{StatusCode: http.StatusForbidden, Message: "Account is inactive"},
			want: "Account is inactive",
		},
		{
			name: "no server message",
			err:  &client.APIError{StatusCode: http.StatusUnauthorized},
			want: MsgInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, api, _ := newTestSession(t)
			api.loginErr = tt.err

			require.Error(t, s.Login(context.Background(), "admin", "admin123"))
			require.NotNil(t, s.Snapshot().Error)
			assert.Equal(t, tt.want, *s.Snapshot().Error)
		})
	}
}

func TestSession_FailedLoginClearsPreviousSession(t *testing.T) {
	s, _, store := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, "admin", "admin123"))
	require.True(t, s.Snapshot().Authenticated)

	require.Error(t, s.Login(ctx, "admin", "wrong"))
	st := s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Token)
	assert.Empty(t, s.Token())

	has, err := store.Has(localstore.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSession_Logout(t *testing.T) {
	s, api, store := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, "admin", "admin123"))

	api.logoutErr = errors.New("server gone")
	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, 1, api.logoutCalls)

	st := s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Empty(t, st.Token)
	assert.True(t, st.Initialized)
	has, err := store.Has(localstore.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSession_UpdateProfileMergesStoredUser(t *testing.T) {
	s, _, store := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, "admin", "admin123"))

	name := "Site Owner"
	_, err := s.UpdateProfile(ctx, model.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Site Owner", s.Snapshot().User.Name)

	var stored model.User
	ok, err := store.Get(localstore.KeyUser, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Site Owner", stored.Name)
}

func TestSession_ChangePassword(t *testing.T) {
	s, api, _ := newTestSession(t)
	ctx := context.Background()

	err := s.ChangePassword(ctx, forms.ChangePassword{CurrentPassword: "a", NewPassword: "secret1", ConfirmPassword: "secret2"})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Passwords must match", fe["confirmPassword"])
	assert.Empty(t, api.lastPw.NewPassword)

	api.pwErr = &client.APIError{StatusCode: http.StatusBadRequest, Message: "Current password is incorrect"}
	err = s.ChangePassword(ctx, forms.ChangePassword{CurrentPassword: "bad", NewPassword: "secret1", ConfirmPassword: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Current password is incorrect", *s.Snapshot().Error)

	api.pwErr = nil
	require.NoError(t, s.ChangePassword(ctx, forms.ChangePassword{CurrentPassword: "ok", NewPassword: "secret1", ConfirmPassword: "secret1"}))
	assert.Equal(t, "secret1", api.lastPw.NewPassword)
	assert.False(t, s.Snapshot().Loading)
}
