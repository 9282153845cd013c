package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/target/admin-panel/internal/core"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	apperrors "github.com/target/admin-panel/internal/errors"
	"github.com/target/admin-panel/internal/ports"
	"github.com/target/admin-panel/internal/validation"
)

const (
	defaultSessionTTL = 12 * time.Hour
	defaultStateTTL   = 10 * time.Minute
)

// AuthSecurity groups the credential and session ports.
type AuthSecurity struct {
	Sessions ports.SessionStore
	Tokens   ports.TokenIssuer
	Hasher   ports.PasswordHasher
}

// SSOOptions enables single sign-on. All fields are required.
type SSOOptions struct {
	Provider ports.AuthProvider
	States   ports.StateStore
	Roles    ports.RoleMapper
}

// AuthConfig holds tunables for AuthService. Zero values select defaults.
type AuthConfig struct {
	SessionTTL time.Duration
	StateTTL   time.Duration
	Clock      clockwork.Clock
	Logger     *slog.Logger
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Security AuthSecurity
	SSO      *SSOOptions // nil disables SSO
	Config   AuthConfig
}

// AuthService handles password and SSO login, bearer token authentication and
// self-service account changes.
type AuthService struct {
	users    core.UserRepository
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
	hasher   ports.PasswordHasher
	sso      *SSOOptions
	ttl      time.Duration
	stateTTL time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService. It panics when a required dependency is nil.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil || opts.Security.Sessions == nil || opts.Security.Tokens == nil || opts.Security.Hasher == nil {
		panic("service: AuthService requires Users, Sessions, Tokens and Hasher")
	}
	if opts.SSO != nil && (opts.SSO.Provider == nil || opts.SSO.States == nil || opts.SSO.Roles == nil) {
		panic("service: SSOOptions requires Provider, States and Roles")
	}
	cfg := opts.Config
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = defaultStateTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AuthService{
		users:    opts.Users,
		sessions: opts.Security.Sessions,
		tokens:   opts.Security.Tokens,
		hasher:   opts.Security.Hasher,
		sso:      opts.SSO,
		ttl:      cfg.SessionTTL,
		stateTTL: cfg.StateTTL,
		clock:    cfg.Clock,
		logger:   cfg.Logger.With("component", "auth"),
	}
}

// SSOEnabled reports whether SSO endpoints should be served.
func (s *AuthService) SSOEnabled() bool { return s.sso != nil }

// Login verifies a username (or email) and password and opens a session.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.lookupLogin(ctx, req.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.InfoContext(ctx, "login failed", "username", req.Username, "reason", "unknown user")
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if cmpErr := s.hasher.Compare(user.PasswordHash, req.Password); cmpErr != nil {
		s.logger.InfoContext(ctx, "login failed", "username", req.Username, "reason", "bad password")
		return nil, invalidCredentials()
	}
	if !user.IsActive() {
		s.logger.InfoContext(ctx, "login failed", "username", req.Username, "reason", "inactive")
		return nil, apperrors.Wrap(ErrAccountInactive, apperrors.ErrCodeForbidden, "Account is inactive")
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) lookupLogin(ctx context.Context, login string) (*model.User, error) {
	if strings.Contains(login, "@") {
		return s.users.GetByEmail(ctx, login)
	}
	return s.users.GetByUsername(ctx, login)
}

func (s *AuthService) startSession(ctx context.Context, user *model.User) (*model.LoginResponse, error) {
	now := s.clock.Now()
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("issue token: %w", err), s.sessions.Delete(ctx, sess.ID))
	}
	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)
	return &model.LoginResponse{Token: token, User: user, ExpiresAt: sess.ExpiresAt}, nil
}

// Authenticate resolves a bearer token to its live session.
// The role comes from the session, so it reflects the role at login time.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, unauthenticated(nil)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domainauth.Session{}, unauthenticated(err)
	}
	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return domainauth.Session{}, unauthenticated(err)
		}
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}
	if sess.UserID != claims.UserID {
		return domainauth.Session{}, unauthenticated(errors.New("token does not match session"))
	}
	if !s.clock.Now().Before(sess.ExpiresAt) {
		return domainauth.Session{}, unauthenticated(errors.New("session expired"))
	}
	return sess, nil
}

// Logout revokes a session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Me returns the user behind a session.
func (s *AuthService) Me(ctx context.Context, sess domainauth.Session) (*model.User, error) {
	return s.users.GetByID(ctx, sess.UserID)
}

// UpdateProfile lets a user change their own name, email and avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, sess domainauth.Session, req model.UpdateProfileRequest) (*model.User, error) {
	upd := req.ToUserUpdate()
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, sess.UserID, core.UpdateUserParams{Req: upd})
}

// ChangePassword rotates the signed-in user's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, sess domainauth.Session, req model.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if cmpErr := s.hasher.Compare(user.PasswordHash, req.CurrentPassword); cmpErr != nil {
		return validation.FieldErrors{"currentPassword": model.MsgCurrentPasswordIncorrect}
	}
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.users.Update(ctx, user.ID, core.UpdateUserParams{PasswordHash: &hash}); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}

// BeginLoginResult carries the IdP redirect for an SSO login.
type BeginLoginResult struct {
	AuthURL string `json:"authUrl"`
	State   string `json:"state"`
}

// BeginSSO starts an SSO flow and remembers the nonce under the returned state.
func (s *AuthService) BeginSSO(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.sso == nil {
		return nil, apperrors.Wrap(ErrSSODisabled, apperrors.ErrCodeNotFound, "Single sign-on is not enabled")
	}
	if redirectURL == "" {
		redirectURL = "/"
	}
	authURL, state, nonce, err := s.sso.Provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	if err := s.sso.States.Put(ctx, state, nonce, s.stateTTL); err != nil {
		return nil, fmt.Errorf("store sso state: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state}, nil
}

// CompleteSSO finishes an SSO flow. The IdP identity is matched to a local
// user by email; unknown users are provisioned with the mapped role, and
// existing users have their role synced to it.
func (s *AuthService) CompleteSSO(ctx context.Context, code, state string) (*model.LoginResponse, error) {
	if s.sso == nil {
		return nil, apperrors.Wrap(ErrSSODisabled, apperrors.ErrCodeNotFound, "Single sign-on is not enabled")
	}
	if code == "" || state == "" {
		return nil, apperrors.Wrap(ErrInvalidSSOState, apperrors.ErrCodeValidation, "code and state are required")
	}
	nonce, err := s.sso.States.Take(ctx, state)
	if err != nil {
		if errors.Is(err, ports.ErrStateNotFound) {
			return nil, apperrors.Wrap(ErrInvalidSSOState, apperrors.ErrCodeUnauthorized, "Login session expired, please try again")
		}
		return nil, fmt.Errorf("load sso state: %w", err)
	}
	identity, err := s.sso.Provider.Exchange(ctx, ports.ExchangeInput{Code: code, State: state, Nonce: nonce})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Single sign-on failed")
	}
	role := s.sso.Roles.Map(identity.Groups)

	user, err := s.users.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		user, err = s.syncRole(ctx, user, role)
		if err != nil {
			return nil, err
		}
	case apperrors.IsNotFound(err):
		user, err = s.provision(ctx, identity, role)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive() {
		return nil, apperrors.Wrap(ErrAccountInactive, apperrors.ErrCodeForbidden, "Account is inactive")
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) syncRole(ctx context.Context, user *model.User, role domainauth.Role) (*model.User, error) {
	if user.Role == role {
		return user, nil
	}
	s.logger.InfoContext(ctx, "sso role changed", "user_id", user.ID, "from", user.Role, "to", role)
	return s.users.Update(ctx, user.ID, core.UpdateUserParams{Req: model.UpdateUserRequest{Role: &role}})
}

var usernameUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)

// provision creates a local account for an SSO identity with an unusable random password.
func (s *AuthService) provision(ctx context.Context, id domainauth.Identity, role domainauth.Role) (*model.User, error) {
	username := id.UserID
	if username == "" || strings.Contains(username, "@") {
		username, _, _ = strings.Cut(id.Email, "@")
	}
	username = usernameUnsafe.ReplaceAllString(strings.ToLower(username), "")
	for len(username) < 3 {
		username += "_"
	}
	secret, err := randomSecret()
	if err != nil {
		return nil, err
	}
	req := &model.CreateUserRequest{
		Username: username,
		Email:    id.Email,
		Password: secret,
		Name:     id.DisplayName(),
		Role:     role,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("provision sso user: %w", err)
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, core.CreateUserParams{Req: req, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("provision sso user: %w", err)
	}
	s.logger.InfoContext(ctx, "sso user provisioned", "user_id", user.ID, "role", role)
	return user, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
