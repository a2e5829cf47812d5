package auth

import (
	"context"
	"time"

	"github.com/feastline/feastline-backend/internal/users"
	pkgauth "github.com/feastline/feastline-backend/pkg/auth"
	"github.com/feastline/feastline-backend/pkg/config"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/logger"
	"github.com/google/uuid"
)

// TokenPair is the credential set returned to a signed-in client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// sessionManager is the refresh-session surface the service depends on.
type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service handles sign-up, sign-in, token refresh and sign-out.
type Service interface {
	Register(ctx context.Context, name, email, password string) (users.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (users.User, TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	directory *users.Store
	gateway   *users.Gateway
	sessions  sessionManager
	jwtCfg    config.JWTConfig
	pwCfg     config.PasswordConfig
	logg      *logger.Logger
	clock     func() time.Time
}

// NewService validates the collaborators and builds the auth service. The
// gateway is optional; without it accounts simply do not survive restarts.
func NewService(
	directory *users.Store,
	gateway *users.Gateway,
	sessions sessionManager,
	jwtCfg config.JWTConfig,
	pwCfg config.PasswordConfig,
	logg *logger.Logger,
) (Service, error) {
	if directory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth service requires a user directory")
	}
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth service requires a session manager")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth service requires a logger")
	}
	return &service{
		directory: directory,
		gateway:   gateway,
		sessions:  sessions,
		jwtCfg:    jwtCfg,
		pwCfg:     pwCfg,
		logg:      logg,
		clock:     time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, name, email, password string) (users.User, TokenPair, error) {
	user, err := s.directory.Register(name, email, password, s.pwCfg)
	if err != nil {
		return users.User{}, TokenPair{}, err
	}

	if s.gateway != nil {
		if err := s.gateway.Save(ctx, s.directory); err != nil {
			s.logg.Error(ctx, "persisting user directory", err)
		}
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return users.User{}, TokenPair{}, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user registered")
	return user, pair, nil
}

func (s *service) Login(ctx context.Context, email, password string) (users.User, TokenPair, error) {
	user, err := s.directory.Authenticate(email, password)
	if err != nil {
		return users.User{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return users.User{}, TokenPair{}, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user signed in")
	return user, pair, nil
}

func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "refresh rejected")
	}

	signed, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Name:   claims.Name,
		JTI:    newAccessID,
	})
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return TokenPair{AccessToken: signed, RefreshToken: newRefresh}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user users.User) (TokenPair, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parsing user id")
	}

	accessID := uuid.NewString()
	signed, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Name:   user.Name,
		JTI:    accessID,
	})
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return TokenPair{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating refresh session")
	}

	return TokenPair{AccessToken: signed, RefreshToken: refresh}, nil
}
