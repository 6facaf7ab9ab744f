package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/store"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

var (
	ErrInvalidClient      = errors.New("invalid_client")
	ErrUnauthorizedClient = errors.New("unauthorized_client")
	ErrInvalidGrant       = errors.New("invalid_grant")
	ErrInvalidScope       = errors.New("invalid_scope")
)

// TokenService issues access and refresh tokens for the password and
// refresh_token grants. Tokens are self-contained; the only server-side
// state is the consumed refresh marker.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Clients  *ClientRegistry
	Users    *UserService
	Consumed store.ConsumedTokens
	Issuer   string

	// ReuseRefreshTokens keeps the presented refresh token valid after an
	// exchange instead of rotating it.
	ReuseRefreshTokens bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueFromPassword implements the resource owner password credentials grant.
func (s *TokenService) IssueFromPassword(
	ctx context.Context,
	clientID, clientSecret, username, password string,
	requestedScopes []string,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	client, err := s.authenticateClient(clientID, clientSecret, domain.GrantPassword)
	if err != nil {
		l.Info("password grant client authentication failed", slog.String("client_id", clientID), slog.Any("error", err))
		return nil, err
	}

	scopes, err := narrowScopes(requestedScopes, client.Scopes)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Info("password grant rejected", slog.String("username", username))
			return nil, fmt.Errorf("%w: bad credentials", ErrInvalidGrant)
		}
		return nil, err
	}

	pair, err := s.mint(client, user, scopes, s.now())
	if err != nil {
		return nil, err
	}

	l.Info("tokens issued",
		slog.String("grant_type", domain.GrantPassword),
		slog.String("client_id", client.ID),
		slog.String("user_id", user.ID),
		slog.String("jti", pair.AccessTokenID),
	)
	return pair, nil
}

// IssueFromRefresh implements the refresh_token grant. Unless reuse is
// enabled, each refresh token can be exchanged exactly once.
func (s *TokenService) IssueFromRefresh(
	ctx context.Context,
	clientID, clientSecret, refreshToken string,
	requestedScopes []string,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	client, err := s.authenticateClient(clientID, clientSecret, domain.GrantRefreshToken)
	if err != nil {
		l.Info("refresh grant client authentication failed", slog.String("client_id", clientID), slog.Any("error", err))
		return nil, err
	}

	if refreshToken == "" {
		return nil, fmt.Errorf("%w: missing refresh token", ErrInvalidGrant)
	}

	claims, err := s.Verifier.Verify(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGrant, err)
	}
	if !claims.IsRefresh() {
		return nil, fmt.Errorf("%w: not a refresh token", ErrInvalidGrant)
	}
	if claims.ClientID != client.ID {
		l.Warn("refresh token presented by another client",
			slog.String("client_id", client.ID),
			slog.String("issued_to", claims.ClientID),
		)
		return nil, fmt.Errorf("%w: token issued to another client", ErrInvalidGrant)
	}

	scopes, err := narrowScopes(requestedScopes, claims.Scopes)
	if err != nil {
		return nil, err
	}

	// Authorities may have changed since the refresh token was issued
	user, err := s.Users.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidGrant)
		}
		return nil, err
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: inactive user", ErrInvalidGrant)
	}

	// Sign before consuming so a signing failure leaves the token usable
	pair, err := s.mint(client, user, scopes, now)
	if err != nil {
		return nil, err
	}

	if !s.ReuseRefreshTokens {
		fresh, err := s.Consumed.MarkConsumed(ctx, claims.ID, claims.ExpiresAt.Time)
		if err != nil {
			l.Error("failed to mark refresh token consumed", slog.Any("error", err))
			return nil, err
		}
		if !fresh {
			l.Warn("refresh token replay detected",
				slog.String("jti", claims.ID),
				slog.String("user_id", user.ID),
				slog.String("client_id", client.ID),
			)
			return nil, fmt.Errorf("%w: refresh token already used", ErrInvalidGrant)
		}
	}

	if s.ReuseRefreshTokens {
		pair.RefreshToken = refreshToken
		pair.RefreshExpiresIn = claims.ExpiresIn(now)
	}

	l.Info("tokens issued",
		slog.String("grant_type", domain.GrantRefreshToken),
		slog.String("client_id", client.ID),
		slog.String("user_id", user.ID),
		slog.String("jti", pair.AccessTokenID),
	)
	return pair, nil
}

func (s *TokenService) authenticateClient(id, secret, grant string) (domain.Client, error) {
	client, err := s.Clients.Authenticate(id, secret)
	if err != nil {
		return domain.Client{}, err
	}
	if !client.AllowsGrant(grant) {
		return domain.Client{}, ErrUnauthorizedClient
	}
	return client, nil
}

// mint signs a fresh access token and its companion refresh token.
func (s *TokenService) mint(client domain.Client, user domain.User, scopes []string, now time.Time) (*domain.TokenPair, error) {
	access := jwtx.NewClaims(jwtx.UseAccess, user.ID, user.Username, client.ID, s.Issuer,
		user.Authorities, scopes, client.AccessTokenTTL, now)
	accessToken, err := s.Signer.Sign(access)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwtx.NewClaims(jwtx.UseRefresh, user.ID, user.Username, client.ID, s.Issuer,
		user.Authorities, scopes, client.RefreshTokenTTL, now)
	refresh.ATI = access.ID
	refreshToken, err := s.Signer.Sign(refresh)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessTokenID:    access.ID,
		ExpiresIn:        client.AccessTokenTTL,
		RefreshExpiresIn: client.RefreshTokenTTL,
		Scope:            strings.Join(scopes, " "),
	}, nil
}

// narrowScopes returns the requested scopes when all of them are allowed, or
// every allowed scope when none were requested.
func narrowScopes(requested, allowed []string) ([]string, error) {
	if len(requested) == 0 {
		return slices.Clone(allowed), nil
	}

	out := make([]string, 0, len(requested))
	for _, s := range requested {
		if !slices.Contains(allowed, s) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidScope, s)
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out, nil
}
