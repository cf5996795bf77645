package podpointclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// expirySafetyMargin is subtracted from the provider-reported TTL when the
// expiry instant is computed, so a token is treated as expired slightly
// before the provider does.
const expirySafetyMargin = 10 * time.Second

// Auth manages the full credential lifecycle for one user: the identity
// provider token, the backend session bound to it, and the decision of when
// to refresh, re-login or reuse. All entry points are serialized so two
// concurrent callers never trigger duplicate exchanges; the second caller
// waits and then passes the freshness check rebuilt by the first.
type Auth struct {
	Email    string
	Password string

	mu         sync.Mutex
	credential Credential
	session    *Session

	wrapper   *APIWrapper
	endpoints Endpoints
	clock     Time
	logger    zerolog.Logger
}

func NewAuth(email string, password string, wrapper *APIWrapper, endpoints Endpoints, clock Time, logger zerolog.Logger) *Auth {
	if clock == nil {
		clock = RealTime{}
	}
	return &Auth{
		Email:     email,
		Password:  password,
		wrapper:   wrapper,
		endpoints: endpoints,
		clock:     clock,
		logger:    logger,
	}
}

// AccessToken returns the current access token, or "" before the first
// successful exchange.
func (a *Auth) AccessToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credential.AccessToken
}

// UserID returns the backend user id resolved by the session exchange.
func (a *Auth) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ""
	}
	return a.session.UserID
}

// SessionID returns the current backend session id.
func (a *Auth) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ""
	}
	return a.session.SessionID
}

// Credential returns a copy of the current credential.
func (a *Auth) Credential() Credential {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.credential
}

// EnsureValidCredentials makes sure a fresh access token and a session bound
// to it are available, exchanging credentials with the identity provider and
// the backend only when needed. It returns true on success; any failure
// during the exchanges propagates as a typed error.
func (a *Auth) EnsureValidCredentials(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.UTCNow()
	if a.ready(now) {
		return true, nil
	}

	a.logger.Debug().Msg("updating access token")
	if err := a.updateAccessToken(ctx, now); err != nil {
		a.logger.Error().Err(err).Msg("error updating access token")
		return false, err
	}
	a.logger.Debug().Time("expiry", a.credential.Expiry).Msg("updated access token")

	// A refreshed token invalidates any previous session, even though the
	// session endpoint itself never expires them.
	session := NewSession(a.Email, a.Password, a.credential.AccessToken, a.wrapper, a.endpoints.APIBase, a.logger)
	if err := session.Create(ctx); err != nil {
		a.logger.Error().Err(err).Msg("error creating session")
		return false, err
	}
	a.session = session

	return true, nil
}

// ready reports whether the credential is fresh and the current session was
// produced by exactly that credential.
func (a *Auth) ready(now time.Time) bool {
	return a.credential.IsFresh(now) &&
		a.session != nil &&
		a.session.BoundTokenHash == a.credential.Hash()
}

func (a *Auth) updateAccessToken(ctx context.Context, now time.Time) error {
	if a.credential.RefreshToken != "" && a.credential.Expired(now) {
		return a.refreshGrant(ctx, now)
	}
	return a.passwordGrant(ctx, now)
}

// passwordGrant exchanges email and password for a fresh token. Google's
// password-verify endpoint responds with camelCase fields and a string TTL.
func (a *Auth) passwordGrant(ctx context.Context, now time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"email":             a.Email,
		"password":          a.Password,
		"returnSecureToken": true,
	})
	if err != nil {
		return err
	}

	target := a.endpoints.GoogleBase + PathPasswordVerify
	params := url.Values{"key": {GoogleAPIKey}}
	resp, err := a.wrapper.Post(ctx, target, params, payload, defaultHeaders(), ErrorKindAuth, StatusOnly(http.StatusOK))
	if err != nil {
		return err
	}

	var body struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    any    `json:"expiresIn"`
	}
	if err := resp.JSON(&body); err != nil {
		return &AuthError{Status: resp.StatusCode, Body: fmt.Sprintf("Error processing access token response. %s", err)}
	}

	return a.storeCredential(resp.StatusCode, body.IDToken, "idToken", body.RefreshToken, body.ExpiresIn, "expiresIn", now)
}

// refreshGrant trades the held refresh token for a new access token. The
// secure-token endpoint takes a form body and answers in snake_case.
func (a *Auth) refreshGrant(ctx context.Context, now time.Time) error {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", a.credential.RefreshToken)

	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	target := a.endpoints.GoogleTokenBase + PathToken
	params := url.Values{"key": {GoogleAPIKey}}
	resp, err := a.wrapper.Post(ctx, target, params, []byte(form.Encode()), headers, ErrorKindAuth, StatusOnly(http.StatusOK))
	if err != nil {
		return err
	}

	var body struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    any    `json:"expires_in"`
	}
	if err := resp.JSON(&body); err != nil {
		return &AuthError{Status: resp.StatusCode, Body: fmt.Sprintf("Error processing access token response. %s", err)}
	}

	return a.storeCredential(resp.StatusCode, body.IDToken, "id_token", body.RefreshToken, body.ExpiresIn, "expires_in", now)
}

// storeCredential normalizes either grant shape into the single Credential
// form and replaces the held credential atomically.
func (a *Auth) storeCredential(status int, token string, tokenField string, refreshToken string, expiresIn any, expiresField string, now time.Time) error {
	if token == "" {
		return &AuthError{Status: status, Body: fmt.Sprintf("Error processing access token response. %s not found in json.", tokenField)}
	}

	ttl, err := parseExpiresIn(expiresIn)
	if err != nil {
		return &AuthError{Status: status, Body: fmt.Sprintf("Error processing access token response. When calculating expiry date, got: %s.", err)}
	}
	if ttl == 0 {
		return &AuthError{Status: status, Body: fmt.Sprintf("Error processing access token response. %s not found in json.", expiresField)}
	}

	a.credential = Credential{
		AccessToken:  token,
		RefreshToken: refreshToken,
		Expiry:       now.Add(time.Duration(ttl)*time.Second - expirySafetyMargin),
	}

	a.debugLogTokenClaims(token)
	return nil
}

// parseExpiresIn accepts the TTL as either a JSON number or a numeric
// string; Google uses both across the two grant shapes. A zero return with a
// nil error means the field was absent.
func parseExpiresIn(v any) (int64, error) {
	switch value := v.(type) {
	case nil:
		return 0, nil
	case string:
		ttl, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric expiry %q", value)
		}
		return ttl, nil
	case float64:
		return int64(value), nil
	case json.Number:
		ttl, err := value.Int64()
		if err != nil {
			return 0, fmt.Errorf("non-numeric expiry %q", value.String())
		}
		return ttl, nil
	default:
		return 0, fmt.Errorf("non-numeric expiry of type %T", v)
	}
}

// debugLogTokenClaims peeks, without verification, at the identity token's
// claims. Logging only; identity tokens that are not JWTs are skipped.
func (a *Auth) debugLogTokenClaims(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil || parsed == nil || parsed.Claims == nil {
		return
	}
	subject, _ := parsed.Claims.GetSubject()
	expiry, _ := parsed.Claims.GetExpirationTime()
	event := a.logger.Debug().Str("subject", subject)
	if expiry != nil {
		event = event.Time("token_expiry", expiry.Time)
	}
	event.Msg("identity token claims")
}
