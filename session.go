package podpointclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Session is the backend application handle required by every domain call.
// It is valid only paired with the credential that produced it; BoundTokenHash
// records that pairing.
type Session struct {
	Email          string
	Password       string
	AccessToken    string
	SessionID      string
	UserID         string
	BoundTokenHash string

	wrapper *APIWrapper
	apiBase string
	logger  zerolog.Logger
}

func NewSession(email string, password string, accessToken string, wrapper *APIWrapper, apiBase string, logger zerolog.Logger) *Session {
	return &Session{
		Email:       email,
		Password:    password,
		AccessToken: accessToken,
		wrapper:     wrapper,
		apiBase:     apiBase,
		logger:      logger,
	}
}

type sessionEnvelope struct {
	Sessions *struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
	} `json:"sessions"`
}

// Create exchanges the access token plus credentials for a session id and
// resolved user id.
func (s *Session) Create(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"email":    s.Email,
		"password": s.Password,
	})
	if err != nil {
		return err
	}

	resp, err := s.wrapper.Post(ctx, s.apiBase+PathSessions, nil, payload, authHeaders(s.AccessToken), ErrorKindSession, StatusOnly(http.StatusOK))
	if err != nil {
		return err
	}

	var envelope sessionEnvelope
	if err := resp.JSON(&envelope); err != nil {
		return &SessionError{Status: resp.StatusCode, Body: fmt.Sprintf("Error processing session response. %s", err)}
	}

	// An absent envelope cannot be told apart from a degenerate empty success;
	// both surface as a session error naming the missing key.
	if envelope.Sessions == nil {
		return &SessionError{Status: resp.StatusCode, Body: "Error processing session response. Unable to find key: sessions within json."}
	}
	if envelope.Sessions.ID == "" {
		return &SessionError{Status: resp.StatusCode, Body: "Error processing session response. Unable to find key: id within json."}
	}
	if envelope.Sessions.UserID == "" {
		return &SessionError{Status: resp.StatusCode, Body: "Error processing session response. Unable to find key: user_id within json."}
	}

	s.SessionID = envelope.Sessions.ID
	s.UserID = envelope.Sessions.UserID
	s.BoundTokenHash = GetSHA256Hash(s.AccessToken)

	s.logger.Debug().Str("session_id", s.SessionID).Str("user_id", s.UserID).Msg("session established")
	return nil
}
