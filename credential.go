package podpointclient

import "time"

// Credential is the access-token lifecycle unit. It is replaced wholesale on
// every successful authentication or refresh, never mutated field by field.
// The expiry is stored already shortened by the safety margin, so freshness
// is a plain now-before-expiry comparison.
type Credential struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// IsFresh reports whether the token can be used as-is: token and expiry must
// both be set and now must be strictly before expiry.
func (c Credential) IsFresh(now time.Time) bool {
	return c.AccessToken != "" && !c.Expiry.IsZero() && now.Before(c.Expiry)
}

// Expired reports whether a previously issued token has run out, as opposed
// to never having been set. The distinction picks the refresh grant over a
// fresh password login.
func (c Credential) Expired(now time.Time) bool {
	return c.AccessToken != "" && !c.Expiry.IsZero() && !now.Before(c.Expiry)
}

// Hash identifies the access token without exposing it, used to bind a
// session to the credential that produced it.
func (c Credential) Hash() string {
	if c.AccessToken == "" {
		return ""
	}
	return GetSHA256Hash(c.AccessToken)
}
