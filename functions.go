package podpointclient

import (
	"crypto/sha256"
	"fmt"
	"net/http"
)

const jsonContentType = "application/json; charset=UTF-8"

// defaultHeaders returns the headers carried by every JSON request.
func defaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", jsonContentType)
	return h
}

// authHeaders returns the default headers plus a bearer authorization built
// from the given access token.
func authHeaders(accessToken string) http.Header {
	h := defaultHeaders()
	h.Set("Authorization", "Bearer "+accessToken)
	return h
}

func GetSHA256Hash(s string) string {
	h := sha256.New()
	h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum(nil))
}
