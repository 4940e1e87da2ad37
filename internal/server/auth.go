package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/wethinkt/go-palettepro/internal/tuilog"
)

// BearerAuth checks "Authorization: Bearer <token>" on incoming requests.
// A nil *BearerAuth, or one without a token, lets everything through.
type BearerAuth struct {
	// token is consulted per request so a token held in the environment
	// can be rotated without a restart.
	token func() string
	realm string
}

// NewBearerAuth requires token when it is non-empty. Otherwise it falls back
// to TokenEnvVar if that is set at startup, and returns nil when neither is.
func NewBearerAuth(token string) *BearerAuth {
	switch {
	case token != "":
		return &BearerAuth{token: func() string { return token }, realm: "palettepro"}
	case os.Getenv(TokenEnvVar) != "":
		return &BearerAuth{token: func() string { return os.Getenv(TokenEnvVar) }, realm: "palettepro"}
	}
	return nil
}

// Enabled reports whether requests need a token.
func (a *BearerAuth) Enabled() bool { return a != nil }

// providedToken reads the token from the Authorization header, or from
// ?token= because browsers cannot set headers on WebSocket upgrades.
func providedToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if q := r.URL.Query().Get("token"); q != "" {
			return q, ""
		}
		return "", "Missing Authorization header"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "Invalid Authorization header format"
	}
	return strings.TrimSpace(token), ""
}

// check returns "" when r carries the expected token, or the reason it
// does not.
func (a *BearerAuth) check(r *http.Request) string {
	got, problem := providedToken(r)
	if problem != "" {
		return problem
	}
	want := a.token()
	if want == "" {
		return "Server authentication not configured"
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		tuilog.Log.Info("Authentication failed", "remote", r.RemoteAddr, "path", r.URL.Path)
		return "Invalid token"
	}
	return ""
}

// Middleware rejects unauthenticated requests with 401.
func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if problem := a.check(r); problem != "" {
			w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer realm=%q`, a.realm))
			writeError(w, http.StatusUnauthorized, "unauthorized", problem)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GenerateSecureToken returns "palettepro_<yyyymmdd>_" followed by 32
// random bytes in hex.
func GenerateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return fmt.Sprintf("palettepro_%s_%s", time.Now().UTC().Format("20060102"), hex.EncodeToString(b)), nil
}
