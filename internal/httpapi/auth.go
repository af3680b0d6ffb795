package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Identity is what an Authenticator learned about the caller.
type Identity struct {
	IsAdmin bool
}

// Authenticator decides whether a request may use the admin API.
type Authenticator interface {
	Authenticate(r *http.Request) (Identity, error)
}

// TokenAuthenticator grants admin to requests carrying
// "Authorization: Bearer <Token>". An empty Token grants nothing.
type TokenAuthenticator struct {
	Token string
}

// Authenticate implements Authenticator.
func (a TokenAuthenticator) Authenticate(r *http.Request) (Identity, error) {
	if a.Token == "" {
		return Identity{}, nil
	}
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return Identity{}, nil
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(a.Token)) == 1 {
		return Identity{IsAdmin: true}, nil
	}
	return Identity{}, nil
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.auth.Authenticate(r)
		if err != nil {
			writeError(w, http.StatusBadGateway, "authentication unavailable")
			return
		}
		if !id.IsAdmin {
			writeError(w, http.StatusUnauthorized, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
