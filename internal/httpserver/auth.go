package httpserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "solver_session"

// ctxSessionKey is the context key type for the authenticated session ID.
type ctxSessionKey struct{}

var errNoSession = errors.New("no session")

// signSessionToken creates an HS256 JWT carrying the board ID in "sid".
func (s *Server) signSessionToken(sessionID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.JWTExpiry)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseSessionToken validates a token and returns its session ID.
func (s *Server) parseSessionToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errNoSession
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errNoSession
	}
	return sid, nil
}

// setSessionCookie mirrors the token into an HttpOnly cookie for browser clients.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireSession enforces a valid session token and injects the board ID
// into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sid, err := s.parseSessionToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(ctx context.Context) string {
	sid, _ := ctx.Value(ctxSessionKey{}).(string)
	return sid
}

// requireAdmin checks HTTP basic credentials against the configured user
// and bcrypt hash. With no hash configured the admin routes are closed.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminPasswordHash == "" {
			writeError(w, http.StatusForbidden, "admin_disabled")
			return
		}
		user, pw, ok := r.BasicAuth()
		if !ok || !s.checkAdmin(user, pw) {
			hlog.FromRequest(r).Warn().Str("user", user).Msg("admin auth failed")
			w.Header().Set("WWW-Authenticate", `Basic realm="solver-admin"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkAdmin(user, pw string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.opts.AdminUser)) == 1
	pwOK := bcrypt.CompareHashAndPassword([]byte(s.opts.AdminPasswordHash), []byte(pw)) == nil
	return userOK && pwOK
}
