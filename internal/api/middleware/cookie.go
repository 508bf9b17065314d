package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the name of the cookie carrying the signed token
const SessionCookieName = "session"

// CookieConfig holds configuration for the session cookie
type CookieConfig struct {
	Secret string
	Secure bool
}

// SessionCookies signs and verifies the session cookie. The cookie value is
// the token followed by a dot and the base64url HMAC-SHA256 of the token.
type SessionCookies struct {
	secret []byte
	secure bool
}

// NewSessionCookies creates a new SessionCookies
func NewSessionCookies(cfg CookieConfig) *SessionCookies {
	return &SessionCookies{
		secret: []byte(cfg.Secret),
		secure: cfg.Secure,
	}
}

// Set writes a signed cookie for token that expires with the session
func (c *SessionCookies) Set(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    c.sign(token),
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the token from a verified session cookie, or "" if the
// cookie is absent, unsigned or forged.
func (c *SessionCookies) Token(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.verify(cookie.Value)
}

func (c *SessionCookies) sign(token string) string {
	return token + "." + base64.RawURLEncoding.EncodeToString(c.mac(token))
}

func (c *SessionCookies) verify(value string) string {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return ""
	}
	token, sig := value[:i], value[i+1:]

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ""
	}
	if !hmac.Equal(got, c.mac(token)) {
		return ""
	}
	return token
}

func (c *SessionCookies) mac(token string) []byte {
	h := hmac.New(sha256.New, c.secret)
	_, _ = h.Write([]byte(token))
	return h.Sum(nil)
}
