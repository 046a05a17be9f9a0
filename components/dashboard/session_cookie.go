package dashboard

import (
	"net/http"
	"strings"
)

// DefaultSessionCookie names the cookie carrying the session id.
const DefaultSessionCookie = "logidash_session"

// SessionHeader lets machine clients pass a session id without cookies.
const SessionHeader = "X-Session-ID"

// SessionIDFromCookieHeader extracts the named cookie from a raw Cookie
// header value.
func SessionIDFromCookieHeader(header, name string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return ""
	}
	for _, cookie := range cookies {
		if cookie.Name == name {
			return strings.TrimSpace(cookie.Value)
		}
	}
	return ""
}

// NewSessionCookie builds the cookie pinning a browser to its session.
func NewSessionCookie(name, id, path string, secure bool) *http.Cookie {
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     path,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
