package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

// DisplayModeKey holds the request's DisplayMode in its context.
const DisplayModeKey contextKey = "displayMode"

// DisplayMode selects which pricing tracks a page shows.
type DisplayMode string

const (
	ModeClient DisplayMode = "client"
	ModeStaff  DisplayMode = "staff"
)

// modeCookie remembers the last display mode picked with ?mode=.
const modeCookie = "qb_mode"

func parseMode(s string) (DisplayMode, bool) {
	switch DisplayMode(s) {
	case ModeClient, ModeStaff:
		return DisplayMode(s), true
	}
	return "", false
}

// resolveMode reads ?mode= first, then the qb_mode cookie. The default is client.
func resolveMode(r *http.Request) (mode DisplayMode, fromQuery bool) {
	if m, ok := parseMode(r.URL.Query().Get("mode")); ok {
		return m, true
	}
	if c, err := r.Cookie(modeCookie); err == nil {
		if m, ok := parseMode(c.Value); ok {
			return m, false
		}
	}
	return ModeClient, false
}

// GetDisplayMode returns the display mode stored by DisplayModeMiddleware,
// resolving it from the request when the middleware did not run.
func GetDisplayMode(r *http.Request) DisplayMode {
	if m, ok := r.Context().Value(DisplayModeKey).(DisplayMode); ok {
		return m
	}
	m, _ := resolveMode(r)
	return m
}

// IsStaffMode reports whether actual rates and profit should be shown.
func IsStaffMode(r *http.Request) bool {
	return GetDisplayMode(r) == ModeStaff
}

// DisplayModeMiddleware resolves the display mode once per request, stores
// it in the request context and persists an explicit ?mode= choice in a cookie.
func DisplayModeMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		mode, fromQuery := resolveMode(e.Request)
		if fromQuery {
			http.SetCookie(e.Response, &http.Cookie{
				Name:     modeCookie,
				Value:    string(mode),
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 365,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(e.Request.Context(), DisplayModeKey, mode)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}
