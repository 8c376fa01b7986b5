package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const deviceCookie = "riddle_device"

// deviceID returns the device identity from the session cookie, minting one
// on first contact. The id only namespaces persistence; there is no account
// behind it.
func deviceID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(deviceCookie); err == nil && c.Value != "" {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
