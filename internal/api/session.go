package api

import (
	"net/http"

	"github.com/Hares-2088/team-training-sub000/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

// ActiveTeamCookieName holds the signed (teamId, role) pair scoping UI views.
const ActiveTeamCookieName = "active_team"

// sessionMaxAge is shared by the identity and active-team cookies.
const sessionMaxAge = 7 * 24 * 60 * 60 // seconds

// ActiveTeamState is the payload of the active-team cookie. It is a cached
// UI hint: membership can change after it was written, so it must never be
// trusted for authorization.
type ActiveTeamState struct {
	TeamID string          `json:"teamId"`
	Role   domain.TeamRole `json:"role"`
}

// ActiveTeamCodec signs and verifies the active-team cookie.
type ActiveTeamCodec struct {
	sc         *securecookie.SecureCookie
	production bool
}

// NewActiveTeamCodec builds a codec from the configured keys. blockKey may be
// nil, in which case the cookie is signed but not encrypted.
func NewActiveTeamCodec(hashKey, blockKey []byte, production bool) *ActiveTeamCodec {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(sessionMaxAge)
	return &ActiveTeamCodec{sc: sc, production: production}
}

// Write persists the active-team pair as a signed cookie.
func (a *ActiveTeamCodec) Write(c *gin.Context, state ActiveTeamState) error {
	encoded, err := a.sc.Encode(ActiveTeamCookieName, state)
	if err != nil {
		return err
	}
	a.setCookie(c, encoded, sessionMaxAge)
	return nil
}

// Read decodes the cookie. A missing or tampered cookie reads as absent.
// This is a pure session read; it performs no store access.
func (a *ActiveTeamCodec) Read(c *gin.Context) (ActiveTeamState, bool) {
	cookie, err := c.Cookie(ActiveTeamCookieName)
	if err != nil {
		return ActiveTeamState{}, false
	}
	var state ActiveTeamState
	if err := a.sc.Decode(ActiveTeamCookieName, cookie, &state); err != nil {
		return ActiveTeamState{}, false
	}
	return state, true
}

// Clear drops the cookie.
func (a *ActiveTeamCodec) Clear(c *gin.Context) {
	a.setCookie(c, "", -1)
}

func (a *ActiveTeamCodec) setCookie(c *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if a.production {
		sameSite = http.SameSiteStrictMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(ActiveTeamCookieName, value, maxAge, "/", "", a.production, true)
}
