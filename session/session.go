package session

import (
	"encoding/json"
	"time"

	"examportal/models"

	"github.com/gofiber/fiber/v2"
)

// The session lives entirely in cookies so it survives restarts and reloads
// the same way the browser's local storage would. The encryptcookie middleware
// in the app keeps the values opaque.
const (
	tokenCookie = "exam_token"
	userCookie  = "exam_user"

	cookieTTL = 12 * time.Hour
)

// Session is the rehydrated login state for one request.
type Session struct {
	Token string
	User  models.User
}

// Store writes the login state after a successful authentication.
func Store(c *fiber.Ctx, token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	expires := time.Now().Add(cookieTTL)
	c.Cookie(&fiber.Cookie{Name: tokenCookie, Value: token, Expires: expires, HTTPOnly: true, SameSite: "Lax"})
	c.Cookie(&fiber.Cookie{Name: userCookie, Value: string(raw), Expires: expires, HTTPOnly: true, SameSite: "Lax"})
	return nil
}

// FromCtx rehydrates the session from cookies. A token without a readable
// user object counts as no session.
func FromCtx(c *fiber.Ctx) (*Session, bool) {
	token := c.Cookies(tokenCookie)
	raw := c.Cookies(userCookie)
	if token == "" || raw == "" {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || !user.Role.Valid() {
		return nil, false
	}
	return &Session{Token: token, User: user}, true
}

// Clear tears the session down, both on logout and on a backend 401.
func Clear(c *fiber.Ctx) {
	c.ClearCookie(tokenCookie, userCookie)
}
