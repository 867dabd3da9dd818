package middleware

import (
	"examportal/models"
	"examportal/session"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// RequireLogin gates a page on a rehydrated session. The decision is made on
// every request, nothing is cached.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := session.FromCtx(c)
		if !ok {
			return c.Redirect("/login")
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// TeacherRequired bounces non-teachers to their own dashboard.
func TeacherRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.User.IsTeacher() {
			return c.Redirect(models.RoleStudent.DashboardPath())
		}
		return c.Next()
	}
}

// StudentRequired bounces non-students to the teacher dashboard.
func StudentRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.User.IsStudent() {
			return c.Redirect(models.RoleTeacher.DashboardPath())
		}
		return c.Next()
	}
}

// CurrentSession returns the session placed by RequireLogin, or nil.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}
