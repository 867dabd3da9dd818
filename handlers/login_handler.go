package handlers

import (
	"errors"

	"examportal/api"
	"examportal/session"

	"github.com/gofiber/fiber/v2"
)

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func ShowLogin(c *fiber.Ctx) error {
	if sess, ok := session.FromCtx(c); ok {
		return c.Redirect(sess.User.Role.DashboardPath())
	}
	return c.Render("login", flash(c, fiber.Map{}))
}

func Login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Render("login", fiber.Map{"Err": "Cannot parse form"})
	}
	if err := validate.Struct(form); err != nil {
		return c.Render("login", fiber.Map{"Err": "Username and password are required", "Username": form.Username})
	}

	login, err := api.Login(c.UserContext(), api.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		// A 401 here is a wrong password, not an expired session.
		if errors.Is(err, api.ErrUnauthorized) {
			return c.Render("login", fiber.Map{"Err": "Invalid credentials", "Username": form.Username})
		}
		return c.Render("login", fiber.Map{"Err": backendDetail(err, "Login failed"), "Username": form.Username})
	}
	if !login.User.Role.Valid() {
		return c.Render("login", fiber.Map{"Err": "Unknown account role", "Username": form.Username})
	}

	if err := session.Store(c, login.AccessToken, login.User); err != nil {
		return err
	}
	return c.Redirect(login.User.Role.DashboardPath())
}

func Logout(c *fiber.Ctx) error {
	session.Clear(c)
	return c.Redirect("/login")
}
