package handlers

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"examportal/api"
	"examportal/middleware"
	"examportal/models"

	"github.com/gofiber/fiber/v2"
)

type createUserForm struct {
	Username string `form:"username" validate:"required"`
	Name     string `form:"name" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
	Role     string `form:"role" validate:"required,oneof=student teacher"`
}

type categoryForm struct {
	Name string `form:"name" validate:"required"`
}

func TeacherDashboard(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	ctx := c.UserContext()

	var (
		users      []models.User
		tests      []models.Test
		categories []models.Category
		errs       [3]error
		wg         sync.WaitGroup
	)
	wg.Add(3)
	go func() { defer wg.Done(); users, errs[0] = api.GetUsers(ctx, sess.Token) }()
	go func() { defer wg.Done(); tests, errs[1] = api.GetTests(ctx, sess.Token) }()
	go func() { defer wg.Done(); categories, errs[2] = api.GetCategories(ctx, sess.Token) }()
	wg.Wait()

	for _, err := range errs {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
	}
	if errs[0] != nil || errs[1] != nil || errs[2] != nil {
		return c.Render("teacher/dashboard", fiber.Map{
			"User": sess.User, "Err": "Failed to load dashboard data",
			"Students": []models.User{}, "Teachers": []models.User{},
			"Tests": tests, "Categories": categories,
		})
	}

	var students, teachers []models.User
	for _, u := range users {
		switch u.Role {
		case models.RoleStudent:
			students = append(students, u)
		case models.RoleTeacher:
			teachers = append(teachers, u)
		}
	}

	return c.Render("teacher/dashboard", flash(c, fiber.Map{
		"User":       sess.User,
		"Students":   students,
		"Teachers":   teachers,
		"Tests":      tests,
		"Categories": categories,
	}))
}

func CreateUser(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var form createUserForm
	if err := c.BodyParser(&form); err != nil {
		return redirectErr(c, "/teacher/dashboard", "Cannot parse form")
	}
	if err := validate.Struct(form); err != nil {
		return redirectErr(c, "/teacher/dashboard", "All user fields are required (password at least 6 characters)")
	}

	req := api.CreateUserRequest{
		Username: form.Username,
		Name:     form.Name,
		Password: form.Password,
		Role:     models.Role(form.Role),
	}
	if _, err := api.CreateUser(c.UserContext(), sess.Token, req); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, "/teacher/dashboard", backendDetail(err, "Failed to create user"))
	}
	return redirectMsg(c, "/teacher/dashboard", "User created")
}

func CreateCategory(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var form categoryForm
	if err := c.BodyParser(&form); err != nil {
		return redirectErr(c, "/teacher/dashboard", "Cannot parse form")
	}
	if err := validate.Struct(form); err != nil {
		return redirectErr(c, "/teacher/dashboard", "Category name is required")
	}

	if _, err := api.CreateCategory(c.UserContext(), sess.Token, api.CategoryRequest{Name: form.Name}); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, "/teacher/dashboard", backendDetail(err, "Failed to create category"))
	}
	return redirectMsg(c, "/teacher/dashboard", "Category created")
}

func DeleteCategory(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("categoryId")
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := api.DeleteCategory(c.UserContext(), sess.Token, id); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, "/teacher/dashboard", backendDetail(err, "Failed to delete category"))
	}
	return redirectMsg(c, "/teacher/dashboard", "Category deleted")
}

func TestManagement(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	tests, err := api.GetTests(c.UserContext(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Render("teacher/tests", fiber.Map{"User": sess.User, "Err": "Failed to load tests"})
	}

	return c.Render("teacher/tests", flash(c, fiber.Map{"User": sess.User, "Tests": tests}))
}

func DeleteTest(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("testId")
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := api.DeleteTest(c.UserContext(), sess.Token, id); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, "/teacher/tests", backendDetail(err, "Failed to delete test"))
	}
	return redirectMsg(c, "/teacher/tests", "Test deleted")
}

func redirectMsg(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path + sep(path) + "msg=" + url.QueryEscape(msg))
}

func redirectErr(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path + sep(path) + "err=" + url.QueryEscape(msg))
}

func sep(path string) string {
	if strings.Contains(path, "?") {
		return "&"
	}
	return "?"
}
