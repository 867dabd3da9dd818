package app

import (
	"errors"
	"log"
	"time"

	"examportal/api"
	config "examportal/configs"
	"examportal/routes"
	"examportal/session"
	"examportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
)

// New assembles the web client: views, the backend API client, session
// cookies and all page routes.
func New(cfg *config.Config) *fiber.App {
	api.Init(cfg.BackendURL)

	engine := html.New(cfg.ViewsDir, ".html")
	engine.AddFunc("scoreColor", utils.ScoreColor)
	engine.AddFunc("scoreGrade", utils.ScoreGrade)
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("formatTime", func(t time.Time) string {
		return t.Local().Format("02.01.2006 15:04")
	})

	app := fiber.New(fiber.Config{
		AppName:     "Exam Portal",
		Views:       engine,
		ViewsLayout: "layouts/main",
		// Room for a 5MB image plus multipart framing; the upload handler
		// enforces the 5MB cap itself.
		BodyLimit:    6 * 1024 * 1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler,
	})

	cookieKey := cfg.CookieKey
	if cookieKey == "" {
		cookieKey = encryptcookie.GenerateKey()
		log.Println("Warning: COOKIE_KEY not set, sessions will not survive a restart")
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

	routes.AuthRoutes(app)
	routes.StudentRoutes(app)
	routes.TeacherRoutes(app)
	routes.UploadRoutes(app)

	return app
}

// errorHandler owns the process-wide 401 reaction: clear the session and land
// on the login page, regardless of which page triggered the call.
func errorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		session.Clear(c)
		return c.Redirect("/login")
	}

	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
	return c.Status(code).SendString(err.Error())
}
