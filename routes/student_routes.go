package routes

import (
	"examportal/handlers"
	"examportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	login := middleware.RequireLogin()
	student := middleware.StudentRequired()

	app.Get("/dashboard", login, student, handlers.StudentDashboard)
	app.Get("/test/:testId", login, student, handlers.ShowTakeTest)
	app.Post("/test/:testId", login, student, handlers.SubmitTakeTest)
	app.Get("/result/:testId", login, student, handlers.ShowTestResult)
	app.Get("/my-results", login, student, handlers.MyResults)
}
