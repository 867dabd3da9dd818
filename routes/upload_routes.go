package routes

import (
	"examportal/handlers"
	"examportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	upload := app.Group("/upload", middleware.RequireLogin(), middleware.TeacherRequired())

	upload.Post("/image", handlers.UploadImage)
	upload.Delete("/image/:filename", handlers.DeleteImage)
}
