package routes

import (
	"examportal/handlers"
	"examportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	teacher := app.Group("/teacher", middleware.RequireLogin(), middleware.TeacherRequired())

	teacher.Get("/dashboard", handlers.TeacherDashboard)
	teacher.Post("/users", handlers.CreateUser)
	teacher.Post("/categories", handlers.CreateCategory)
	teacher.Post("/categories/:categoryId/delete", handlers.DeleteCategory)

	teacher.Get("/tests", handlers.TestManagement)
	teacher.Post("/tests/:testId/delete", handlers.DeleteTest)
	teacher.Get("/tests/:testId/edit", handlers.ShowTestEditor)
	teacher.Post("/tests/:testId/save", handlers.SaveTest)
	teacher.Post("/tests/:testId/questions", handlers.SaveQuestion)
	teacher.Post("/tests/:testId/questions/:questionId/delete", handlers.DeleteQuestion)

	teacher.Get("/student/:studentId", handlers.StudentReview)
	teacher.Post("/student/:studentId/recommendation", handlers.SaveRecommendation)
}
