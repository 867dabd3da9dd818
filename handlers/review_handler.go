package handlers

import (
	"errors"
	"strconv"

	"examportal/api"
	"examportal/middleware"
	"examportal/models"

	"github.com/gofiber/fiber/v2"
)

// reviewRow pairs one question with the student's recorded answer for the
// per-question comparison table.
type reviewRow struct {
	Question      models.Question
	StudentAnswer string
	IsCorrect     bool
}

func StudentReview(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	studentID, err := c.ParamsInt("studentId")
	if err != nil {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()

	overview, err := api.GetStudentResults(ctx, sess.Token, studentID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Render("teacher/review", fiber.Map{"User": sess.User, "Err": "Failed to load student data"})
	}

	data := flash(c, fiber.Map{
		"User":      sess.User,
		"Student":   overview.Student,
		"Results":   overview.Results,
		"StudentID": studentID,
	})

	// Detail is a dependent fetch, issued only once a result is selected.
	if testID, convErr := strconv.Atoi(c.Query("test_id")); convErr == nil {
		detail, err := api.GetStudentTestAnswers(ctx, sess.Token, studentID, testID)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return err
			}
			data["Err"] = "Failed to load test details"
			return c.Render("teacher/review", data)
		}

		answerByQuestion := make(map[int]models.StudentAnswer, len(detail.Answers))
		for _, a := range detail.Answers {
			answerByQuestion[a.QuestionID] = a
		}
		rows := make([]reviewRow, 0, len(detail.Questions))
		for _, q := range detail.Questions {
			a := answerByQuestion[q.ID]
			rows = append(rows, reviewRow{Question: q, StudentAnswer: a.Answer, IsCorrect: a.IsCorrect})
		}

		data["Detail"] = detail
		data["Rows"] = rows
		data["Categories"] = categoryCards(detail.Result.CategoryBreakdown)
		data["SelectedTestID"] = testID
	}

	return c.Render("teacher/review", data)
}

func SaveRecommendation(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	studentID, err := c.ParamsInt("studentId")
	if err != nil {
		return fiber.ErrNotFound
	}

	resultID, err := strconv.Atoi(c.FormValue("result_id"))
	if err != nil {
		return redirectErr(c, reviewPath(studentID, c.FormValue("test_id")), "No test result found to update")
	}

	recommendation := c.FormValue("recommendation")
	if err := api.UpdateRecommendation(c.UserContext(), sess.Token, resultID, recommendation); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, reviewPath(studentID, c.FormValue("test_id")), backendDetail(err, "Failed to save recommendation"))
	}

	// The page refetches on redirect, so the shown value is the saved one.
	return redirectMsg(c, reviewPath(studentID, c.FormValue("test_id")), "Recommendation saved")
}

func reviewPath(studentID int, testID string) string {
	path := "/teacher/student/" + strconv.Itoa(studentID)
	if testID != "" {
		path += "?test_id=" + testID
	}
	return path
}
