package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"examportal/api"
	"examportal/middleware"
	"examportal/models"
	"examportal/session"

	"github.com/gofiber/fiber/v2"
)

type testForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
}

// questionFormView carries the question form state into the template, with
// options padded to the editor's fixed slot count.
type questionFormView struct {
	QuestionID    int
	Text          string
	CategoryID    int
	ImageURL      string
	TableData     string
	Slots         models.OptionSlots
	CorrectAnswer string
}

func ShowTestEditor(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	isNew := c.Params("testId") == "new"

	data, err := loadEditorData(c, sess, isNew)
	if err != nil {
		return err
	}

	// Editing an existing question pre-fills the form from the record.
	if qid, convErr := strconv.Atoi(c.Query("question")); convErr == nil {
		if questions, ok := data["Questions"].([]models.Question); ok {
			for _, q := range questions {
				if q.ID == qid {
					data["Form"] = questionFormFrom(q)
					data["ShowForm"] = true
					break
				}
			}
		}
	}
	if c.Query("add") != "" {
		data["ShowForm"] = true
	}

	return c.Render("teacher/editor", flash(c, data))
}

func SaveTest(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	isNew := c.Params("testId") == "new"
	ctx := c.UserContext()

	var form testForm
	if err := c.BodyParser(&form); err != nil {
		return redirectErr(c, editorPath(c.Params("testId")), "Cannot parse form")
	}
	if err := validate.Struct(form); err != nil {
		return redirectErr(c, editorPath(c.Params("testId")), "Test title is required")
	}

	req := api.TestRequest{Title: form.Title, Description: form.Description}
	if isNew {
		created, err := api.CreateTest(ctx, sess.Token, req)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return err
			}
			return redirectErr(c, editorPath("new"), backendDetail(err, "Failed to save test"))
		}
		return redirectMsg(c, editorPath(strconv.Itoa(created.ID)), "Test created")
	}

	testID, err := c.ParamsInt("testId")
	if err != nil {
		return fiber.ErrNotFound
	}
	if _, err := api.UpdateTest(ctx, sess.Token, testID, req); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, editorPath(c.Params("testId")), backendDetail(err, "Failed to save test"))
	}
	return redirectMsg(c, editorPath(c.Params("testId")), "Test saved")
}

func SaveQuestion(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	// A not-yet-persisted test has no id to attach questions to.
	if c.Params("testId") == "new" {
		return redirectErr(c, editorPath("new"), "Please save the test first before adding questions")
	}
	testID, err := c.ParamsInt("testId")
	if err != nil {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()

	form := parseQuestionForm(c)
	renderWithForm := func(errMsg string) error {
		data, loadErr := loadEditorData(c, sess, false)
		if loadErr != nil {
			return loadErr
		}
		data["Form"] = form
		data["ShowForm"] = true
		data["Err"] = errMsg
		return c.Render("teacher/editor", data)
	}

	if form.Text == "" || form.CategoryID <= 0 {
		return renderWithForm("Question text and category are required")
	}
	if err := form.Slots.Validate(form.CorrectAnswer); err != nil {
		switch {
		case errors.Is(err, models.ErrTooFewOptions):
			return renderWithForm("Please provide at least 2 answer options")
		default:
			return renderWithForm("Please select a correct answer from the provided options")
		}
	}
	var tableData json.RawMessage
	if form.TableData != "" {
		if !json.Valid([]byte(form.TableData)) {
			return renderWithForm("Table data must be valid JSON")
		}
		tableData = json.RawMessage(form.TableData)
	}

	req := api.QuestionRequest{
		TestID:        testID,
		CategoryID:    form.CategoryID,
		Text:          form.Text,
		ImageURL:      form.ImageURL,
		TableData:     tableData,
		Options:       form.Slots.Trim(),
		CorrectAnswer: form.CorrectAnswer,
	}

	if form.QuestionID > 0 {
		if _, err := api.UpdateQuestion(ctx, sess.Token, form.QuestionID, req); err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return err
			}
			return renderWithForm(backendDetail(err, "Failed to save question"))
		}
		return redirectMsg(c, editorPath(c.Params("testId")), "Question updated")
	}

	if _, err := api.CreateQuestion(ctx, sess.Token, req); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return renderWithForm(backendDetail(err, "Failed to save question"))
	}
	return redirectMsg(c, editorPath(c.Params("testId")), "Question added")
}

func DeleteQuestion(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	questionID, err := c.ParamsInt("questionId")
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := api.DeleteQuestion(c.UserContext(), sess.Token, questionID); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return redirectErr(c, editorPath(c.Params("testId")), backendDetail(err, "Failed to delete question"))
	}
	return redirectMsg(c, editorPath(c.Params("testId")), "Question deleted")
}

// loadEditorData fetches everything the editor page shows: categories always,
// the test and its questions once it exists.
func loadEditorData(c *fiber.Ctx, sess *session.Session, isNew bool) (fiber.Map, error) {
	ctx := c.UserContext()

	if isNew {
		categories, err := api.GetCategories(ctx, sess.Token)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				return nil, err
			}
			return fiber.Map{"User": sess.User, "IsNew": true, "Err": "Failed to load categories"}, nil
		}
		return fiber.Map{"User": sess.User, "IsNew": true, "Categories": categories, "Form": questionFormView{}}, nil
	}

	testID, err := c.ParamsInt("testId")
	if err != nil {
		return nil, fiber.ErrNotFound
	}

	var (
		categories []models.Category
		test       *models.Test
		questions  []models.Question
		errs       [3]error
		wg         sync.WaitGroup
	)
	wg.Add(3)
	go func() { defer wg.Done(); categories, errs[0] = api.GetCategories(ctx, sess.Token) }()
	go func() { defer wg.Done(); test, errs[1] = api.GetTest(ctx, sess.Token, testID) }()
	go func() { defer wg.Done(); questions, errs[2] = api.GetQuestions(ctx, sess.Token, testID) }()
	wg.Wait()

	for _, err := range errs {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, err
		}
	}
	if errs[0] != nil || errs[1] != nil || errs[2] != nil {
		return fiber.Map{"User": sess.User, "Err": "Failed to load test data"}, nil
	}

	return fiber.Map{
		"User":       sess.User,
		"Test":       test,
		"Questions":  questions,
		"Categories": categories,
		"Form":       questionFormView{},
	}, nil
}

func parseQuestionForm(c *fiber.Ctx) questionFormView {
	form := questionFormView{
		Text:          c.FormValue("text"),
		ImageURL:      c.FormValue("image_url"),
		TableData:     c.FormValue("table_data"),
		CorrectAnswer: c.FormValue("correct_answer"),
	}
	form.QuestionID, _ = strconv.Atoi(c.FormValue("question_id"))
	form.CategoryID, _ = strconv.Atoi(c.FormValue("category_id"))
	for i := 0; i < models.OptionSlotCount; i++ {
		form.Slots[i] = c.FormValue("option_" + strconv.Itoa(i))
	}
	return form
}

func questionFormFrom(q models.Question) questionFormView {
	return questionFormView{
		QuestionID:    q.ID,
		Text:          q.Text,
		CategoryID:    q.CategoryID,
		ImageURL:      q.ImageURL,
		TableData:     q.TableDataPretty(),
		Slots:         models.PadOptions(q.Options),
		CorrectAnswer: q.CorrectAnswer,
	}
}

func editorPath(testID string) string {
	return "/teacher/tests/" + testID + "/edit"
}
