package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"examportal/api"
	"examportal/middleware"
	"examportal/models"
	"examportal/utils"

	"github.com/gofiber/fiber/v2"
)

// testCard is the dashboard's joined view of a test and the student's result
// for it, built once per page load.
type testCard struct {
	models.Test
	Completed bool
	Score     float64
}

func StudentDashboard(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	ctx := c.UserContext()

	var (
		tests      []models.Test
		results    []models.TestResult
		testsErr   error
		resultsErr error
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tests, testsErr = api.GetAvailableTests(ctx, sess.Token)
	}()
	go func() {
		defer wg.Done()
		results, resultsErr = api.GetMyResults(ctx, sess.Token)
	}()
	wg.Wait()

	for _, err := range []error{testsErr, resultsErr} {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
	}
	if testsErr != nil || resultsErr != nil {
		return c.Render("student/dashboard", fiber.Map{"User": sess.User, "Err": "Failed to load dashboard data"})
	}

	resultByTest := make(map[int]models.TestResult, len(results))
	for _, r := range results {
		resultByTest[r.TestID] = r
	}
	cards := make([]testCard, 0, len(tests))
	for _, t := range tests {
		card := testCard{Test: t}
		if r, ok := resultByTest[t.ID]; ok {
			card.Completed = true
			card.Score = r.Score
		}
		cards = append(cards, card)
	}

	return c.Render("student/dashboard", flash(c, fiber.Map{"User": sess.User, "Cards": cards}))
}

func ShowTakeTest(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	testID, err := c.ParamsInt("testId")
	if err != nil {
		return fiber.ErrNotFound
	}

	questions, err := api.GetTestQuestions(c.UserContext(), sess.Token, testID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Render("student/take_test", fiber.Map{"User": sess.User, "TestID": testID, "Err": "Failed to load test questions"})
	}

	// Answer map starts empty: one entry per question, keyed by question id.
	answers := make(map[int]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = ""
	}

	return c.Render("student/take_test", fiber.Map{
		"User":      sess.User,
		"TestID":    testID,
		"Questions": questions,
		"Answers":   answers,
	})
}

func SubmitTakeTest(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	testID, err := c.ParamsInt("testId")
	if err != nil {
		return fiber.ErrNotFound
	}
	ctx := c.UserContext()

	questions, err := api.GetTestQuestions(ctx, sess.Token, testID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Render("student/take_test", fiber.Map{"User": sess.User, "TestID": testID, "Err": "Failed to load test questions"})
	}

	answers := make(map[int]string, len(questions))
	missing := 0
	for _, q := range questions {
		answer := c.FormValue("question_" + strconv.Itoa(q.ID))
		answers[q.ID] = answer
		if answer == "" {
			missing++
		}
	}

	render := func(errMsg string) error {
		return c.Render("student/take_test", fiber.Map{
			"User":      sess.User,
			"TestID":    testID,
			"Questions": questions,
			"Answers":   answers,
			"Err":       errMsg,
		})
	}

	// "Не знаю" is a legitimate answer; only truly unanswered questions block.
	if missing > 0 {
		return render(fmt.Sprintf("Please answer all questions (you can select «%s» if you don't know the answer). %d questions remaining.", models.DontKnowAnswer, missing))
	}

	submission := models.TestSubmission{TestID: testID}
	for _, q := range questions {
		submission.Answers = append(submission.Answers, models.SubmittedAnswer{QuestionID: q.ID, Answer: answers[q.ID]})
	}

	if _, err := api.SubmitTest(ctx, sess.Token, submission); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return render(backendDetail(err, "Failed to submit test"))
	}

	return c.Redirect("/result/" + strconv.Itoa(testID))
}

// categoryCard feeds the per-category grid on the result page.
type categoryCard struct {
	Name string
	models.CategoryStat
}

func ShowTestResult(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	testID, err := c.ParamsInt("testId")
	if err != nil {
		return fiber.ErrNotFound
	}

	detailed, err := api.GetDetailedResult(c.UserContext(), sess.Token, testID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Render("student/result", fiber.Map{"User": sess.User, "Err": "Failed to load test results"})
	}

	return c.Render("student/result", fiber.Map{
		"User":       sess.User,
		"Test":       detailed.Test,
		"Result":     detailed.Result,
		"Questions":  detailed.Questions,
		"Categories": categoryCards(detailed.Result.CategoryBreakdown),
	})
}

func MyResults(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	results, err := api.GetMyResults(c.UserContext(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Render("student/my_results", fiber.Map{"User": sess.User, "Err": "Failed to load results"})
	}

	// Newest attempt first.
	sort.Slice(results, func(i, j int) bool { return results[i].Timestamp.After(results[j].Timestamp) })

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}

	return c.Render("student/my_results", fiber.Map{
		"User":    sess.User,
		"Results": results,
		"Average": utils.AverageScore(scores),
		"Best":    utils.BestScore(scores),
	})
}

func categoryCards(breakdown map[string]models.CategoryStat) []categoryCard {
	cards := make([]categoryCard, 0, len(breakdown))
	for name, stat := range breakdown {
		cards = append(cards, categoryCard{Name: name, CategoryStat: stat})
	}
	sortCategoryCards(cards)
	return cards
}
