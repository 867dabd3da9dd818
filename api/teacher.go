package api

import (
	"context"
	"encoding/json"
	"strconv"

	"examportal/models"
)

type CreateUserRequest struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type TestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type QuestionRequest struct {
	TestID        int             `json:"test_id"`
	CategoryID    int             `json:"category_id"`
	Text          string          `json:"text"`
	ImageURL      string          `json:"image_url,omitempty"`
	TableData     json.RawMessage `json:"table_data,omitempty"`
	Options       []string        `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
}

func GetUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	resp, err := request(ctx, token).SetResult(&users).Get("/teacher/users/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return users, nil
}

func CreateUser(ctx context.Context, token string, req CreateUserRequest) (*models.User, error) {
	var user models.User
	resp, err := request(ctx, token).SetBody(req).SetResult(&user).Post("/teacher/users/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}

func GetCategories(ctx context.Context, token string) ([]models.Category, error) {
	var categories []models.Category
	resp, err := request(ctx, token).SetResult(&categories).Get("/teacher/categories/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return categories, nil
}

func CreateCategory(ctx context.Context, token string, req CategoryRequest) (*models.Category, error) {
	var category models.Category
	resp, err := request(ctx, token).SetBody(req).SetResult(&category).Post("/teacher/categories/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &category, nil
}

func UpdateCategory(ctx context.Context, token string, id int, req CategoryRequest) (*models.Category, error) {
	var category models.Category
	resp, err := request(ctx, token).SetBody(req).SetResult(&category).
		Put("/teacher/categories/" + strconv.Itoa(id))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &category, nil
}

func DeleteCategory(ctx context.Context, token string, id int) error {
	resp, err := request(ctx, token).Delete("/teacher/categories/" + strconv.Itoa(id))
	return check(resp, err)
}

func GetTests(ctx context.Context, token string) ([]models.Test, error) {
	var tests []models.Test
	resp, err := request(ctx, token).SetResult(&tests).Get("/teacher/tests/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return tests, nil
}

func GetTest(ctx context.Context, token string, id int) (*models.Test, error) {
	var test models.Test
	resp, err := request(ctx, token).SetResult(&test).Get("/teacher/tests/" + strconv.Itoa(id))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &test, nil
}

func CreateTest(ctx context.Context, token string, req TestRequest) (*models.Test, error) {
	var test models.Test
	resp, err := request(ctx, token).SetBody(req).SetResult(&test).Post("/teacher/tests/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &test, nil
}

func UpdateTest(ctx context.Context, token string, id int, req TestRequest) (*models.Test, error) {
	var test models.Test
	resp, err := request(ctx, token).SetBody(req).SetResult(&test).
		Put("/teacher/tests/" + strconv.Itoa(id))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &test, nil
}

func DeleteTest(ctx context.Context, token string, id int) error {
	resp, err := request(ctx, token).Delete("/teacher/tests/" + strconv.Itoa(id))
	return check(resp, err)
}

func GetQuestions(ctx context.Context, token string, testID int) ([]models.Question, error) {
	var questions []models.Question
	resp, err := request(ctx, token).
		SetQueryParam("test_id", strconv.Itoa(testID)).
		SetResult(&questions).
		Get("/teacher/questions/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return questions, nil
}

func CreateQuestion(ctx context.Context, token string, req QuestionRequest) (*models.Question, error) {
	var question models.Question
	resp, err := request(ctx, token).SetBody(req).SetResult(&question).Post("/teacher/questions/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &question, nil
}

func UpdateQuestion(ctx context.Context, token string, id int, req QuestionRequest) (*models.Question, error) {
	var question models.Question
	resp, err := request(ctx, token).SetBody(req).SetResult(&question).
		Put("/teacher/questions/" + strconv.Itoa(id))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &question, nil
}

func DeleteQuestion(ctx context.Context, token string, id int) error {
	resp, err := request(ctx, token).Delete("/teacher/questions/" + strconv.Itoa(id))
	return check(resp, err)
}

func GetStudentResults(ctx context.Context, token string, userID int) (*models.StudentResults, error) {
	var results models.StudentResults
	resp, err := request(ctx, token).SetResult(&results).
		Get("/teacher/student/" + strconv.Itoa(userID) + "/results")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &results, nil
}

func GetStudentTestAnswers(ctx context.Context, token string, userID, testID int) (*models.StudentTestDetail, error) {
	var detail models.StudentTestDetail
	resp, err := request(ctx, token).SetResult(&detail).
		Get("/teacher/student/" + strconv.Itoa(userID) + "/test/" + strconv.Itoa(testID))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateRecommendation sends the free text as a plain-text body, the shape the
// backend expects for this one endpoint.
func UpdateRecommendation(ctx context.Context, token string, resultID int, recommendation string) error {
	resp, err := request(ctx, token).
		SetHeader("Content-Type", "text/plain").
		SetBody(recommendation).
		Put("/teacher/test-result/" + strconv.Itoa(resultID) + "/recommendation")
	return check(resp, err)
}
