package api

import (
	"context"
	"strconv"

	"examportal/models"
)

func GetAvailableTests(ctx context.Context, token string) ([]models.Test, error) {
	var tests []models.Test
	resp, err := request(ctx, token).SetResult(&tests).Get("/student/available-tests/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return tests, nil
}

func GetTestQuestions(ctx context.Context, token string, testID int) ([]models.Question, error) {
	var questions []models.Question
	resp, err := request(ctx, token).SetResult(&questions).
		Get("/student/test/" + strconv.Itoa(testID) + "/questions")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return questions, nil
}

func SubmitTest(ctx context.Context, token string, submission models.TestSubmission) (*models.TestResult, error) {
	var result models.TestResult
	resp, err := request(ctx, token).SetBody(submission).SetResult(&result).
		Post("/student/submit-test/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func GetTestResult(ctx context.Context, token string, testID int) (*models.TestResult, error) {
	var result models.TestResult
	resp, err := request(ctx, token).SetResult(&result).
		Get("/student/results/" + strconv.Itoa(testID))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func GetDetailedResult(ctx context.Context, token string, testID int) (*models.DetailedResult, error) {
	var detailed models.DetailedResult
	resp, err := request(ctx, token).SetResult(&detailed).
		Get("/student/results/" + strconv.Itoa(testID) + "/detailed")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &detailed, nil
}

func GetMyResults(ctx context.Context, token string) ([]models.TestResult, error) {
	var results []models.TestResult
	resp, err := request(ctx, token).SetResult(&results).Get("/student/my-results/")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return results, nil
}
