package models

import "time"

type CategoryStat struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type TestResult struct {
	ID                int                     `json:"id"`
	TestID            int                     `json:"test_id"`
	UserID            int                     `json:"user_id"`
	Score             float64                 `json:"score"`
	Timestamp         time.Time               `json:"timestamp"`
	Recommendation    string                  `json:"recommendation,omitempty"`
	CategoryBreakdown map[string]CategoryStat `json:"category_breakdown,omitempty"`
}

// DetailedResult is the student-facing result report for one test.
type DetailedResult struct {
	Test      Test               `json:"test"`
	Result    TestResult         `json:"result"`
	Questions []AnsweredQuestion `json:"questions"`
}

// AnsweredQuestion pairs a question with what the student answered.
type AnsweredQuestion struct {
	Question      Question `json:"question"`
	StudentAnswer string   `json:"student_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// StudentResultSummary is one row of a student's history as the teacher sees
// it, already joined with the test title by the backend.
type StudentResultSummary struct {
	ID        int       `json:"id"`
	TestID    int       `json:"test_id"`
	TestTitle string    `json:"test_title"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// StudentResults is the teacher review index for one student.
type StudentResults struct {
	Student User                   `json:"student"`
	Results []StudentResultSummary `json:"results"`
}

type StudentAnswer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"is_correct"`
}

// StudentTestDetail is everything the teacher needs to review one submission.
type StudentTestDetail struct {
	Student   User            `json:"student"`
	Test      Test            `json:"test"`
	Questions []Question      `json:"questions"`
	Answers   []StudentAnswer `json:"answers"`
	Result    TestResult      `json:"result"`
}
