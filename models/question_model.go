package models

import "encoding/json"

// DontKnowAnswer is the designated "no guess" option the backend appends to
// every question. Selecting it is a valid answer, not a missing one.
const DontKnowAnswer = "Не знаю"

type Question struct {
	ID            int             `json:"id"`
	TestID        int             `json:"test_id"`
	CategoryID    int             `json:"category_id"`
	Text          string          `json:"text"`
	ImageURL      string          `json:"image_url,omitempty"`
	TableData     json.RawMessage `json:"table_data,omitempty"`
	Options       []string        `json:"options"`
	CorrectAnswer string          `json:"correct_answer,omitempty"`
}

// TableDataPretty renders the structured payload for display, or "" when absent.
func (q Question) TableDataPretty() string {
	if len(q.TableData) == 0 || string(q.TableData) == "null" {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(q.TableData, &v); err != nil {
		return string(q.TableData)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(q.TableData)
	}
	return string(pretty)
}

// TestSubmission is one atomic answer set for a whole test, in question order.
type TestSubmission struct {
	TestID  int               `json:"test_id"`
	Answers []SubmittedAnswer `json:"answers"`
}

type SubmittedAnswer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}
