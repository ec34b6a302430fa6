package model

import "time"

// ExamineeAnswer is the recorded response to a question. A question has at most one.
type ExamineeAnswer struct {
	ID           int64     `json:"id"`
	QuestionID   int64     `json:"question_id"`
	Answer       string    `json:"examinee_answer"`
	IsSubmitted  bool      `json:"is_submitted"`
	IsCorrect    bool      `json:"is_correct"`
	IsBookmarked bool      `json:"is_bookmarked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaveExamineeAnswerRequest is the payload for recording a response.
type SaveExamineeAnswerRequest struct {
	ExamineeAnswer string `json:"examinee_answer" binding:"required,max=255"`
	IsSubmitted    bool   `json:"is_submitted"`
	IsBookmarked   bool   `json:"is_bookmarked"`
}
