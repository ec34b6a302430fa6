package model

// Question is a multiple-choice question with exactly one answer choice and
// an unordered set of option choices.
type Question struct {
	ID      int64    `json:"id"`
	Text    string   `json:"question"`
	Answer  Choice   `json:"answer"`
	Choices []Choice `json:"choices"`
}

// ChoiceTexts returns the labels of q's option set.
func (q *Question) ChoiceTexts() []string {
	texts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		texts[i] = c.Text
	}
	return texts
}

// CreateQuestionRequest is the payload for creating a question.
type CreateQuestionRequest struct {
	Question string        `json:"question" binding:"required,max=255"`
	Answer   *ChoiceInput  `json:"answer" binding:"required"`
	Choices  []ChoiceInput `json:"choices" binding:"omitempty,dive"`
}

// UpdateQuestionRequest is the payload for PUT and PATCH on a question.
// A nil Choices slice means the key was absent; an empty one clears the set.
type UpdateQuestionRequest struct {
	Question *string       `json:"question" binding:"omitempty,max=255"`
	Answer   *ChoiceInput  `json:"answer"`
	Choices  []ChoiceInput `json:"choices" binding:"omitempty,dive"`
}
