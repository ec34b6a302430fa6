package model

// Choice is a free-text option that questions reference as answer or option.
// Rows are shared between questions and deduplicated by exact text.
type Choice struct {
	ID   int64  `json:"id"`
	Text string `json:"choice"`
}

// ChoiceInput is a choice referenced by text inside a question payload.
type ChoiceInput struct {
	Choice string `json:"choice" binding:"required,max=255"`
}

// ChoiceRequest is the payload for creating or renaming a choice.
type ChoiceRequest struct {
	Choice string `json:"choice" binding:"required,max=255"`
}
