package model

import "time"

// Answer records one selected option. Created at answer time and
// immutable once recorded; the session owns the append-only list.
type Answer struct {
	QuestionID  string             `json:"questionId" bson:"questionId"`
	OptionIndex int                `json:"optionIndex" bson:"optionIndex"`
	Weights     map[string]float64 `json:"weights" bson:"weights"` // copied from the chosen Option
	Domain      string             `json:"domain,omitempty" bson:"domain,omitempty"`
	Subject     string             `json:"subject,omitempty" bson:"subject,omitempty"`
	IsCorrect   bool               `json:"isCorrect,omitempty" bson:"isCorrect,omitempty"`
	AnsweredAt  time.Time          `json:"answeredAt" bson:"answeredAt"`
}

// SubmitAnswerRequest is the request body for answering a question
type SubmitAnswerRequest struct {
	QuestionID  string `json:"questionId"`
	OptionIndex int    `json:"optionIndex"`
}
