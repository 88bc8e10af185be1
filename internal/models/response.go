package models

import "time"

// SurveyResponse is one user's single submission against one survey. The
// composite unique index makes the one-response-per-user-per-survey rule a
// store-level guarantee, so two racing submissions cannot both commit.
type SurveyResponse struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	SurveyID    uint               `gorm:"not null;uniqueIndex:idx_survey_user" json:"survey_id"`
	Survey      Survey             `gorm:"foreignKey:SurveyID" json:"-"`
	UserID      uint               `gorm:"not null;uniqueIndex:idx_survey_user;index" json:"user_id"`
	Answers     []QuestionResponse `gorm:"foreignKey:SurveyResponseID" json:"answers,omitempty"`
	SubmittedAt time.Time          `gorm:"autoCreateTime" json:"submitted_at"`
}

type QuestionResponse struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SurveyResponseID uint      `gorm:"not null;index" json:"survey_response_id"`
	QuestionID       uint      `gorm:"not null;index" json:"question_id"`
	Question         Question  `gorm:"foreignKey:QuestionID" json:"-"`
	ResponseValue    string    `gorm:"type:text;not null" json:"response_value"`
	CreatedAt        time.Time `json:"created_at"`
}
