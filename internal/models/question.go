package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeRadio    = "radio"
	QuestionTypeCheckbox = "checkbox"
	QuestionTypeSelect   = "select"
	QuestionTypeNumber   = "number"
	QuestionTypeEmail    = "email"
	QuestionTypeDate     = "date"
)

var questionTypes = map[string]bool{
	QuestionTypeText:     true,
	QuestionTypeTextarea: true,
	QuestionTypeRadio:    true,
	QuestionTypeCheckbox: true,
	QuestionTypeSelect:   true,
	QuestionTypeNumber:   true,
	QuestionTypeEmail:    true,
	QuestionTypeDate:     true,
}

func ValidQuestionType(t string) bool {
	return questionTypes[t]
}

// Option is one selectable choice for radio, checkbox and select questions.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionList is stored as a serialized JSON column. A nil list persists as
// SQL NULL, which stays distinct from a present-but-empty list ("[]").
type OptionList []Option

func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("unsupported options column type %T", value)
	}
}

type Question struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	SurveyID            uint       `gorm:"not null;index" json:"survey_id"`
	QuestionText        string     `gorm:"type:text;not null" json:"question_text"`
	QuestionDescription string     `gorm:"type:text" json:"question_description"`
	QuestionType        string     `gorm:"size:20;not null" json:"question_type"`
	Options             OptionList `gorm:"type:jsonb" json:"options"`
	IsRequired          bool       `gorm:"not null;default:false" json:"is_required"`
	OrderIndex          int        `gorm:"not null" json:"order_index"`
	CreatedAt           time.Time  `json:"created_at"`
}
