package services

import (
	"errors"
	"sort"
	"time"

	"github.com/J-Liu7/waterlily/internal/models"

	"gorm.io/gorm"
)

type ResponseService struct {
	db *gorm.DB
}

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db}
}

type AnswerInput struct {
	QuestionID    uint   `json:"question_id"`
	ResponseValue string `json:"response_value"`
}

// AnswerDetail is one answer denormalized with its question's context.
type AnswerDetail struct {
	QuestionID          uint   `json:"question_id"`
	QuestionText        string `json:"question_text"`
	QuestionDescription string `json:"question_description"`
	QuestionType        string `json:"question_type"`
	ResponseValue       string `json:"response_value"`
}

// ResponseDetail is one submission with its answers ordered by the
// question's position in the survey.
type ResponseDetail struct {
	ResponseID        uint           `json:"response_id"`
	SubmittedAt       time.Time      `json:"submitted_at"`
	SurveyID          uint           `json:"survey_id"`
	SurveyTitle       string         `json:"survey_title"`
	SurveyDescription string         `json:"survey_description"`
	Responses         []AnswerDetail `json:"responses"`
}

// Submit records a user's single response to a survey: the response row and
// all answer rows commit in one transaction. The pre-check gives a friendly
// failure on the common path; the unique (survey_id, user_id) index is the
// actual guarantee, so a concurrent duplicate surfaces from the insert as
// gorm.ErrDuplicatedKey and is reported the same way.
func (s *ResponseService) Submit(surveyID, userID uint, answers []AnswerInput) (uint, error) {
	var survey models.Survey
	err := s.db.Where("id = ? AND is_active = ?", surveyID, true).First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrSurveyNotFound
	}
	if err != nil {
		return 0, err
	}

	var existing models.SurveyResponse
	err = s.db.Where("survey_id = ? AND user_id = ?", surveyID, userID).First(&existing).Error
	if err == nil {
		return 0, ErrAlreadySubmitted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	var questionIDs []uint
	if err := s.db.Model(&models.Question{}).Where("survey_id = ?", surveyID).Pluck("id", &questionIDs).Error; err != nil {
		return 0, err
	}
	known := make(map[uint]bool, len(questionIDs))
	for _, id := range questionIDs {
		known[id] = true
	}
	for _, a := range answers {
		if !known[a.QuestionID] {
			return 0, ErrQuestionNotInSurvey
		}
	}

	response := models.SurveyResponse{
		SurveyID: surveyID,
		UserID:   userID,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	if err := tx.Create(&response).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrAlreadySubmitted
		}
		return 0, err
	}

	for _, a := range answers {
		qr := models.QuestionResponse{
			SurveyResponseID: response.ID,
			QuestionID:       a.QuestionID,
			ResponseValue:    a.ResponseValue,
		}
		if err := tx.Create(&qr).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrAlreadySubmitted
		}
		return 0, err
	}
	return response.ID, nil
}

// ListByUser returns the user's submissions, most recent first, each with
// its answers in the survey's question order.
func (s *ResponseService) ListByUser(userID uint) ([]ResponseDetail, error) {
	var responses []models.SurveyResponse
	err := s.db.Where("user_id = ?", userID).
		Preload("Survey").
		Preload("Answers.Question").
		Order("submitted_at DESC").
		Limit(listLimit).
		Find(&responses).Error
	if err != nil {
		return nil, err
	}

	out := make([]ResponseDetail, 0, len(responses))
	for i := range responses {
		out = append(out, buildResponseDetail(&responses[i]))
	}
	return out, nil
}

// GetByID returns one of the caller's submissions. A response owned by
// another user reads as not found; the caller cannot tell the difference.
func (s *ResponseService) GetByID(id, userID uint) (*ResponseDetail, error) {
	var response models.SurveyResponse
	err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Survey").
		Preload("Answers.Question").
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResponseNotFound
	}
	if err != nil {
		return nil, err
	}

	detail := buildResponseDetail(&response)
	return &detail, nil
}

func buildResponseDetail(r *models.SurveyResponse) ResponseDetail {
	answers := make([]AnswerDetail, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, AnswerDetail{
			QuestionID:          a.QuestionID,
			QuestionText:        a.Question.QuestionText,
			QuestionDescription: a.Question.QuestionDescription,
			QuestionType:        a.Question.QuestionType,
			ResponseValue:       a.ResponseValue,
		})
	}

	// Answers are stored in insertion order; readers get question order.
	byIndex := make(map[uint]int, len(r.Answers))
	for _, a := range r.Answers {
		byIndex[a.QuestionID] = a.Question.OrderIndex
	}
	sort.SliceStable(answers, func(i, j int) bool {
		return byIndex[answers[i].QuestionID] < byIndex[answers[j].QuestionID]
	})

	return ResponseDetail{
		ResponseID:        r.ID,
		SubmittedAt:       r.SubmittedAt,
		SurveyID:          r.SurveyID,
		SurveyTitle:       r.Survey.Title,
		SurveyDescription: r.Survey.Description,
		Responses:         answers,
	}
}
