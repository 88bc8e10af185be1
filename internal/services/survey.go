package services

import (
	"errors"

	"github.com/J-Liu7/waterlily/internal/models"

	"gorm.io/gorm"
)

// listLimit bounds unpaginated listings. Nothing upstream specifies paging,
// so a hard cap keeps the response size sane.
const listLimit = 200

type SurveyService struct {
	db *gorm.DB
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{db: db}
}

type QuestionInput struct {
	QuestionText        string            `json:"question_text"`
	QuestionDescription string            `json:"question_description"`
	QuestionType        string            `json:"question_type"`
	Options             models.OptionList `json:"options"`
	IsRequired          bool              `json:"is_required"`
}

type CreateSurveyInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// SurveyWithCreator carries the creator's name alongside the survey so list
// and detail consumers never need a second lookup.
type SurveyWithCreator struct {
	models.Survey
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Create inserts the survey and its questions in one transaction. Question
// positions are assigned here from input order, 1-based and gapless; any
// client-supplied index is ignored. On failure nothing of the aggregate
// remains visible.
func (s *SurveyService) Create(userID uint, input CreateSurveyInput) (uint, error) {
	survey := models.Survey{
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   userID,
		IsActive:    true,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	if err := tx.Create(&survey).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	for i, q := range input.Questions {
		question := models.Question{
			SurveyID:            survey.ID,
			QuestionText:        q.QuestionText,
			QuestionDescription: q.QuestionDescription,
			QuestionType:        q.QuestionType,
			Options:             q.Options,
			IsRequired:          q.IsRequired,
			OrderIndex:          i + 1,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return survey.ID, nil
}

// List returns active surveys, newest first.
func (s *SurveyService) List() ([]SurveyWithCreator, error) {
	var surveys []models.Survey
	err := s.db.Where("is_active = ?", true).
		Preload("Creator").
		Order("created_at DESC").
		Limit(listLimit).
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}

	out := make([]SurveyWithCreator, 0, len(surveys))
	for _, sv := range surveys {
		out = append(out, SurveyWithCreator{
			Survey:    sv,
			FirstName: sv.Creator.FirstName,
			LastName:  sv.Creator.LastName,
		})
	}
	return out, nil
}

// GetByID returns an active survey with its questions in order_index order.
// An inactive survey is indistinguishable from a missing one.
func (s *SurveyService) GetByID(id uint) (*SurveyWithCreator, error) {
	var survey models.Survey
	err := s.db.Where("id = ? AND is_active = ?", id, true).
		Preload("Creator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSurveyNotFound
	}
	if err != nil {
		return nil, err
	}

	return &SurveyWithCreator{
		Survey:    survey,
		FirstName: survey.Creator.FirstName,
		LastName:  survey.Creator.LastName,
	}, nil
}

// Deactivate soft-deletes an owned survey. A survey owned by someone else
// reads as not found.
func (s *SurveyService) Deactivate(id, userID uint) error {
	res := s.db.Model(&models.Survey{}).
		Where("id = ? AND created_by = ? AND is_active = ?", id, userID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSurveyNotFound
	}
	return nil
}
