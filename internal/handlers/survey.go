package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/J-Liu7/waterlily/internal/models"
	"github.com/J-Liu7/waterlily/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SurveyHandler struct {
	surveyService *services.SurveyService
	log           *zap.Logger
}

func NewSurveyHandler(surveyService *services.SurveyService, log *zap.Logger) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService, log: log}
}

type CreateSurveyRequest struct {
	Title       string                   `json:"title" binding:"required" example:"Customer Feedback"`
	Description string                   `json:"description" example:"Tell us what you think"`
	Questions   []services.QuestionInput `json:"questions" binding:"required,min=1"`
}

type CreateSurveyResponse struct {
	Message  string `json:"message" example:"Survey created successfully"`
	SurveyID uint   `json:"surveyId" example:"1"`
}

func validateSurveyRequest(req *CreateSurveyRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "Survey title is required"
	}
	for _, q := range req.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return "Question text is required"
		}
		if !models.ValidQuestionType(q.QuestionType) {
			return "Invalid question type: " + q.QuestionType
		}
	}
	return ""
}

// CreateSurvey godoc
// @Summary      Create a survey
// @Description  Create a survey with its questions; question order follows input order
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateSurveyRequest true "Survey data"
// @Success      201 {object} CreateSurveyResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if msg := validateSurveyRequest(&req); msg != "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	surveyID, err := h.surveyService.Create(userID, services.CreateSurveyInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	})
	if err != nil {
		h.log.Error("create survey failed", zap.Error(err), zap.Uint("user_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, CreateSurveyResponse{
		Message:  "Survey created successfully",
		SurveyID: surveyID,
	})
}

// ListSurveys godoc
// @Summary      List surveys
// @Description  List active surveys, newest first
// @Tags         surveys
// @Produce      json
// @Success      200 {object} map[string][]SurveyWithCreator
// @Failure      500 {object} ErrorResponse
// @Router       /api/surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.surveyService.List()
	if err != nil {
		h.log.Error("list surveys failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveys": surveys})
}

// GetSurvey godoc
// @Summary      Get a survey
// @Description  Get an active survey with its questions in order
// @Tags         surveys
// @Produce      json
// @Param        id path int true "Survey ID"
// @Success      200 {object} map[string]SurveyWithCreator
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: services.ErrSurveyNotFound.Error()})
		return
	}

	survey, err := h.surveyService.GetByID(uint(surveyID))
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.log.Error("get survey failed", zap.Error(err), zap.Uint64("survey_id", surveyID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

// DeactivateSurvey godoc
// @Summary      Deactivate a survey
// @Description  Soft-delete an owned survey; it disappears from listings and lookups
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id} [delete]
func (h *SurveyHandler) DeactivateSurvey(c *gin.Context) {
	userID := c.GetUint("user_id")
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: services.ErrSurveyNotFound.Error()})
		return
	}

	if err := h.surveyService.Deactivate(uint(surveyID), userID); err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.log.Error("deactivate survey failed", zap.Error(err), zap.Uint64("survey_id", surveyID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Survey deactivated"})
}
