package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/J-Liu7/waterlily/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResponseHandler struct {
	responseService *services.ResponseService
	log             *zap.Logger
}

func NewResponseHandler(responseService *services.ResponseService, log *zap.Logger) *ResponseHandler {
	return &ResponseHandler{responseService: responseService, log: log}
}

// SubmitAnswer keeps response_value nullable so an explicit JSON null can be
// told apart from an empty string and rejected at the boundary.
type SubmitAnswer struct {
	QuestionID    uint    `json:"question_id" example:"1"`
	ResponseValue *string `json:"response_value" example:"Very satisfied"`
}

type SubmitResponseRequest struct {
	Responses []SubmitAnswer `json:"responses" binding:"required,min=1"`
}

type SubmitResponseResponse struct {
	Message    string `json:"message" example:"Response submitted successfully"`
	ResponseID uint   `json:"responseId" example:"1"`
}

// SubmitResponse godoc
// @Summary      Submit a response
// @Description  Submit answers to a survey; one response per user per survey
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Param        request body SubmitResponseRequest true "Answers"
// @Success      201 {object} SubmitResponseResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/{id}/responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	userID := c.GetUint("user_id")
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: services.ErrSurveyNotFound.Error()})
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	answers := make([]services.AnswerInput, 0, len(req.Responses))
	for _, a := range req.Responses {
		if a.QuestionID == 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Valid question_id is required for each response"})
			return
		}
		if a.ResponseValue == nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Response value is required for each response"})
			return
		}
		answers = append(answers, services.AnswerInput{QuestionID: a.QuestionID, ResponseValue: *a.ResponseValue})
	}

	responseID, err := h.responseService.Submit(uint(surveyID), userID, answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySubmitted), errors.Is(err, services.ErrQuestionNotInSurvey):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrSurveyNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			h.log.Error("submit response failed",
				zap.Error(err),
				zap.Uint64("survey_id", surveyID),
				zap.Uint("user_id", userID),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		}
		return
	}

	c.JSON(http.StatusCreated, SubmitResponseResponse{
		Message:    "Response submitted successfully",
		ResponseID: responseID,
	})
}

// ListMyResponses godoc
// @Summary      List own responses
// @Description  List the caller's submissions, most recent first
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string][]ResponseDetail
// @Failure      500 {object} ErrorResponse
// @Router       /api/surveys/responses/my [get]
func (h *ResponseHandler) ListMyResponses(c *gin.Context) {
	userID := c.GetUint("user_id")

	responses, err := h.responseService.ListByUser(userID)
	if err != nil {
		h.log.Error("list responses failed", zap.Error(err), zap.Uint("user_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// GetResponse godoc
// @Summary      Get one of the caller's responses
// @Description  Get a submission with its answers in question order; responses owned by other users read as not found
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Response ID"
// @Success      200 {object} map[string]ResponseDetail
// @Failure      404 {object} ErrorResponse
// @Router       /api/surveys/responses/{id} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	userID := c.GetUint("user_id")
	responseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: services.ErrResponseNotFound.Error()})
		return
	}

	response, err := h.responseService.GetByID(uint(responseID), userID)
	if err != nil {
		if errors.Is(err, services.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.log.Error("get response failed", zap.Error(err), zap.Uint64("response_id", responseID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
