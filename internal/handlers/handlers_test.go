package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/J-Liu7/waterlily/internal/middleware"
	"github.com/J-Liu7/waterlily/internal/models"
	"github.com/J-Liu7/waterlily/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.Question{},
		&models.SurveyResponse{},
		&models.QuestionResponse{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	log := zap.NewNop()
	authService := services.NewAuthService(db, "test-secret")
	authHandler := NewAuthHandler(authService)
	surveyHandler := NewSurveyHandler(services.NewSurveyService(db), log)
	responseHandler := NewResponseHandler(services.NewResponseService(db), log)

	r := gin.New()
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		surveys := api.Group("/surveys")
		{
			surveys.GET("", surveyHandler.ListSurveys)
			surveys.GET("/:id", surveyHandler.GetSurvey)

			authed := surveys.Group("")
			authed.Use(middleware.JWTAuth(authService))
			{
				authed.POST("", surveyHandler.CreateSurvey)
				authed.DELETE("/:id", surveyHandler.DeactivateSurvey)
				authed.POST("/:id/responses", responseHandler.SubmitResponse)
				authed.GET("/responses/my", responseHandler.ListMyResponses)
				authed.GET("/responses/:id", responseHandler.GetResponse)
			}
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rr := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      email,
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func feedbackSurveyBody() gin.H {
	return gin.H{
		"title":       "Feedback",
		"description": "Tell us",
		"questions": []gin.H{
			{"question_text": "How was it?", "question_type": "text", "is_required": true},
			{"question_text": "Would you return?", "question_type": "radio", "options": []gin.H{
				{"value": "y", "label": "Yes"},
				{"value": "n", "label": "No"},
			}},
		},
	}
}

func TestCreateSurveyRequiresToken(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/api/surveys", "", feedbackSurveyBody())
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/api/surveys", "garbage", feedbackSurveyBody())
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCreateSurveyValidation(t *testing.T) {
	r := setupTestRouter(t)
	token := registerUser(t, r, "jane@example.com")

	rr := doJSON(t, r, http.MethodPost, "/api/surveys", token, gin.H{
		"title":     "   ",
		"questions": []gin.H{{"question_text": "Q", "question_type": "text"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "title")

	rr = doJSON(t, r, http.MethodPost, "/api/surveys", token, gin.H{
		"title":     "No questions",
		"questions": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/api/surveys", token, gin.H{
		"title":     "Bad type",
		"questions": []gin.H{{"question_text": "Q", "question_type": "slider"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "question type")
}

func TestSurveyLifecycle(t *testing.T) {
	r := setupTestRouter(t)
	token := registerUser(t, r, "jane@example.com")

	rr := doJSON(t, r, http.MethodPost, "/api/surveys", token, feedbackSurveyBody())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created CreateSurveyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Survey created successfully", created.Message)
	require.NotZero(t, created.SurveyID)

	// Listing and detail are public.
	rr = doJSON(t, r, http.MethodGet, "/api/surveys", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listBody struct {
		Surveys []services.SurveyWithCreator `json:"surveys"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listBody))
	require.Len(t, listBody.Surveys, 1)
	assert.Equal(t, "Feedback", listBody.Surveys[0].Title)
	assert.Equal(t, "Test", listBody.Surveys[0].FirstName)

	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/%d", created.SurveyID), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var detailBody struct {
		Survey services.SurveyWithCreator `json:"survey"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detailBody))
	require.Len(t, detailBody.Survey.Questions, 2)
	assert.Equal(t, 1, detailBody.Survey.Questions[0].OrderIndex)
	assert.Nil(t, detailBody.Survey.Questions[0].Options)
	require.Len(t, detailBody.Survey.Questions[1].Options, 2)

	// Soft delete hides the survey from everyone.
	rr = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/surveys/%d", created.SurveyID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/%d", created.SurveyID), "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/api/surveys/424242", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "deactivated and nonexistent must look the same")
}

func TestSubmitResponseRejectsNullValue(t *testing.T) {
	r := setupTestRouter(t)
	creatorToken := registerUser(t, r, "creator@example.com")
	respondentToken := registerUser(t, r, "respondent@example.com")

	rr := doJSON(t, r, http.MethodPost, "/api/surveys", creatorToken, feedbackSurveyBody())
	require.Equal(t, http.StatusCreated, rr.Code)
	var created CreateSurveyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/%d", created.SurveyID), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var detailBody struct {
		Survey services.SurveyWithCreator `json:"survey"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detailBody))
	qID := detailBody.Survey.Questions[0].ID

	rr = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/surveys/%d/responses", created.SurveyID), respondentToken, gin.H{
		"responses": []gin.H{{"question_id": qID, "response_value": nil}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Response value is required for each response")

	rr = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/surveys/%d/responses", created.SurveyID), respondentToken, gin.H{
		"responses": []gin.H{{"response_value": "Great"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "question_id")

	// An explicit empty string is a value, not an omission.
	rr = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/surveys/%d/responses", created.SurveyID), respondentToken, gin.H{
		"responses": []gin.H{{"question_id": qID, "response_value": ""}},
	})
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestResponseLifecycle(t *testing.T) {
	r := setupTestRouter(t)
	creatorToken := registerUser(t, r, "creator@example.com")
	respondentToken := registerUser(t, r, "respondent@example.com")
	strangerToken := registerUser(t, r, "stranger@example.com")

	rr := doJSON(t, r, http.MethodPost, "/api/surveys", creatorToken, feedbackSurveyBody())
	require.Equal(t, http.StatusCreated, rr.Code)
	var created CreateSurveyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/%d", created.SurveyID), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var detailBody struct {
		Survey services.SurveyWithCreator `json:"survey"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detailBody))
	qs := detailBody.Survey.Questions

	submitBody := gin.H{"responses": []gin.H{
		{"question_id": qs[0].ID, "response_value": "Great"},
		{"question_id": qs[1].ID, "response_value": "y"},
	}}
	rr = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/surveys/%d/responses", created.SurveyID), respondentToken, submitBody)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var submitted SubmitResponseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &submitted))
	require.NotZero(t, submitted.ResponseID)

	// A second submission by the same user fails with a 400, not a 500.
	rr = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/surveys/%d/responses", created.SurveyID), respondentToken, submitBody)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "already submitted")

	rr = doJSON(t, r, http.MethodGet, "/api/surveys/responses/my", respondentToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listBody struct {
		Responses []services.ResponseDetail `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listBody))
	require.Len(t, listBody.Responses, 1)
	require.Len(t, listBody.Responses[0].Responses, 2)
	assert.Equal(t, "Great", listBody.Responses[0].Responses[0].ResponseValue)

	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/responses/%d", submitted.ResponseID), respondentToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Another user probing the same id sees a plain 404.
	rr = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/responses/%d", submitted.ResponseID), strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/api/surveys/424242/responses", respondentToken, submitBody)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
