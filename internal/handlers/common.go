package handlers

import "github.com/J-Liu7/waterlily/internal/services"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve service types in annotations.
type SurveyWithCreator = services.SurveyWithCreator
type ResponseDetail = services.ResponseDetail

const internalErrorMessage = "internal server error"
