package services

import "errors"

// Errors the handlers translate into specific HTTP statuses. Everything else
// coming out of a service is treated as an internal failure: logged with
// detail server-side, reported to the caller as a generic message.
var (
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrResponseNotFound    = errors.New("response not found")
	ErrAlreadySubmitted    = errors.New("you have already submitted a response to this survey")
	ErrQuestionNotInSurvey = errors.New("answer references a question from another survey")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
)
