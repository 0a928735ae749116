package service

import "errors"

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrMissingCorrectAnswer = errors.New("question has no correct answer")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrInvalidInput         = errors.New("invalid input")
)
