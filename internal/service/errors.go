package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrGeneration           = errors.New("contract generation failed")
	ErrNoActiveQuote        = errors.New("no active quote")
	ErrExport               = errors.New("export failed")
	ErrSubmissionInProgress = errors.New("submission already in progress")
)
