package domain

import "errors"

var (
	// ErrDuplicateQuestion is returned when a section already contains a
	// structurally equal question.
	ErrDuplicateQuestion = errors.New("duplicate question in section")
	// ErrSectionMismatch is returned when merging sections with different names.
	ErrSectionMismatch = errors.New("section name mismatch")
	// ErrSectionNotFound indicates a configured section name has no question pool.
	ErrSectionNotFound = errors.New("section not found")
	// ErrSampleTooLarge indicates a sample size exceeding the question pool.
	ErrSampleTooLarge = errors.New("sample size exceeds question pool")
)
