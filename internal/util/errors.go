package util

import "errors"

var (
	ErrStorageRead     = errors.New("failed to read record file")
	ErrStorageWrite    = errors.New("failed to write record file")
	ErrUserNotFound    = errors.New("user not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrQuizMalformed   = errors.New("quiz definition is malformed")
	ErrSubmissionShape = errors.New("answer count does not match question count")
	ErrInvalidProgress = errors.New("invalid progress value")
	ErrGuildNotSet     = errors.New("guild ID is not configured")
)
