package service

import "errors"

var (
	ErrIDRequired         = errors.New("id is required")
	ErrReaderNil          = errors.New("reader is nil")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrPasswordRequired   = errors.New("password required")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrExpired            = errors.New("link expired")
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidFileType    = errors.New("only PDF files are accepted")
	ErrQuotaExceeded      = errors.New("plan limit reached")
	ErrAlreadyPro         = errors.New("account is already pro")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrValidation         = errors.New("validation failed")
	ErrSlugExhausted      = errors.New("could not mint a unique slug")
)
