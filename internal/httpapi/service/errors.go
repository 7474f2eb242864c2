package service

import "errors"

// Sentinel errors returned by the services. Handlers map these to HTTP
// status codes: validation conflicts to 400, credential/token failures to
// 401, denied capabilities to 403 and missing entities to 404.
var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in this course")
	ErrNotEnrolled        = errors.New("student not enrolled in this course")
	ErrBadTemplate        = errors.New("invalid template in title or body")
)
