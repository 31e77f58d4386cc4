package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrInvalidPayload     = fmt.Errorf("invalid event payload")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrRealmNotFound      = fmt.Errorf("realm not found")
	ErrStreamNotFound     = fmt.Errorf("stream not found")
	ErrDigestSuppressed   = fmt.Errorf("digest suppressed for this user")
	ErrNotEnoughTraffic   = fmt.Errorf("not enough traffic for a digest")
	ErrEventNotPending    = fmt.Errorf("digest event is no longer pending")
	ErrInvalidCron        = fmt.Errorf("invalid cron expression")
	ErrWrongTokenPurpose  = fmt.Errorf("token purpose mismatch")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
)
