//go:generate go run go.uber.org/mock/mockgen -source=sender.go -destination=../mocks/mock_sender.go -package=mocks
// Package email dispatches rendered digests. Delivery sits behind the Sender
// interface so the pipeline never blocks on a concrete MTA in tests.
package email

import "context"

type Email struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}
