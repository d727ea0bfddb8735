package ports

import (
	"context"
	"time"

	"alliance-bank/internal/core/domain"
)

// PaymentGateway sends resources out of the alliance bank in the game.
type PaymentGateway interface {
	// Withdraw returns the remote record id on success.
	Withdraw(ctx context.Context, creds domain.Credentials, order domain.PaymentOrder) (string, error)
}

// BankFeed reads the alliance bank history, newest first.
type BankFeed interface {
	BankRecords(ctx context.Context, creds domain.Credentials, allianceID int64, page, pageSize int) (*domain.BankPage, error)
}

// CredentialProvider resolves the credentials used to act for an alliance.
type CredentialProvider interface {
	ForAlliance(ctx context.Context, allianceID int64) (domain.Credentials, error)
}

// SecretBox seals and opens stored secrets.
type SecretBox interface {
	Seal(plaintext []byte) (ciphertext, nonce []byte, err error)
	Open(ciphertext, nonce []byte) ([]byte, error)
}

// SessionStore keeps transfer sessions keyed by requester.
type SessionStore interface {
	// Get returns nil, nil when no live session exists.
	Get(ctx context.Context, requester string) (*domain.TransferSession, error)
	Save(ctx context.Context, session *domain.TransferSession, ttl time.Duration) error
	Delete(ctx context.Context, requester string) error
}

// RunLock guards periodic jobs against overlapping runs.
type RunLock interface {
	// TryLock returns a token and true when the lock was taken.
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// Notifier publishes withdrawal events to the bankers' channel. Delivery is
// best effort and never blocks the caller on the remote side.
type Notifier interface {
	Notify(ctx context.Context, event domain.WithdrawalEvent)
}
