package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is an alliance member who owns one safekeeping account.
type Member struct {
	ID         uuid.UUID `json:"id"`
	DiscordID  string    `json:"discord_id"`
	NationID   int64     `json:"nation_id"`
	AllianceID int64     `json:"alliance_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Alliance holds the encrypted per-alliance credential used for payouts.
type Alliance struct {
	ID               int64     `json:"id"` // external alliance id
	Name             string    `json:"name"`
	APIKeyCiphertext []byte    `json:"-"`
	APIKeyNonce      []byte    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasCredentials reports whether a sealed API key is stored.
func (a *Alliance) HasCredentials() bool {
	return len(a.APIKeyCiphertext) > 0 && len(a.APIKeyNonce) > 0
}

// Credentials are the opened secrets needed to call the game API.
type Credentials struct {
	APIKey string
	BotKey string
}
