package pnw

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alliance-bank/internal/core/domain"
)

type withdrawData struct {
	BankWithdraw *struct {
		ID flexID `json:"id"`
	} `json:"bankWithdraw"`
}

// Withdraw sends resources from the alliance bank to the recipient and
// returns the id of the bank record the game created.
func (c *Client) Withdraw(ctx context.Context, creds domain.Credentials, order domain.PaymentOrder) (string, error) {
	query, err := withdrawMutation(order)
	if err != nil {
		return "", err
	}

	var data withdrawData
	if err := c.do(ctx, creds, query, &data); err != nil {
		return "", err
	}
	if data.BankWithdraw == nil || data.BankWithdraw.ID == "" {
		return "", &RemoteError{Messages: []string{"withdrawal returned no record id"}}
	}

	c.log.Info().
		Int64("receiver", order.Recipient.ExternalID).
		Str("external_ref", string(data.BankWithdraw.ID)).
		Msg("bank withdrawal sent")

	return string(data.BankWithdraw.ID), nil
}

func withdrawMutation(order domain.PaymentOrder) (string, error) {
	if len(order.Resources.Resources()) == 0 {
		return "", fmt.Errorf("pnw: withdrawal without resources")
	}

	args := []string{
		fmt.Sprintf("receiver: %d", order.Recipient.ExternalID),
		fmt.Sprintf("receiver_type: %d", order.Recipient.Kind.ReceiverType()),
	}
	for _, r := range order.Resources.Resources() {
		args = append(args, fmt.Sprintf("%s: %s", r, order.Resources[r].String()))
	}
	if order.Note != "" {
		// JSON string escaping is valid GraphQL string syntax.
		note, err := json.Marshal(order.Note)
		if err != nil {
			return "", fmt.Errorf("encode note: %w", err)
		}
		args = append(args, "note: "+string(note))
	}

	return fmt.Sprintf("mutation { bankWithdraw(%s) { id } }", strings.Join(args, ", ")), nil
}
