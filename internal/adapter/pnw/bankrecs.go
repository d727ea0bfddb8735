package pnw

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/shopspring/decimal"
)

// flexID accepts ids encoded either as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	*f = flexID(strings.Trim(string(b), `"`))
	return nil
}

func (f flexID) Int64() (int64, error) {
	if f == "" {
		return 0, nil
	}
	return strconv.ParseInt(string(f), 10, 64)
}

type bankrec struct {
	ID           flexID          `json:"id"`
	Date         time.Time       `json:"date"`
	SenderID     flexID          `json:"sender_id"`
	SenderType   int             `json:"sender_type"`
	ReceiverID   flexID          `json:"receiver_id"`
	ReceiverType int             `json:"receiver_type"`
	Note         string          `json:"note"`
	TaxID        flexID          `json:"tax_id"`
	Money        decimal.Decimal `json:"money"`
	Food         decimal.Decimal `json:"food"`
	Coal         decimal.Decimal `json:"coal"`
	Oil          decimal.Decimal `json:"oil"`
	Uranium      decimal.Decimal `json:"uranium"`
	Lead         decimal.Decimal `json:"lead"`
	Iron         decimal.Decimal `json:"iron"`
	Bauxite      decimal.Decimal `json:"bauxite"`
	Gasoline     decimal.Decimal `json:"gasoline"`
	Munitions    decimal.Decimal `json:"munitions"`
	Steel        decimal.Decimal `json:"steel"`
	Aluminum     decimal.Decimal `json:"aluminum"`
}

type bankrecsData struct {
	Bankrecs struct {
		PaginatorInfo struct {
			CurrentPage  int  `json:"currentPage"`
			HasMorePages bool `json:"hasMorePages"`
		} `json:"paginatorInfo"`
		Data []bankrec `json:"data"`
	} `json:"bankrecs"`
}

// BankRecords reads one page of the alliance bank history, newest first.
func (c *Client) BankRecords(ctx context.Context, creds domain.Credentials, allianceID int64, page, pageSize int) (*domain.BankPage, error) {
	if page < 1 {
		page = 1
	}
	query := bankrecsQuery(allianceID, page, pageSize)

	var data bankrecsData
	if err := c.do(ctx, creds, query, &data); err != nil {
		return nil, err
	}

	out := &domain.BankPage{
		CurrentPage: data.Bankrecs.PaginatorInfo.CurrentPage,
		HasMore:     data.Bankrecs.PaginatorInfo.HasMorePages,
		Records:     make([]domain.BankRecord, 0, len(data.Bankrecs.Data)),
	}
	for _, r := range data.Bankrecs.Data {
		rec, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out.Records = append(out.Records, rec)
	}

	c.log.Debug().
		Int64("alliance_id", allianceID).
		Int("page", page).
		Int("records", len(out.Records)).
		Bool("has_more", out.HasMore).
		Msg("bank records page fetched")

	return out, nil
}

func bankrecsQuery(allianceID int64, page, pageSize int) string {
	fields := []string{"id", "date", "sender_id", "sender_type", "receiver_id", "receiver_type", "note", "tax_id"}
	for _, r := range domain.AllResources {
		fields = append(fields, string(r))
	}
	return fmt.Sprintf(
		"{ bankrecs(or_id: [%d], first: %d, page: %d, orderBy: [{column: ID, order: DESC}]) "+
			"{ paginatorInfo { currentPage hasMorePages } data { %s } } }",
		allianceID, pageSize, page, strings.Join(fields, " "),
	)
}

func (r bankrec) toDomain() (domain.BankRecord, error) {
	id, err := r.ID.Int64()
	if err != nil {
		return domain.BankRecord{}, fmt.Errorf("bank record id %q: %w", r.ID, err)
	}
	sender, err := r.SenderID.Int64()
	if err != nil {
		return domain.BankRecord{}, fmt.Errorf("bank record %d sender: %w", id, err)
	}
	receiver, err := r.ReceiverID.Int64()
	if err != nil {
		return domain.BankRecord{}, fmt.Errorf("bank record %d receiver: %w", id, err)
	}
	taxID, err := r.TaxID.Int64()
	if err != nil {
		return domain.BankRecord{}, fmt.Errorf("bank record %d tax id: %w", id, err)
	}

	return domain.BankRecord{
		ID:           id,
		Date:         r.Date,
		Note:         r.Note,
		SenderID:     sender,
		SenderType:   domain.PartyType(r.SenderType),
		ReceiverID:   receiver,
		ReceiverType: domain.PartyType(r.ReceiverType),
		TaxID:        taxID,
		Resources: domain.NewBag(map[domain.Resource]decimal.Decimal{
			domain.Money:     r.Money,
			domain.Food:      r.Food,
			domain.Coal:      r.Coal,
			domain.Oil:       r.Oil,
			domain.Uranium:   r.Uranium,
			domain.Lead:      r.Lead,
			domain.Iron:      r.Iron,
			domain.Bauxite:   r.Bauxite,
			domain.Gasoline:  r.Gasoline,
			domain.Munitions: r.Munitions,
			domain.Steel:     r.Steel,
			domain.Aluminum:  r.Aluminum,
		}),
	}, nil
}
