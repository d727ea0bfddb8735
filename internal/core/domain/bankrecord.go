package domain

import (
	"strings"
	"time"
)

// PartyType is the game's code for a sender or receiver.
type PartyType int

const (
	PartyNation   PartyType = 1
	PartyAlliance PartyType = 2
)

const ignoreMarker = "#ignore"

var taxTags = []string{"#tax", "tax bracket", "automated tax"}

// BankRecord is one external bank transaction as seen by the feed.
type BankRecord struct {
	ID            int64     `json:"id"`
	AllianceID    int64     `json:"alliance_id"`
	Date          time.Time `json:"date"`
	Note          string    `json:"note"`
	SenderID      int64     `json:"sender_id"`
	SenderType    PartyType `json:"sender_type"`
	ReceiverID    int64     `json:"receiver_id"`
	ReceiverType  PartyType `json:"receiver_type"`
	TaxID         int64     `json:"tax_id"`
	Resources     Bag       `json:"resources"`
	IsAllianceRow bool      `json:"is_alliance_row"`
	IsIgnored     bool      `json:"is_ignored"`
	IsTaxGuess    bool      `json:"is_tax_guess"`
}

// IncomingTo reports whether the record moved resources from a nation into the alliance.
func (r *BankRecord) IncomingTo(allianceID int64) bool {
	return r.ReceiverType == PartyAlliance && r.ReceiverID == allianceID && r.SenderType == PartyNation
}

// Classify sets the cache flags relative to allianceID.
func (r *BankRecord) Classify(allianceID int64) {
	r.AllianceID = allianceID
	r.IsAllianceRow = (r.SenderType == PartyAlliance && r.SenderID == allianceID) ||
		(r.ReceiverType == PartyAlliance && r.ReceiverID == allianceID)

	note := strings.ToLower(r.Note)
	r.IsIgnored = strings.Contains(note, ignoreMarker)

	r.IsTaxGuess = false
	if !r.IsAllianceRow {
		return
	}
	switch {
	case r.TaxID > 0:
		r.IsTaxGuess = true
	case hasTaxTag(note):
		r.IsTaxGuess = true
	case r.IncomingTo(allianceID):
		r.IsTaxGuess = true
	}
}

func hasTaxTag(note string) bool {
	for _, tag := range taxTags {
		if strings.Contains(note, tag) {
			return true
		}
	}
	return false
}

// BankPage is one page of the external feed.
type BankPage struct {
	Records     []BankRecord
	CurrentPage int
	HasMore     bool
}

// RecordFilter selects cached rows by classification.
type RecordFilter string

const (
	FilterAll    RecordFilter = "all"
	FilterTax    RecordFilter = "tax"
	FilterNonTax RecordFilter = "nontax"
)

// ParseRecordFilter defaults to FilterAll for an empty string.
func ParseRecordFilter(s string) (RecordFilter, bool) {
	switch RecordFilter(strings.ToLower(s)) {
	case "", FilterAll:
		return FilterAll, true
	case FilterTax:
		return FilterTax, true
	case FilterNonTax:
		return FilterNonTax, true
	}
	return "", false
}

// RecordQuery reads the cache newest first.
type RecordQuery struct {
	AllianceID int64
	Filter     RecordFilter
	Limit      int
	AfterID    *int64 // only ids strictly below this
}

// IngestResult summarises one cache ingestion run.
type IngestResult struct {
	PagesScanned int   `json:"pages_scanned"`
	Inserted     int   `json:"inserted"`
	Cursor       int64 `json:"cursor"`
}

// TaxSummary is the delta found by a tax preview or credited by an apply.
type TaxSummary struct {
	AllianceID int64 `json:"alliance_id"`
	Count      int   `json:"count"`
	NewestID   int64 `json:"newest_id"`
	Delta      Bag   `json:"delta"`
	Cursor     int64 `json:"cursor"`
}

// CursorKind selects which per-alliance cursor is read or advanced.
type CursorKind string

const (
	CursorTax  CursorKind = "tax"
	CursorBank CursorKind = "bank"
)
