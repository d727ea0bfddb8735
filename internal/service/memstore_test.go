package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"alliance-bank/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memData is everything a memStore persists. It is copied whole at Begin and
// restored on Rollback.
type memData struct {
	members     map[uuid.UUID]domain.Member
	alliances   map[int64]domain.Alliance
	accounts    map[uuid.UUID]domain.Bag
	entries     []domain.LedgerEntry
	withdrawals map[uuid.UUID]domain.WithdrawalRequest
	order       []uuid.UUID
	treasury    map[int64]domain.Bag
	cursors     map[domain.CursorKind]map[int64]int64
	records     map[recordKey]domain.BankRecord
}

// recordKey mirrors the bank_records primary key.
type recordKey struct {
	alliance int64
	id       int64
}

func newMemData() *memData {
	return &memData{
		members:     make(map[uuid.UUID]domain.Member),
		alliances:   make(map[int64]domain.Alliance),
		accounts:    make(map[uuid.UUID]domain.Bag),
		withdrawals: make(map[uuid.UUID]domain.WithdrawalRequest),
		treasury:    make(map[int64]domain.Bag),
		cursors: map[domain.CursorKind]map[int64]int64{
			domain.CursorTax:  {},
			domain.CursorBank: {},
		},
		records: make(map[recordKey]domain.BankRecord),
	}
}

func (d *memData) clone() *memData {
	out := newMemData()
	for k, v := range d.members {
		out.members[k] = v
	}
	for k, v := range d.alliances {
		out.alliances[k] = v
	}
	for k, v := range d.accounts {
		out.accounts[k] = copyBag(v)
	}
	out.entries = append([]domain.LedgerEntry(nil), d.entries...)
	for k, v := range d.withdrawals {
		out.withdrawals[k] = copyRequest(v)
	}
	out.order = append([]uuid.UUID(nil), d.order...)
	for k, v := range d.treasury {
		out.treasury[k] = copyBag(v)
	}
	for kind, m := range d.cursors {
		for k, v := range m {
			out.cursors[kind][k] = v
		}
	}
	for k, v := range d.records {
		out.records[k] = v
	}
	return out
}

func copyBag(b domain.Bag) domain.Bag {
	return domain.Bag{}.Add(b)
}

func copyRequest(w domain.WithdrawalRequest) domain.WithdrawalRequest {
	w.Resources = copyBag(w.Resources)
	return w
}

// memStore backs every repository port in memory. Transactions are fully
// serialised by txMu, which stands in for row locks; single-statement writes
// outside a transaction take it too.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *memData
	seq  int64

	// markPaidErr, when set, makes MarkPaid fail.
	markPaidErr error
}

func newMemStore() *memStore {
	return &memStore{data: newMemData()}
}

func (s *memStore) read(fn func(d *memData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

// autocommit runs a single-statement write outside any transaction.
func (s *memStore) autocommit(fn func(d *memData)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.read(fn)
}

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.txMu.Lock()
	s.mu.Lock()
	snap := s.data.clone()
	s.mu.Unlock()
	return &memTx{store: s, snapshot: snap}, nil
}

// memTx implements the parts of pgx.Tx the services use.
type memTx struct {
	pgx.Tx
	store    *memStore
	snapshot *memData
	done     bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.mu.Lock()
	t.store.data = t.snapshot
	t.store.mu.Unlock()
	t.store.txMu.Unlock()
	return nil
}

// --- members and alliances ---

type memMembers struct{ s *memStore }

func (r memMembers) Create(ctx context.Context, m *domain.Member) error {
	var err error
	r.s.autocommit(func(d *memData) {
		for _, existing := range d.members {
			if existing.DiscordID == m.DiscordID {
				err = errors.New("duplicate discord id")
				return
			}
		}
		d.members[m.ID] = *m
	})
	return err
}

func (r memMembers) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	var out *domain.Member
	r.s.read(func(d *memData) {
		if m, ok := d.members[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r memMembers) GetByDiscordID(ctx context.Context, discordID string) (*domain.Member, error) {
	var out *domain.Member
	r.s.read(func(d *memData) {
		for _, m := range d.members {
			if m.DiscordID == discordID {
				m := m
				out = &m
				return
			}
		}
	})
	return out, nil
}

type memAlliances struct{ s *memStore }

func (r memAlliances) Upsert(ctx context.Context, a *domain.Alliance) error {
	r.s.autocommit(func(d *memData) { d.alliances[a.ID] = *a })
	return nil
}

func (r memAlliances) GetByID(ctx context.Context, id int64) (*domain.Alliance, error) {
	var out *domain.Alliance
	r.s.read(func(d *memData) {
		if a, ok := d.alliances[id]; ok {
			out = &a
		}
	})
	return out, nil
}

func (r memAlliances) List(ctx context.Context) ([]domain.Alliance, error) {
	var out []domain.Alliance
	r.s.read(func(d *memData) {
		for _, a := range d.alliances {
			out = append(out, a)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- accounts and ledger ---

type memAccounts struct{ s *memStore }

func (r memAccounts) GetOrCreate(ctx context.Context, memberID uuid.UUID) (domain.Bag, error) {
	var out domain.Bag
	r.s.read(func(d *memData) {
		if _, ok := d.accounts[memberID]; !ok {
			d.accounts[memberID] = domain.Bag{}
		}
		out = copyBag(d.accounts[memberID])
	})
	return out, nil
}

func (r memAccounts) GetForUpdate(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (domain.Bag, error) {
	return r.GetOrCreate(ctx, memberID)
}

func (r memAccounts) AddInTx(ctx context.Context, tx pgx.Tx, memberID uuid.UUID, resource domain.Resource, amount decimal.Decimal) (decimal.Decimal, error) {
	if !resource.Valid() {
		return decimal.Zero, fmt.Errorf("unknown resource %q", resource)
	}
	var out decimal.Decimal
	r.s.read(func(d *memData) {
		next := d.accounts[memberID].Add(domain.Bag{resource: amount})
		d.accounts[memberID] = next
		out = next.Get(resource)
	})
	return out, nil
}

type memEntries struct{ s *memStore }

func (r memEntries) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	r.s.read(func(d *memData) {
		r.s.seq++
		e.ID = r.s.seq
		e.CreatedAt = time.Now().UTC()
		d.entries = append(d.entries, *e)
	})
	return nil
}

func (r memEntries) List(ctx context.Context, p domain.HistoryParams) ([]domain.LedgerEntry, error) {
	var out []domain.LedgerEntry
	r.s.read(func(d *memData) {
		for i := len(d.entries) - 1; i >= 0; i-- {
			e := d.entries[i]
			if e.MemberID != p.MemberID {
				continue
			}
			if p.Resource != nil && e.Resource != *p.Resource {
				continue
			}
			if p.BeforeID != nil && e.ID >= *p.BeforeID {
				continue
			}
			out = append(out, e)
			if len(out) == p.Limit {
				return
			}
		}
	})
	return out, nil
}

func (r memEntries) SumByResource(ctx context.Context, memberID uuid.UUID) (domain.Bag, error) {
	sum := domain.Bag{}
	r.s.read(func(d *memData) {
		for _, e := range d.entries {
			if e.MemberID == memberID {
				sum = sum.Add(domain.Bag{e.Resource: e.Amount})
			}
		}
	})
	return sum, nil
}

// --- withdrawals ---

type memWithdrawals struct{ s *memStore }

func (r memWithdrawals) Create(ctx context.Context, tx pgx.Tx, req *domain.WithdrawalRequest) error {
	r.s.read(func(d *memData) {
		d.withdrawals[req.ID] = copyRequest(*req)
		d.order = append(d.order, req.ID)
	})
	return nil
}

func (r memWithdrawals) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	var out *domain.WithdrawalRequest
	r.s.read(func(d *memData) {
		if w, ok := d.withdrawals[id]; ok {
			w = copyRequest(w)
			out = &w
		}
	})
	return out, nil
}

func (r memWithdrawals) Transition(ctx context.Context, id uuid.UUID, from, to domain.WithdrawalStatus, reviewer string) (bool, error) {
	changed := false
	r.s.autocommit(func(d *memData) {
		w, ok := d.withdrawals[id]
		if !ok || w.Status != from {
			return
		}
		now := time.Now().UTC()
		w.Status, w.Reviewer, w.ResolvedAt = to, &reviewer, &now
		d.withdrawals[id] = w
		changed = true
	})
	return changed, nil
}

func (r memWithdrawals) CancelByRequester(ctx context.Context, id, memberID uuid.UUID) (bool, error) {
	changed := false
	r.s.autocommit(func(d *memData) {
		w, ok := d.withdrawals[id]
		if !ok || w.MemberID != memberID || w.Status != domain.WithdrawalPending {
			return
		}
		now := time.Now().UTC()
		w.Status, w.ResolvedAt = domain.WithdrawalCanceled, &now
		d.withdrawals[id] = w
		changed = true
	})
	return changed, nil
}

func (r memWithdrawals) RecordFailure(ctx context.Context, id uuid.UUID, reason string) error {
	r.s.autocommit(func(d *memData) {
		if w, ok := d.withdrawals[id]; ok {
			w.FailureReason = &reason
			d.withdrawals[id] = w
		}
	})
	return nil
}

func (r memWithdrawals) MarkPaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, externalRef string) (bool, error) {
	if r.s.markPaidErr != nil {
		return false, r.s.markPaidErr
	}
	changed := false
	r.s.read(func(d *memData) {
		w, ok := d.withdrawals[id]
		if !ok || w.Status != domain.WithdrawalApproved || w.ExternalRef != nil {
			return
		}
		now := time.Now().UTC()
		w.Status, w.ExternalRef, w.FailureReason, w.ResolvedAt = domain.WithdrawalPaid, &externalRef, nil, &now
		d.withdrawals[id] = w
		changed = true
	})
	return changed, nil
}

func (r memWithdrawals) Outstanding(ctx context.Context, tx pgx.Tx, memberID uuid.UUID) (domain.Bag, error) {
	sum := domain.Bag{}
	r.s.read(func(d *memData) {
		for _, w := range d.withdrawals {
			if w.MemberID != memberID {
				continue
			}
			if w.Status == domain.WithdrawalPending || w.NeedsFollowUp() {
				sum = sum.Add(w.Resources)
			}
		}
	})
	return sum, nil
}

func (r memWithdrawals) List(ctx context.Context, p domain.WithdrawalListParams) ([]domain.WithdrawalRequest, error) {
	var out []domain.WithdrawalRequest
	r.s.read(func(d *memData) {
		for i := len(d.order) - 1; i >= 0; i-- {
			w := d.withdrawals[d.order[i]]
			if p.MemberID != nil && w.MemberID != *p.MemberID {
				continue
			}
			if p.Status != nil && w.Status != *p.Status {
				continue
			}
			out = append(out, copyRequest(w))
			if len(out) == p.Limit {
				return
			}
		}
	})
	return out, nil
}

// --- treasury, cursors and bank records ---

type memTreasury struct{ s *memStore }

func (r memTreasury) Get(ctx context.Context, allianceID int64) (domain.Bag, error) {
	var out domain.Bag
	r.s.read(func(d *memData) { out = copyBag(d.treasury[allianceID]) })
	return out, nil
}

func (r memTreasury) CreditInTx(ctx context.Context, tx pgx.Tx, allianceID int64, delta domain.Bag) error {
	r.s.read(func(d *memData) { d.treasury[allianceID] = d.treasury[allianceID].Add(delta) })
	return nil
}

type memCursors struct{ s *memStore }

func (r memCursors) Get(ctx context.Context, kind domain.CursorKind, allianceID int64) (int64, error) {
	var out int64
	var err error
	r.s.read(func(d *memData) {
		m, ok := d.cursors[kind]
		if !ok {
			err = fmt.Errorf("unknown cursor kind %q", kind)
			return
		}
		out = m[allianceID]
	})
	return out, err
}

func (r memCursors) GetForUpdate(ctx context.Context, tx pgx.Tx, kind domain.CursorKind, allianceID int64) (int64, error) {
	return r.Get(ctx, kind, allianceID)
}

func (r memCursors) Advance(ctx context.Context, tx pgx.Tx, kind domain.CursorKind, allianceID int64, id int64) (int64, error) {
	var out int64
	var err error
	r.s.read(func(d *memData) {
		m, ok := d.cursors[kind]
		if !ok {
			err = fmt.Errorf("unknown cursor kind %q", kind)
			return
		}
		if id > m[allianceID] {
			m[allianceID] = id
		}
		out = m[allianceID]
	})
	return out, err
}

type memRecords struct{ s *memStore }

func (r memRecords) InsertIfAbsent(ctx context.Context, tx pgx.Tx, rec *domain.BankRecord) (bool, error) {
	inserted := false
	r.s.read(func(d *memData) {
		key := recordKey{alliance: rec.AllianceID, id: rec.ID}
		if _, ok := d.records[key]; ok {
			return
		}
		d.records[key] = *rec
		inserted = true
	})
	return inserted, nil
}

func (r memRecords) List(ctx context.Context, q domain.RecordQuery) ([]domain.BankRecord, error) {
	var out []domain.BankRecord
	r.s.read(func(d *memData) {
		for _, rec := range d.records {
			if rec.AllianceID != q.AllianceID || rec.IsIgnored {
				continue
			}
			if q.Filter == domain.FilterTax && !rec.IsTaxGuess {
				continue
			}
			if q.Filter == domain.FilterNonTax && rec.IsTaxGuess {
				continue
			}
			if q.AfterID != nil && rec.ID >= *q.AfterID {
				continue
			}
			out = append(out, rec)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// --- external fakes ---

// fakePayer records every payment call. A positive delay blocks until the
// delay passes or the context ends.
type fakePayer struct {
	mu     sync.Mutex
	orders []domain.PaymentOrder
	err    error
	delay  time.Duration
}

func (p *fakePayer) Withdraw(ctx context.Context, creds domain.Credentials, order domain.PaymentOrder) (string, error) {
	p.mu.Lock()
	p.orders = append(p.orders, order)
	n := len(p.orders)
	err, delay := p.err, p.delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("bankrec-%d", n), nil
}

func (p *fakePayer) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.orders)
}

// fakeFeed serves records newest first in fixed-size pages.
type fakeFeed struct {
	mu      sync.Mutex
	records []domain.BankRecord
	pages   []int
	failAt  int
	// arrive lists records that land in the feed right after a page is served.
	arrive map[int][]domain.BankRecord
}

func (f *fakeFeed) add(recs ...domain.BankRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insert(recs)
}

func (f *fakeFeed) insert(recs []domain.BankRecord) {
	f.records = append(f.records, recs...)
	sort.Slice(f.records, func(i, j int) bool { return f.records[i].ID > f.records[j].ID })
}

func (f *fakeFeed) BankRecords(ctx context.Context, creds domain.Credentials, allianceID int64, page, pageSize int) (*domain.BankPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	if f.failAt > 0 && page == f.failAt {
		return nil, errors.New("feed unavailable")
	}
	start := (page - 1) * pageSize
	if start >= len(f.records) {
		return &domain.BankPage{CurrentPage: page}, nil
	}
	end := start + pageSize
	if end > len(f.records) {
		end = len(f.records)
	}
	recs := append([]domain.BankRecord(nil), f.records[start:end]...)
	hasMore := end < len(f.records)
	if late, ok := f.arrive[page]; ok {
		delete(f.arrive, page)
		f.insert(late)
		hasMore = true
	}
	return &domain.BankPage{Records: recs, CurrentPage: page, HasMore: hasMore}, nil
}

func (f *fakeFeed) fetched() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

type staticCreds struct {
	creds domain.Credentials
	err   error
}

func (c staticCreds) ForAlliance(ctx context.Context, allianceID int64) (domain.Credentials, error) {
	return c.creds, c.err
}

// trackingTx records how a transaction ended, for tests driven by mocks.
type trackingTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *trackingTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *trackingTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.WithdrawalEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event domain.WithdrawalEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []domain.WithdrawalEventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.WithdrawalEventType, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}
