package voucher

import (
	"context"
	"errors"
	"sync"

	"github.com/wifidesa/voucher-api/internal/agent"
	"github.com/wifidesa/voucher-api/internal/profile"
	"github.com/wifidesa/voucher-api/internal/routeros"
	"github.com/wifidesa/voucher-api/internal/settlement"
)

// fakeLedger is an in-memory Ledger/Reader. Debits apply immediately under
// a mutex and are restored on rollback, so concurrent issuance tests race
// on the same balance the way the conditional UPDATE would.
type fakeLedger struct {
	mu sync.Mutex

	balances map[int64]int64
	nextID   int64

	vouchers    []*Voucher
	settlements []*settlement.Settlement

	beginCount int

	// failure injection
	dupRemaining  int // next N voucher inserts report a collision
	insertErr     error
	debitErr      error
	settlementErr error
	linkErr       error
	commitErr     error
}

func newFakeLedger(agentID, balance int64) *fakeLedger {
	return &fakeLedger{balances: map[int64]int64{agentID: balance}}
}

func (l *fakeLedger) Begin(ctx context.Context) (LedgerTx, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.beginCount++
	return &fakeTx{ledger: l}, nil
}

func (l *fakeLedger) ListByAgent(ctx context.Context, agentID int64, limit, offset int) ([]*Voucher, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*Voucher
	for _, v := range l.vouchers {
		if v.AgentID != nil && *v.AgentID == agentID {
			out = append(out, v)
		}
	}
	return out, len(out), nil
}

func (l *fakeLedger) balance(agentID int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[agentID]
}

type fakeTx struct {
	ledger *fakeLedger

	pendingVouchers    []*Voucher
	pendingSettlements []*settlement.Settlement
	debits             map[int64]int64

	committed  bool
	rolledBack bool
}

func (t *fakeTx) InsertVoucher(ctx context.Context, v *Voucher) (int64, error) {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.insertErr != nil {
		return 0, l.insertErr
	}
	if l.dupRemaining > 0 {
		l.dupRemaining--
		return 0, ErrDuplicateCredential
	}

	l.nextID++
	copied := *v
	copied.ID = l.nextID
	t.pendingVouchers = append(t.pendingVouchers, &copied)
	return copied.ID, nil
}

func (t *fakeTx) ConditionalDebit(ctx context.Context, agentID, amount int64) (bool, error) {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.debitErr != nil {
		return false, l.debitErr
	}
	if l.balances[agentID] < amount {
		return false, nil
	}
	l.balances[agentID] -= amount
	if t.debits == nil {
		t.debits = map[int64]int64{}
	}
	t.debits[agentID] += amount
	return true, nil
}

func (t *fakeTx) InsertSettlement(ctx context.Context, s *settlement.Settlement) (int64, error) {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.settlementErr != nil {
		return 0, l.settlementErr
	}
	l.nextID++
	copied := *s
	copied.ID = l.nextID
	t.pendingSettlements = append(t.pendingSettlements, &copied)
	return copied.ID, nil
}

func (t *fakeTx) LinkVouchers(ctx context.Context, voucherIDs []int64, settlementID int64) error {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.linkErr != nil {
		return l.linkErr
	}
	linked := map[int64]bool{}
	for _, id := range voucherIDs {
		linked[id] = true
	}
	for _, v := range t.pendingVouchers {
		if linked[v.ID] {
			id := settlementID
			v.SettlementID = &id
		}
	}
	return nil
}

func (t *fakeTx) Commit() error {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.commitErr != nil {
		return l.commitErr
	}
	l.vouchers = append(l.vouchers, t.pendingVouchers...)
	l.settlements = append(l.settlements, t.pendingSettlements...)
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	l := t.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.committed {
		return errors.New("transaction already committed")
	}
	for agentID, amount := range t.debits {
		l.balances[agentID] += amount
	}
	t.debits = nil
	t.pendingVouchers = nil
	t.pendingSettlements = nil
	t.rolledBack = true
	return nil
}

// fakeAgents reads balances from the shared ledger so concurrent tests
// observe the same state the debit races on.
type fakeAgents struct {
	ledger *fakeLedger
	agents map[int64]*agent.Agent
	calls  int
	mu     sync.Mutex
}

func (f *fakeAgents) GetByID(ctx context.Context, id int64) (*agent.Agent, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	a, ok := f.agents[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	copied.Balance = f.ledger.balance(id)
	return &copied, nil
}

type fakeProfiles struct {
	profiles map[int64]*profile.Profile
	calls    int
}

func (f *fakeProfiles) GetByID(ctx context.Context, id int64) (*profile.Profile, error) {
	f.calls++
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

type fakeSession struct {
	mu       sync.Mutex
	created  []string
	removed  []string
	failAt   int // 1-based create attempt that fails; 0 never fails
	closed   bool
	closeErr error
}

func (s *fakeSession) CreateHotspotAccount(ctx context.Context, username, password, profileName, duration string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.created)+1 == s.failAt {
		return errors.New("router: no response")
	}
	s.created = append(s.created, username)
	return nil
}

func (s *fakeSession) RemoveHotspotAccount(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, username)
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

type fakeDialer struct {
	mu      sync.Mutex
	session *fakeSession
	openErr error
	opens   int
}

func (d *fakeDialer) Open(ctx context.Context) (routeros.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opens++
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.session, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	err      error
	messages []string
	phones   []string
}

func (n *fakeNotifier) SendCredentials(ctx context.Context, phone, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.phones = append(n.phones, phone)
	n.messages = append(n.messages, message)
	return nil
}
