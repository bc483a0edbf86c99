package voucher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wifidesa/voucher-api/internal/metrics"
	"github.com/wifidesa/voucher-api/internal/notify"
	"github.com/wifidesa/voucher-api/internal/profile"
	"github.com/wifidesa/voucher-api/internal/routeros"
	"github.com/wifidesa/voucher-api/internal/settlement"
)

// Quantity bounds for one issuance batch
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// credentialAttempts bounds regeneration after username collisions
const credentialAttempts = 3

// Notification outcomes reported alongside a successful issuance
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// Common errors
var (
	ErrInvalidRequest            = errors.New("invalid issuance request")
	ErrAgentNotFound             = errors.New("agent not found or inactive")
	ErrProfileNotFound           = errors.New("profile not found or inactive")
	ErrDuplicateCredential       = errors.New("duplicate voucher credential")
	ErrProvisioningFailed        = errors.New("router provisioning failed")
	ErrPostIssuanceInconsistency = errors.New("settlement failed after provisioning; reconciliation required")
)

// InsufficientBalanceError carries the amounts a purchaser needs to see.
// Both values are in the smallest currency unit, the same unit stored.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}

// Service is the voucher issuance orchestrator. It coordinates the
// balance debit, router provisioning, and durable record creation so the
// three never diverge: an agent is never charged without usable vouchers
// and no voucher row exists without its router account.
type Service struct {
	agents   AgentStore
	profiles ProfileStore
	ledger   Ledger
	vouchers Reader
	dialer   routeros.Dialer
	notifier notify.Notifier // nil disables credential delivery
	logger   *zap.Logger
}

// NewService creates the orchestrator with all collaborators injected.
// notifier may be nil; logger may be nil.
func NewService(agents AgentStore, profiles ProfileStore, ledger Ledger, vouchers Reader,
	dialer routeros.Dialer, notifier notify.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		agents:   agents,
		profiles: profiles,
		ledger:   ledger,
		vouchers: vouchers,
		dialer:   dialer,
		notifier: notifier,
		logger:   logger,
	}
}

// IssueVouchers validates the purchase, provisions quantity router
// accounts over one gateway session, persists the voucher rows, debits
// the agent exactly once, and creates one settlement linking the batch.
//
// Steps are all-or-nothing: a failure anywhere before commit leaves the
// ledger untouched, and router accounts already created are cleaned up
// best-effort. Notification dispatch happens after commit and its failure
// never rolls anything back.
func (s *Service) IssueVouchers(ctx context.Context, agentID int64, req *IssueRequest) (*IssueResult, error) {
	// Fail-fast validation: no collaborator is touched until the request
	// itself is well-formed.
	if req.Quantity < MinQuantity || req.Quantity > MaxQuantity {
		metrics.IssuanceFailuresTotal.WithLabelValues("invalid_request").Inc()
		return nil, fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidRequest, MinQuantity, MaxQuantity)
	}
	if req.ProfileID <= 0 {
		metrics.IssuanceFailuresTotal.WithLabelValues("invalid_request").Inc()
		return nil, fmt.Errorf("%w: profile id is required", ErrInvalidRequest)
	}

	buyer, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent: %w", err)
	}
	if buyer == nil || !buyer.Active {
		metrics.IssuanceFailuresTotal.WithLabelValues("not_found").Inc()
		return nil, ErrAgentNotFound
	}

	prof, err := s.profiles.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if prof == nil || !prof.Active {
		metrics.IssuanceFailuresTotal.WithLabelValues("not_found").Inc()
		return nil, ErrProfileNotFound
	}

	totalCost := prof.AgentPrice * int64(req.Quantity)
	if buyer.Balance < totalCost {
		metrics.IssuanceFailuresTotal.WithLabelValues("insufficient_balance").Inc()
		return nil, &InsufficientBalanceError{Required: totalCost, Available: buyer.Balance}
	}

	// One router session per batch. The gateway protocol is stateful and
	// connection-oriented; the session is never shared across requests.
	started := time.Now()
	session, err := s.dialer.Open(ctx)
	if err != nil {
		metrics.IssuanceFailuresTotal.WithLabelValues("provisioning_failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}
	defer func() {
		// Close is best-effort; accounts already created stay valid.
		if cerr := session.Close(); cerr != nil {
			s.logger.Warn("router session close failed", zap.Error(cerr))
		}
	}()

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger transaction: %w", err)
	}

	var (
		created     []*Voucher
		provisioned []string
	)

	for i := 0; i < req.Quantity; i++ {
		v, err := s.issueOne(ctx, tx, session, buyer.ID, prof, req.CustomerName, &provisioned)
		if err != nil {
			s.abortBatch(ctx, tx, session, provisioned)
			metrics.IssuanceFailuresTotal.WithLabelValues(failureKind(err)).Inc()
			return nil, err
		}
		created = append(created, v)
	}
	metrics.ProvisioningDuration.Observe(time.Since(started).Seconds())

	// Settle: debit, settlement row, and linking commit as one unit, so
	// the charge can never outlive its records or vice versa.
	debited, err := tx.ConditionalDebit(ctx, buyer.ID, totalCost)
	if err != nil {
		return nil, s.settleFailure(ctx, tx, session, provisioned, buyer.ID, totalCost, err)
	}
	if !debited {
		// Lost a race against a concurrent purchase from the same agent.
		s.abortBatch(ctx, tx, session, provisioned)
		metrics.IssuanceFailuresTotal.WithLabelValues("insufficient_balance").Inc()
		available := buyer.Balance
		if fresh, ferr := s.agents.GetByID(ctx, buyer.ID); ferr == nil && fresh != nil {
			available = fresh.Balance
		}
		return nil, &InsufficientBalanceError{Required: totalCost, Available: available}
	}

	batch := &settlement.Settlement{
		Reference:    uuid.NewString(),
		CustomerName: req.CustomerName,
		Amount:       totalCost,
		Method:       settlement.MethodBalance,
		Status:       settlement.StatusCompleted,
		CreatedBy:    buyer.ID,
	}
	settlementID, err := tx.InsertSettlement(ctx, batch)
	if err != nil {
		return nil, s.settleFailure(ctx, tx, session, provisioned, buyer.ID, totalCost, err)
	}

	voucherIDs := make([]int64, len(created))
	for i, v := range created {
		voucherIDs[i] = v.ID
	}
	if err := tx.LinkVouchers(ctx, voucherIDs, settlementID); err != nil {
		return nil, s.settleFailure(ctx, tx, session, provisioned, buyer.ID, totalCost, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.settleFailure(ctx, tx, session, provisioned, buyer.ID, totalCost, err)
	}

	for _, v := range created {
		id := settlementID
		v.SettlementID = &id
	}
	metrics.VouchersIssuedTotal.Add(float64(len(created)))
	s.logger.Info("vouchers issued",
		zap.Int64("agent_id", buyer.ID),
		zap.Int64("settlement_id", settlementID),
		zap.Int("quantity", len(created)),
		zap.Int64("amount", totalCost))

	result := &IssueResult{
		Vouchers:           created,
		SettlementID:       settlementID,
		Reference:          batch.Reference,
		TotalCost:          totalCost,
		BalanceAfter:       buyer.Balance - totalCost,
		NotificationStatus: NotificationSkipped,
	}
	result.NotificationStatus = s.dispatchCredentials(ctx, req, prof, created)

	return result, nil
}

// ListByAgent retrieves vouchers owned by one agent
func (s *Service) ListByAgent(ctx context.Context, agentID int64, page, perPage int) ([]*Voucher, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.vouchers.ListByAgent(ctx, agentID, perPage, offset)
}

// issueOne provisions and persists a single voucher, regenerating on
// credential collisions up to credentialAttempts times.
func (s *Service) issueOne(ctx context.Context, tx LedgerTx, session routeros.Session,
	agentID int64, prof *profile.Profile, customerName string, provisioned *[]string) (*Voucher, error) {

	for attempt := 1; attempt <= credentialAttempts; attempt++ {
		code, err := GenerateCredential(prof.CodeLength)
		if err != nil {
			return nil, err
		}

		if err := session.CreateHotspotAccount(ctx, code, code, prof.RouterProfile, prof.Duration); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
		}
		*provisioned = append(*provisioned, code)

		v := &Voucher{
			Username:     code,
			Password:     code,
			ProfileName:  prof.Name,
			AgentPrice:   prof.AgentPrice,
			Duration:     prof.Duration,
			AgentID:      &agentID,
			CustomerName: customerName,
		}
		id, err := tx.InsertVoucher(ctx, v)
		if errors.Is(err, ErrDuplicateCredential) {
			s.logger.Warn("credential collision, regenerating",
				zap.String("username", code), zap.Int("attempt", attempt))
			// The router account exists under the colliding code; remove it
			// before trying a fresh one.
			if rerr := session.RemoveHotspotAccount(ctx, code); rerr != nil {
				s.logger.Warn("orphaned router account left behind", zap.String("username", code), zap.Error(rerr))
			} else {
				*provisioned = (*provisioned)[:len(*provisioned)-1]
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist voucher: %w", err)
		}

		v.ID = id
		return v, nil
	}

	return nil, fmt.Errorf("%w: exhausted %d attempts", ErrDuplicateCredential, credentialAttempts)
}

// abortBatch rolls the open transaction back and best-effort removes the
// router accounts this call created. The ledger stays authoritative: a
// leaked router account is never linked to a settlement and carries no
// liability.
func (s *Service) abortBatch(ctx context.Context, tx LedgerTx, session routeros.Session, provisioned []string) {
	if err := tx.Rollback(); err != nil {
		s.logger.Warn("issuance rollback failed", zap.Error(err))
	}
	for _, username := range provisioned {
		if err := session.RemoveHotspotAccount(ctx, username); err != nil {
			s.logger.Warn("orphaned router account left behind",
				zap.String("username", username), zap.Error(err))
		}
	}
}

// settleFailure handles errors in the debit/settlement/link/commit unit.
// Nothing is known to have committed, but provisioning already happened,
// so this is surfaced loudly for reconciliation instead of being folded
// into an ordinary failure.
func (s *Service) settleFailure(ctx context.Context, tx LedgerTx, session routeros.Session,
	provisioned []string, agentID, amount int64, cause error) error {

	s.abortBatch(ctx, tx, session, provisioned)
	metrics.IssuanceFailuresTotal.WithLabelValues("post_issuance_inconsistency").Inc()
	s.logger.Error("reconciliation alert: settlement unit failed after provisioning",
		zap.Int64("agent_id", agentID),
		zap.Int64("amount", amount),
		zap.Strings("router_accounts", provisioned),
		zap.Error(cause))
	return fmt.Errorf("%w: %v", ErrPostIssuanceInconsistency, cause)
}

// dispatchCredentials best-effort delivers the batch to the customer.
// The outcome is a soft status on the result, never an error.
func (s *Service) dispatchCredentials(ctx context.Context, req *IssueRequest, prof *profile.Profile, created []*Voucher) string {
	if req.CustomerPhone == "" {
		return NotificationSkipped
	}
	if s.notifier == nil {
		s.logger.Warn("customer phone given but no notifier configured")
		return NotificationSkipped
	}

	items := make([]notify.VoucherInfo, len(created))
	for i, v := range created {
		items[i] = notify.VoucherInfo{Username: v.Username, Password: v.Password}
	}
	message := notify.FormatCredentials(req.CustomerName, prof.Name, prof.Duration, items)

	if err := s.notifier.SendCredentials(ctx, req.CustomerPhone, message); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		s.logger.Warn("credential delivery failed",
			zap.String("phone", req.CustomerPhone), zap.Error(err))
		return NotificationFailed
	}
	return NotificationSent
}

// failureKind labels an issuance error for metrics
func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrProvisioningFailed):
		return "provisioning_failed"
	case errors.Is(err, ErrDuplicateCredential):
		return "duplicate_credential"
	default:
		return "internal"
	}
}
