package cart

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/craftline/pos-terminal/pkg/errors"
	"github.com/craftline/pos-terminal/pkg/logger"
	"github.com/craftline/pos-terminal/pkg/metrics"
	"github.com/craftline/pos-terminal/pkg/rest"
	"github.com/craftline/pos-terminal/pkg/types"
)

var (
	errClientRequired = errors.New("cart client is required")
	errLoggerRequired = errors.New("cart logger is required")
)

// AddLinePayload carries one add-to-cart command.
type AddLinePayload struct {
	ProductID int64            `json:"product_id" validate:"required,gt=0"`
	VariantID *int64           `json:"variant_id"`
	Quantity  int64            `json:"quantity" validate:"required,gte=1"`
	Modifiers []types.Modifier `json:"modifiers"`
}

// Store is the authoritative local mirror of the remote cart. Every
// mutation issues the remote command and then resyncs the full cart,
// replacing local state wholesale; the store never trusts its own
// prediction of post-state.
type Store struct {
	client  *rest.Client
	logger  *logger.Logger
	metrics *metrics.CheckoutMetrics

	mu            sync.RWMutex
	lines         []types.CartLine
	paymentMethod string
	customer      *types.Customer
}

func NewStore(client *rest.Client, logg *logger.Logger, m *metrics.CheckoutMetrics, defaultPaymentMethod string) (*Store, error) {
	if client == nil {
		return nil, errClientRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}
	method := strings.TrimSpace(defaultPaymentMethod)
	if method == "" {
		method = "cash"
	}
	return &Store{
		client:        client,
		logger:        logg,
		metrics:       m,
		paymentMethod: method,
	}, nil
}

// Refresh reloads the remote cart and replaces local lines. The reloaded
// list is always sorted by item name, ascending, case-sensitive; the
// ordering is a user-visible contract.
func (s *Store) Refresh(ctx context.Context) error {
	var fetched []types.CartLine
	if err := s.client.Get(ctx, "/cart/", &fetched); err != nil {
		return err
	}

	sort.SliceStable(fetched, func(i, j int) bool {
		return strings.Compare(fetched[i].Name, fetched[j].Name) < 0
	})

	s.mu.Lock()
	s.lines = fetched
	s.mu.Unlock()
	return nil
}

// AddLine issues the remote add command and resyncs on success. A rejected
// or failed add leaves the local cart untouched: no partial add.
func (s *Store) AddLine(ctx context.Context, payload AddLinePayload) error {
	if payload.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if err := s.client.Post(ctx, "/cart/add", nil, payload, nil); err != nil {
		s.metrics.IncMutation("add", "failure")
		return err
	}
	s.metrics.IncMutation("add", "success")
	return s.Refresh(ctx)
}

// ChangeQuantity sends a relative quantity change. The resync happens after
// the remote call settles, success or failure, so the mirror can never
// silently diverge from the server for longer than one round trip.
func (s *Store) ChangeQuantity(ctx context.Context, lineID, delta int64) error {
	query := url.Values{"change": []string{strconv.FormatInt(delta, 10)}}
	cmdErr := s.client.Post(ctx, fmt.Sprintf("/cart/%d/update", lineID), query, nil, nil)
	if cmdErr != nil {
		s.metrics.IncMutation("update", "failure")
	} else {
		s.metrics.IncMutation("update", "success")
	}
	return multierr.Combine(cmdErr, s.Refresh(ctx))
}

// RemoveLine removes the line remotely; the resync follows regardless of
// the command outcome.
func (s *Store) RemoveLine(ctx context.Context, lineID int64) error {
	cmdErr := s.client.Delete(ctx, fmt.Sprintf("/cart/%d", lineID))
	if cmdErr != nil {
		s.metrics.IncMutation("remove", "failure")
	} else {
		s.metrics.IncMutation("remove", "success")
	}
	return multierr.Combine(cmdErr, s.Refresh(ctx))
}

// Clear removes the entire remote cart and empties local state. Local state
// is cleared unconditionally once the remote call completes, even when the
// server rejects it; only a transport failure leaves the mirror in place.
func (s *Store) Clear(ctx context.Context, clearCustomer bool) error {
	if err := s.ClearRemote(ctx); err != nil {
		var statusErr *rest.StatusError
		if !errors.As(err, &statusErr) {
			return err
		}
		s.ResetLocal(clearCustomer)
		return err
	}
	s.ResetLocal(clearCustomer)
	return nil
}

// ClearRemote issues the remote cart-wipe command only.
func (s *Store) ClearRemote(ctx context.Context) error {
	err := s.client.Delete(ctx, "/cart/")
	if err != nil {
		s.metrics.IncMutation("clear", "failure")
		return err
	}
	s.metrics.IncMutation("clear", "success")
	return nil
}

// ResetLocal empties the local mirror, optionally dropping the selected
// customer association.
func (s *Store) ResetLocal(clearCustomer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	if clearCustomer {
		s.customer = nil
	}
}

func (s *Store) SetCustomer(customer types.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := customer
	s.customer = &c
}

func (s *Store) RemoveCustomer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = nil
}

func (s *Store) Customer() *types.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

func (s *Store) SetPaymentMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethod = method
	return nil
}

func (s *Store) PaymentMethod() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentMethod
}

// Lines returns a copy of the current cart lines in display order.
func (s *Store) Lines() []types.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the total selected quantity across all lines.
func (s *Store) Count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalSum is the display-only sum of cached line prices. It is never sent
// to the order service and never shown as an authoritative total.
func (s *Store) TotalSum() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}
