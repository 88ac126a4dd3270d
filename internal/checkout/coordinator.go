package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/craftline/pos-terminal/internal/cart"
	pkgerrors "github.com/craftline/pos-terminal/pkg/errors"
	"github.com/craftline/pos-terminal/pkg/logger"
	"github.com/craftline/pos-terminal/pkg/metrics"
	"github.com/craftline/pos-terminal/pkg/rest"
	"github.com/craftline/pos-terminal/pkg/types"
)

// Guard rejections. Both happen before any remote call is issued.
var (
	ErrEmptyCart          = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	ErrCheckoutInProgress = pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
)

var (
	errOrdersRequired  = errors.New("checkout orders client is required")
	errCartRequired    = errors.New("checkout cart store is required")
	errCatalogRequired = errors.New("checkout catalog refresher is required")
	errLoggerRequired  = errors.New("checkout logger is required")
)

type catalogRefresher interface {
	Refresh(ctx context.Context) error
}

// Coordinator drives a single checkout attempt to a terminal outcome. The
// processing guard enforces at most one in-flight attempt per terminal; it
// protects this client instance only and is not a distributed lock.
type Coordinator struct {
	orders  *rest.Client
	cart    *cart.Store
	catalog catalogRefresher
	logger  *logger.Logger
	metrics *metrics.CheckoutMetrics
	timeout time.Duration

	processing atomic.Bool
}

type checkoutResponse struct {
	ID         int64           `json:"id"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func NewCoordinator(
	orders *rest.Client,
	cartStore *cart.Store,
	catalog catalogRefresher,
	logg *logger.Logger,
	m *metrics.CheckoutMetrics,
	submitTimeout time.Duration,
) (*Coordinator, error) {
	if orders == nil {
		return nil, errOrdersRequired
	}
	if cartStore == nil {
		return nil, errCartRequired
	}
	if catalog == nil {
		return nil, errCatalogRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}
	if submitTimeout <= 0 {
		submitTimeout = 30 * time.Second
	}
	return &Coordinator{
		orders:  orders,
		cart:    cartStore,
		catalog: catalog,
		logger:  logg,
		metrics: m,
		timeout: submitTimeout,
	}, nil
}

// Processing reports whether a checkout attempt is currently in flight.
func (c *Coordinator) Processing() bool {
	return c.processing.Load()
}

// Process submits the current cart as an order. Guard rejections surface as
// errors; terminal outcomes (success and remote failure alike) surface as a
// CheckoutResult so callers branch on the result instead of catching.
func (c *Coordinator) Process(ctx context.Context) (types.CheckoutResult, error) {
	if !c.processing.CompareAndSwap(false, true) {
		return types.CheckoutResult{}, ErrCheckoutInProgress
	}
	defer c.processing.Store(false)

	lines := c.cart.Lines()
	if len(lines) == 0 {
		return types.CheckoutResult{}, ErrEmptyCart
	}

	customer := c.cart.Customer()
	payload := buildPayload(lines, c.cart.PaymentMethod(), customer)

	start := time.Now()
	submitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp checkoutResponse
	if err := c.orders.Post(submitCtx, "/orders/checkout/", nil, payload, &resp); err != nil {
		c.metrics.ObserveCheckout("failure", time.Since(start))
		c.logger.Error(c.logger.WithOperation(ctx, "checkout"), "order submission failed", err)
		return types.CheckoutResult{Success: false, Text: failureText(err)}, nil
	}
	c.metrics.ObserveCheckout("success", time.Since(start))

	lctx := c.logger.WithFields(ctx, map[string]any{
		"order_id":    resp.ID,
		"total_price": resp.TotalPrice,
	})
	c.logger.Info(lctx, "order accepted")

	c.settle(ctx)

	return types.CheckoutResult{
		Success: true,
		Total:   resp.TotalPrice,
		Text:    successText(resp.TotalPrice, customer),
	}, nil
}

// settle reconciles local state after an accepted order. The catalog
// refresh runs first: the committed order has changed warehouse stock, and
// stale reference data must not outlive a cleanup hiccup. Each step is
// best-effort; a failure is logged and the remaining steps still run.
func (c *Coordinator) settle(ctx context.Context) {
	if err := c.catalog.Refresh(ctx); err != nil {
		c.logger.Warn(c.logger.WithField(ctx, "error", err.Error()), "post-checkout catalog refresh degraded")
	}
	if err := c.cart.ClearRemote(ctx); err != nil {
		c.logger.Error(ctx, "post-checkout remote cart clear failed", err)
	}
	c.cart.ResetLocal(true)
}

func buildPayload(lines []types.CartLine, paymentMethod string, customer *types.Customer) types.CheckoutPayload {
	items := make([]types.CheckoutItem, len(lines))
	for i, line := range lines {
		modifiers := line.Modifiers
		if modifiers == nil {
			modifiers = []types.Modifier{}
		}
		items[i] = types.CheckoutItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Modifiers: modifiers,
		}
	}

	payload := types.CheckoutPayload{
		Items:         items,
		PaymentMethod: paymentMethod,
	}
	if customer != nil {
		id := customer.ID
		payload.CustomerID = &id
	}
	return payload
}

// successText reports the server-priced total, never the local display sum.
func successText(total decimal.Decimal, customer *types.Customer) string {
	text := fmt.Sprintf("payment successful, total %s", total.StringFixed(2))
	if customer != nil {
		text += fmt.Sprintf(" (customer: %s)", customer.Name)
	}
	return text
}

func failureText(err error) string {
	var statusErr *rest.StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return "payment failed: " + statusErr.Detail
	}
	return "payment failed, please try again"
}
