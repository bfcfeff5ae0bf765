package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidPaymentAmount           = errors.New("payment amount must be greater than zero")
	ErrOverpayment                    = errors.New("payment exceeds the order balance")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
	ErrPaymentRejected                = errors.New("payment not approved by the provider")
)

const providerStatusApproved = "approved"

// PaymentInput is a payment as submitted. A zero Date means now.
// ProviderPayload, when present, is charged through the payment gateway first.
type PaymentInput struct {
	Amount          decimal.Decimal
	Date            *time.Time
	Description     string
	ProviderPayload json.RawMessage
}

// IPaymentUseCase manages the payments embedded in an order.
//
// Only AddPayment derives the fully-paid notification; updating or deleting a
// payment never creates or removes notifications.
type IPaymentUseCase interface {
	AddPayment(ctx context.Context, orderID string, in PaymentInput) (entities.Order, error)
	UpdatePayment(ctx context.Context, orderID, paymentID string, in PaymentInput) (entities.Order, error)
	DeletePayment(ctx context.Context, orderID, paymentID string) (entities.Order, error)
}

type PaymentUseCase struct {
	repo     interfaces.IOrderRepository
	gateway  interfaces.IPaymentGateway
	notifier notifier
	now      func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, notifications interfaces.INotificationRepository) *PaymentUseCase {
	return &PaymentUseCase{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier{repo: notifications, now: time.Now},
		now:      time.Now,
	}
}

func (u *PaymentUseCase) AddPayment(ctx context.Context, orderID string, in PaymentInput) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !in.Amount.IsPositive() {
		return entities.Order{}, ErrInvalidPaymentAmount
	}
	if in.Amount.GreaterThan(o.Balance()) {
		return entities.Order{}, ErrOverpayment
	}

	p := entities.Payment{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Date:        u.now().UTC(),
		Description: strings.TrimSpace(in.Description),
	}
	if in.Date != nil {
		p.Date = in.Date.UTC()
	}

	if len(in.ProviderPayload) > 0 {
		providerID, err := u.charge(ctx, o, in.Amount, in.ProviderPayload)
		if err != nil {
			return entities.Order{}, err
		}
		p.ProviderPaymentID = providerID
	}

	updated, err := u.repo.AppendPayment(ctx, o.ID, p)
	if err == nil && updated.ID == "" {
		err = ErrOrderNotFound
	}
	if err != nil {
		if p.ProviderPaymentID != "" {
			logging.FromContext(ctx).Error("card charged but payment not recorded",
				slog.String("order_id", o.ID),
				slog.String("provider_payment_id", p.ProviderPaymentID),
				slog.String("amount", p.Amount.String()),
				slog.String("error", err.Error()),
			)
		}
		return entities.Order{}, err
	}
	logging.FromContext(ctx).Info("payment added",
		slog.String("order_id", updated.ID),
		slog.String("payment_id", p.ID),
		slog.String("amount", p.Amount.String()),
	)

	if !updated.Balance().IsPositive() {
		u.notifier.bestEffort(ctx, updated.ID, fullyPaidMessage(updated))
	}
	return updated, nil
}

func (u *PaymentUseCase) UpdatePayment(ctx context.Context, orderID, paymentID string, in PaymentInput) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	idx, err := paymentIndex(o, paymentID)
	if err != nil {
		return entities.Order{}, err
	}
	if !in.Amount.IsPositive() {
		return entities.Order{}, ErrInvalidPaymentAmount
	}

	current := o.Payments[idx]
	if in.Amount.GreaterThan(o.Balance().Add(current.Amount)) {
		return entities.Order{}, ErrOverpayment
	}

	current.Amount = in.Amount
	current.Description = strings.TrimSpace(in.Description)
	if in.Date != nil {
		current.Date = in.Date.UTC()
	}
	o.Payments[idx] = current

	return u.save(ctx, o)
}

func (u *PaymentUseCase) DeletePayment(ctx context.Context, orderID, paymentID string) (entities.Order, error) {
	o, err := u.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	idx, err := paymentIndex(o, paymentID)
	if err != nil {
		return entities.Order{}, err
	}

	o.Payments = append(o.Payments[:idx], o.Payments[idx+1:]...)
	return u.save(ctx, o)
}

func (u *PaymentUseCase) loadOrder(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *PaymentUseCase) save(ctx context.Context, o entities.Order) (entities.Order, error) {
	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Order{}, ErrConcurrentUpdate
		}
		return entities.Order{}, err
	}
	return saved, nil
}

func paymentIndex(o entities.Order, paymentID string) (int, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return -1, ErrInvalidPaymentID
	}
	idx := o.PaymentIndex(paymentID)
	if idx < 0 {
		return -1, ErrPaymentNotFound
	}
	return idx, nil
}

// charge sends the card payment to the gateway. The amount charged is always the
// payment amount, whatever the payload says.
func (u *PaymentUseCase) charge(ctx context.Context, o entities.Order, amount decimal.Decimal, payload json.RawMessage) (string, error) {
	logger := logging.FromContext(ctx).With(slog.String("order_id", o.ID))
	if u.gateway == nil {
		logger.Error("payment gateway not configured")
		return "", ErrPaymentGatewayNotConfigured
	}

	var req map[string]any
	if !json.Valid(payload) || json.Unmarshal(payload, &req) != nil || req == nil {
		logger.Warn("invalid provider payload", slog.Int("payload_len", len(payload)))
		return "", ErrInvalidMPPayload
	}
	if !hasNonEmptyString(req, "payment_method_id") {
		logger.Warn("provider payload without payment_method_id")
		return "", ErrInvalidMPPayload
	}

	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = o.OrderNumber
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Orden %s", o.OrderNumber)
	}
	req["transaction_amount"] = amount.InexactFloat64()

	enriched, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	providerID, providerStatus, _, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		logger.Warn("payment gateway failed", slog.String("error", err.Error()))
		return "", classifyGatewayError(err)
	}
	if providerStatus != providerStatusApproved {
		logger.Warn("payment not approved",
			slog.String("provider_payment_id", providerID),
			slog.String("provider_status", providerStatus),
		)
		return "", fmt.Errorf("%w: status %s", ErrPaymentRejected, providerStatus)
	}
	logger.Info("payment gateway success",
		slog.String("provider_payment_id", providerID),
		slog.String("provider_status", providerStatus),
	)
	return providerID, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

// classifyGatewayError maps Mercado Pago error bodies onto sentinels.
func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
