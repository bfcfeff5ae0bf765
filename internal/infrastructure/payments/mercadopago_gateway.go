package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

const defaultSandboxPayerEmail = "test_user_ar@testuser.com"

// Options configures the gateway. With Mock set no call leaves the process and every
// charge is approved.
type Options struct {
	AccessToken    string
	TestPayerEmail string
	Mock           bool
}

type MercadoPagoGateway struct {
	client     payment.Client
	mockMode   bool
	payerEmail string
	now        func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts Options) (*MercadoPagoGateway, error) {
	payerEmail := strings.TrimSpace(opts.TestPayerEmail)
	if payerEmail == "" {
		payerEmail = defaultSandboxPayerEmail
	}

	if opts.Mock {
		slog.Info("payment gateway mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, payerEmail: payerEmail, now: time.Now}, nil
	}

	if opts.AccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		return nil, err
	}
	slog.Info("mercado pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), payerEmail: payerEmail, now: time.Now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	logger := logging.FromContext(ctx).With(slog.String("component", "mercadopago"))
	if g == nil || (!g.mockMode && g.client == nil) {
		logger.Error("gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}

	body := map[string]any{}
	if err := json.Unmarshal(requestPayload, &body); err != nil {
		logger.Warn("payload unmarshal failed", slog.String("error", err.Error()))
		return "", "", nil, err
	}
	g.ensurePayer(body)

	if g.mockMode {
		return g.mockCreate(logger, body)
	}

	normalized, err := json.Marshal(body)
	if err != nil {
		return "", "", nil, err
	}
	var req payment.Request
	if err := json.Unmarshal(normalized, &req); err != nil {
		logger.Warn("payload does not match payment request", slog.String("error", err.Error()))
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		logger.Warn("sdk create failed", slog.String("error", err.Error()))
		return "", "", nil, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	logger.Info("payment created", slog.String("provider_payment_id", id), slog.String("provider_status", resp.Status))
	return id, resp.Status, raw, nil
}

func (g *MercadoPagoGateway) mockCreate(logger *slog.Logger, body map[string]any) (string, string, json.RawMessage, error) {
	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	stamp := now.Format(time.RFC3339Nano)

	body["id"] = id
	body["status"] = "approved"
	body["status_detail"] = "accredited"
	if _, ok := body["date_created"]; !ok {
		body["date_created"] = stamp
	}
	if _, ok := body["date_approved"]; !ok {
		body["date_approved"] = stamp
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", "", nil, err
	}
	logger.Info("mock payment approved", slog.String("provider_payment_id", id))
	return id, "approved", raw, nil
}

// ensurePayer fills payer.type and, when the payload identifies no payer at all,
// the configured sandbox email.
func (g *MercadoPagoGateway) ensurePayer(body map[string]any) {
	payer, ok := body["payer"].(map[string]any)
	if !ok {
		payer = map[string]any{}
		body["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) {
		return
	}
	if email, _ := payer["email"].(string); strings.TrimSpace(email) == "" {
		payer["email"] = g.payerEmail
	}
}

func hasPayerID(payer map[string]any) bool {
	switch v := payer["id"].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return v != 0
	}
	return false
}
