package payments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	_, err := NewMercadoPagoGateway(Options{})
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMercadoPagoGateway_MockCreate(t *testing.T) {
	g, err := NewMercadoPagoGateway(Options{Mock: true, TestPayerEmail: "qa@testuser.com"})
	require.NoError(t, err)
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	g.now = func() time.Time { return at }

	id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":150.5,"payment_method_id":"visa"}`))
	require.NoError(t, err)
	assert.Equal(t, "approved", status)
	assert.NotEmpty(t, id)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, id, body["id"])
	assert.Equal(t, 150.5, body["transaction_amount"])
	assert.Equal(t, at.Format(time.RFC3339Nano), body["date_created"])
	payer := body["payer"].(map[string]any)
	assert.Equal(t, "qa@testuser.com", payer["email"])
	assert.Equal(t, "customer", payer["type"])
}

func TestMercadoPagoGateway_InvalidPayload(t *testing.T) {
	g, err := NewMercadoPagoGateway(Options{Mock: true})
	require.NoError(t, err)

	_, _, _, err = g.CreatePayment(context.Background(), json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
}

func TestEnsurePayer(t *testing.T) {
	g := &MercadoPagoGateway{payerEmail: defaultSandboxPayerEmail}

	cases := []struct {
		name      string
		payer     map[string]any
		wantEmail any
	}{
		{"missing payer", nil, defaultSandboxPayerEmail},
		{"blank email", map[string]any{"email": "  "}, defaultSandboxPayerEmail},
		{"explicit email", map[string]any{"email": "dr@clinica.test"}, "dr@clinica.test"},
		{"payer id only", map[string]any{"id": "123"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := map[string]any{}
			if tc.payer != nil {
				body["payer"] = tc.payer
			}
			g.ensurePayer(body)
			payer := body["payer"].(map[string]any)
			assert.Equal(t, tc.wantEmail, payer["email"])
			assert.Equal(t, "customer", payer["type"])
		})
	}
}
