package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase/interfaces"
	mock_interfaces "laboratorio_dental/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPaymentUseCase_BalanceTracksPayments(t *testing.T) {
	ctx := context.Background()
	l := newLedger(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))
	o, err := l.orderUC.Create(ctx, acrylicOrder(500))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	check := func(step string, got entities.Order) {
		t.Helper()
		want := got.Cost.Sub(got.TotalPaid())
		if !got.Balance().Equal(want) {
			t.Fatalf("%s: balance %s != cost - paid %s", step, got.Balance(), want)
		}
	}

	a, err := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("120.25")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	check("add 1", a)

	b, err := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("79.75"), Description: "transferencia"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	check("add 2", b)
	if !b.Balance().Equal(dec("300")) {
		t.Fatalf("expected balance 300, got %s", b.Balance())
	}

	first := b.Payments[0].ID
	c, err := l.paymentUC.UpdatePayment(ctx, o.ID, first, PaymentInput{Amount: dec("20.25")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	check("update", c)
	if !c.Balance().Equal(dec("400")) {
		t.Fatalf("expected balance 400, got %s", c.Balance())
	}

	d, err := l.paymentUC.DeletePayment(ctx, o.ID, first)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	check("delete", d)
	if len(d.Payments) != 1 || !d.Balance().Equal(dec("420.25")) {
		t.Fatalf("expected one payment and balance 420.25, got %d %s", len(d.Payments), d.Balance())
	}
}

func TestPaymentUseCase_FullPaymentNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("partial payment does not notify", func(t *testing.T) {
		l := newLedger(time.Now())
		o, _ := l.orderUC.Create(ctx, acrylicOrder(300))
		if _, err := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("299.99")}); err != nil {
			t.Fatalf("add: %v", err)
		}
		if n := l.notifications.forOrder(o.ID); len(n) != 0 {
			t.Fatalf("expected no notifications, got %+v", n)
		}
	})

	t.Run("payment reaching zero notifies", func(t *testing.T) {
		l := newLedger(time.Now())
		o, _ := l.orderUC.Create(ctx, acrylicOrder(300))
		_, _ = l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("200")})
		if _, err := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("100")}); err != nil {
			t.Fatalf("add: %v", err)
		}
		n := l.notifications.forOrder(o.ID)
		if len(n) != 1 || !strings.Contains(n[0].Message, "pagada en su totalidad") {
			t.Fatalf("expected fully paid notification, got %+v", n)
		}
	})

	t.Run("update and delete never touch notifications", func(t *testing.T) {
		l := newLedger(time.Now())
		o, _ := l.orderUC.Create(ctx, acrylicOrder(300))
		a, _ := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("100")})
		pid := a.Payments[0].ID

		// Raising the payment to the full cost goes through update, not add.
		if _, err := l.paymentUC.UpdatePayment(ctx, o.ID, pid, PaymentInput{Amount: dec("300")}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if n := l.notifications.forOrder(o.ID); len(n) != 0 {
			t.Fatalf("expected no notifications after update, got %+v", n)
		}

		if _, err := l.paymentUC.DeletePayment(ctx, o.ID, pid); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if n := l.notifications.forOrder(o.ID); len(n) != 0 {
			t.Fatalf("expected no notifications after delete, got %+v", n)
		}
	})
}

func TestPaymentUseCase_Validations(t *testing.T) {
	ctx := context.Background()
	l := newLedger(time.Now())
	o, _ := l.orderUC.Create(ctx, acrylicOrder(300))
	a, _ := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("100")})
	pid := a.Payments[0].ID

	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"empty order id", func() error {
			_, err := l.paymentUC.AddPayment(ctx, " ", PaymentInput{Amount: dec("1")})
			return err
		}, ErrInvalidOrderID},
		{"unknown order", func() error {
			_, err := l.paymentUC.AddPayment(ctx, "missing", PaymentInput{Amount: dec("1")})
			return err
		}, ErrOrderNotFound},
		{"zero amount", func() error {
			_, err := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: decimal.Zero})
			return err
		}, ErrInvalidPaymentAmount},
		{"over payment on add", func() error {
			_, err := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("200.01")})
			return err
		}, ErrOverpayment},
		{"over payment on update", func() error {
			_, err := l.paymentUC.UpdatePayment(ctx, o.ID, pid, PaymentInput{Amount: dec("300.01")})
			return err
		}, ErrOverpayment},
		{"unknown payment", func() error {
			_, err := l.paymentUC.UpdatePayment(ctx, o.ID, "nope", PaymentInput{Amount: dec("1")})
			return err
		}, ErrPaymentNotFound},
		{"empty payment id", func() error {
			_, err := l.paymentUC.DeletePayment(ctx, o.ID, "")
			return err
		}, ErrInvalidPaymentID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPaymentUseCase_AddPayment_DefaultsDate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 8, 8, 0, 0, 0, time.UTC)
	l := newLedger(now)
	o, _ := l.orderUC.Create(ctx, acrylicOrder(300))

	got, _ := l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("10")})
	if !got.Payments[0].Date.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got.Payments[0].Date)
	}

	explicit := now.Add(-72 * time.Hour)
	got, _ = l.paymentUC.AddPayment(ctx, o.ID, PaymentInput{Amount: dec("10"), Date: &explicit})
	if !got.Payments[1].Date.Equal(explicit) {
		t.Fatalf("expected %v, got %v", explicit, got.Payments[1].Date)
	}
}

func TestPaymentUseCase_UpdatePayment_VersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)

	stored := entities.Order{
		ID:       "o-1",
		Cost:     dec("100"),
		Payments: []entities.Payment{{ID: "p-1", Amount: dec("50")}},
		Version:  2,
	}
	repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Order{}, interfaces.ErrVersionConflict)

	uc := NewPaymentUseCase(repo, nil, nil)
	_, err := uc.UpdatePayment(context.Background(), "o-1", "p-1", PaymentInput{Amount: dec("60")})
	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
}

func TestPaymentUseCase_AddPayment_CardCharge(t *testing.T) {
	stored := entities.Order{ID: "o-1", OrderNumber: "ZIR-25-0004", Cost: dec("250")}

	t.Run("charges the payment amount and keeps the provider id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Fatalf("payload not json: %v", err)
				}
				if req["transaction_amount"] != 99.5 {
					t.Fatalf("expected transaction_amount 99.5, got %v", req["transaction_amount"])
				}
				if req["external_reference"] != "ZIR-25-0004" {
					t.Fatalf("expected external_reference, got %v", req["external_reference"])
				}
				return "mp-123", "approved", json.RawMessage(`{}`), nil
			})
		repo.EXPECT().AppendPayment(gomock.Any(), "o-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, p entities.Payment) (entities.Order, error) {
				if p.ProviderPaymentID != "mp-123" {
					t.Fatalf("expected provider id mp-123, got %q", p.ProviderPaymentID)
				}
				o := stored
				o.Payments = []entities.Payment{p}
				return o, nil
			})

		uc := NewPaymentUseCase(repo, gateway, nil)
		_, err := uc.AddPayment(context.Background(), "o-1", PaymentInput{
			Amount:          dec("99.5"),
			ProviderPayload: json.RawMessage(`{"payment_method_id":"visa","transaction_amount":1}`),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("declined card records nothing", func(t *testing.T) {
		for _, status := range []string{"rejected", "in_process", "pending"} {
			ctrl := gomock.NewController(t)
			repo := mock_interfaces.NewMockIOrderRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			notifications := mock_interfaces.NewMockINotificationRepository(ctrl)
			repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-9", status, json.RawMessage(`{}`), nil)

			uc := NewPaymentUseCase(repo, gateway, notifications)
			_, err := uc.AddPayment(context.Background(), "o-1", PaymentInput{
				Amount:          dec("250"),
				ProviderPayload: json.RawMessage(`{"payment_method_id":"visa"}`),
			})
			if !errors.Is(err, ErrPaymentRejected) {
				t.Fatalf("status %s: expected ErrPaymentRejected, got %v", status, err)
			}
			ctrl.Finish()
		}
	})

	t.Run("charged but not recorded is logged with the provider id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-77", "approved", json.RawMessage(`{}`), nil)
		repo.EXPECT().AppendPayment(gomock.Any(), "o-1", gomock.Any()).Return(entities.Order{}, errors.New("throttled"))

		var buf bytes.Buffer
		ctx := logging.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		uc := NewPaymentUseCase(repo, gateway, nil)
		_, err := uc.AddPayment(ctx, "o-1", PaymentInput{
			Amount:          dec("40"),
			ProviderPayload: json.RawMessage(`{"payment_method_id":"visa"}`),
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		logged := buf.String()
		if !strings.Contains(logged, `"level":"ERROR"`) || !strings.Contains(logged, `"provider_payment_id":"mp-77"`) || !strings.Contains(logged, `"amount":"40"`) {
			t.Fatalf("charge not traceable in logs: %s", logged)
		}
	})

	t.Run("payload without payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)

		uc := NewPaymentUseCase(repo, gateway, nil)
		_, err := uc.AddPayment(context.Background(), "o-1", PaymentInput{Amount: dec("10"), ProviderPayload: json.RawMessage(`{"token":"x"}`)})
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)

		uc := NewPaymentUseCase(repo, nil, nil)
		_, err := uc.AddPayment(context.Background(), "o-1", PaymentInput{Amount: dec("10"), ProviderPayload: json.RawMessage(`{"payment_method_id":"pix"}`)})
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("gateway errors are classified and nothing is recorded", func(t *testing.T) {
		cases := map[string]error{
			`{"message":"Customer not found","status":404}`: ErrPaymentGatewayCustomerNotFound,
			`{"cause":[{"code":2034}]}`:                     ErrPaymentGatewayInvalidUsers,
			`{"error":"unauthorized","status":401}`:         ErrPaymentGatewayUnauthorized,
			`{"error":"bad_request","status":400}`:          ErrPaymentGatewayBadRequest,
		}
		for body, want := range cases {
			ctrl := gomock.NewController(t)
			repo := mock_interfaces.NewMockIOrderRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(stored, nil)
			gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(body))

			uc := NewPaymentUseCase(repo, gateway, nil)
			_, err := uc.AddPayment(context.Background(), "o-1", PaymentInput{Amount: dec("10"), ProviderPayload: json.RawMessage(`{"payment_method_id":"pix"}`)})
			if !errors.Is(err, want) {
				t.Fatalf("body %s: expected %v, got %v", body, want, err)
			}
			ctrl.Finish()
		}
	})
}
