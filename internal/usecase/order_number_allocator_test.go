package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"laboratorio_dental/internal/domain/entities"
	mock_interfaces "laboratorio_dental/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestOrderNumberAllocator_Next(t *testing.T) {
	ctx := context.Background()
	counter := newMemCounter()
	a := NewOrderNumberAllocator(counter, nil)
	at := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		category string
		want     string
	}{
		{"IMPLANTES", "IMP-25-0001"},
		{"implantes", "IMP-25-0002"},
		{"Metal Porcelana", "MPC-25-0001"},
		{"Prótesis removible", "PTR-25-0001"},
		{"Encerado", "ORD-25-0001"},
	}
	for _, tc := range cases {
		got, err := a.Next(ctx, tc.category, at)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.category, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.category, tc.want, got)
		}
	}

	nextYear, _ := a.Next(ctx, "IMPLANTES", at.AddDate(1, 0, 0))
	if nextYear != "IMP-26-0001" {
		t.Fatalf("expected the counter to restart per year, got %s", nextYear)
	}
}

func TestOrderNumberAllocator_SeedCounters(t *testing.T) {
	ctx := context.Background()
	orders := newMemOrders()
	counter := newMemCounter()
	counter.seqs["ACR-25"] = 9

	for id, number := range map[string]string{
		"a": "PTF-25-0003",
		"b": "PTF-25-0011",
		"c": "ACR-25-0002",
		"d": "legacy-number",
	} {
		orders.put(entities.Order{ID: id, OrderNumber: number})
	}

	a := NewOrderNumberAllocator(counter, orders)
	seeded, err := a.SeedCounters(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seeded != 2 {
		t.Fatalf("expected 2 keys, got %d", seeded)
	}
	if counter.seqs["PTF-25"] != 11 {
		t.Fatalf("expected PTF-25 at 11, got %d", counter.seqs["PTF-25"])
	}
	if counter.seqs["ACR-25"] != 9 {
		t.Fatalf("expected ACR-25 to stay at 9, got %d", counter.seqs["ACR-25"])
	}

	next, _ := a.Next(ctx, "PRÓTESIS FIJA", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if next != "PTF-25-0012" {
		t.Fatalf("expected PTF-25-0012, got %s", next)
	}
}

func TestOrderNumberAllocator_SeedCounters_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	counter := mock_interfaces.NewMockISequenceCounter(ctrl)

	orders.EXPECT().ListOrderNumbers(gomock.Any()).Return([]string{"CER-25-0004"}, nil)
	counter.EXPECT().SeedAtLeast(gomock.Any(), "CER-25", int64(4)).Return(errors.New("denied"))

	a := NewOrderNumberAllocator(counter, orders)
	if _, err := a.SeedCounters(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
