package usecase

import (
	"context"
	"errors"
	"testing"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase/interfaces"
	mock_interfaces "laboratorio_dental/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestDoctorUseCase_Create(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		uc := NewDoctorUseCase(nil, nil)
		_, err := uc.Create(context.Background(), DoctorInput{Name: "  "})
		if !errors.Is(err, ErrInvalidDoctorName) {
			t.Fatalf("expected ErrInvalidDoctorName, got %v", err)
		}
	})

	t.Run("success trims fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, d entities.Doctor) (entities.Doctor, error) { return d, nil })

		uc := NewDoctorUseCase(repo, nil)
		d, err := uc.Create(context.Background(), DoctorInput{Name: " Dr. Soto ", Clinic: " Sonrisas "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.ID == "" || d.Name != "Dr. Soto" || d.Clinic != "Sonrisas" || d.CreatedAt.IsZero() {
			t.Fatalf("unexpected doctor: %+v", d)
		}
	})
}

func TestDoctorUseCase_Delete_Cascade(t *testing.T) {
	t.Run("deletes the doctor with all its orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Doctor{ID: "doc-1"}, nil)
		gomock.InOrder(
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-1", "o-2"}, nil),
			repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", []string{"o-1", "o-2"}).Return(true, nil),
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return(nil, nil),
		)

		uc := NewDoctorUseCase(repo, orders)
		n, err := uc.Delete(context.Background(), "doc-1")
		if err != nil || n != 2 {
			t.Fatalf("expected 2 orders deleted, got %d %v", n, err)
		}
	})

	t.Run("stale order set is listed again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Doctor{ID: "doc-1"}, nil)
		gomock.InOrder(
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-1", "o-2"}, nil),
			repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", []string{"o-1", "o-2"}).Return(false, interfaces.ErrCascadeStale),
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-1"}, nil),
			repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", []string{"o-1"}).Return(true, nil),
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return(nil, nil),
		)

		uc := NewDoctorUseCase(repo, orders)
		n, err := uc.Delete(context.Background(), "doc-1")
		if err != nil || n != 1 {
			t.Fatalf("expected 1 order deleted, got %d %v", n, err)
		}
	})

	t.Run("gives up when the order set keeps changing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Doctor{ID: "doc-1"}, nil)
		orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-1"}, nil).Times(cascadeAttempts)
		repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", []string{"o-1"}).Return(false, interfaces.ErrCascadeStale).Times(cascadeAttempts)
		orders.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		uc := NewDoctorUseCase(repo, orders)
		if _, err := uc.Delete(context.Background(), "doc-1"); !errors.Is(err, ErrDoctorOrdersBusy) {
			t.Fatalf("expected ErrDoctorOrdersBusy, got %v", err)
		}
	})

	t.Run("orders created before the commit are removed after it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Doctor{ID: "doc-1"}, nil)
		gomock.InOrder(
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-1"}, nil),
			repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", []string{"o-1"}).Return(true, nil),
			orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-late"}, nil),
			orders.EXPECT().Delete(gomock.Any(), "o-late").Return(true, nil),
		)

		uc := NewDoctorUseCase(repo, orders)
		n, err := uc.Delete(context.Background(), "doc-1")
		if err != nil || n != 2 {
			t.Fatalf("expected 2 orders deleted, got %d %v", n, err)
		}
	})

	t.Run("failed transaction leaves everything in place", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Doctor{ID: "doc-1"}, nil)
		orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return([]string{"o-1"}, nil)
		repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", []string{"o-1"}).Return(false, errors.New("transaction canceled"))
		// No order is deleted one by one.
		orders.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		uc := NewDoctorUseCase(repo, orders)
		if _, err := uc.Delete(context.Background(), "doc-1"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("too many orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Doctor{ID: "doc-1"}, nil)
		orders.EXPECT().ListIDsByDoctorID(gomock.Any(), "doc-1").Return(nil, nil)
		repo.EXPECT().DeleteWithOrders(gomock.Any(), "doc-1", gomock.Any()).Return(false, interfaces.ErrCascadeTooLarge)

		uc := NewDoctorUseCase(repo, orders)
		if _, err := uc.Delete(context.Background(), "doc-1"); !errors.Is(err, ErrCascadeTooLarge) {
			t.Fatalf("expected ErrCascadeTooLarge, got %v", err)
		}
	})

	t.Run("unknown doctor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDoctorRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "doc-9").Return(entities.Doctor{}, nil)

		uc := NewDoctorUseCase(repo, nil)
		if _, err := uc.Delete(context.Background(), "doc-9"); !errors.Is(err, ErrDoctorNotFound) {
			t.Fatalf("expected ErrDoctorNotFound, got %v", err)
		}
	})
}

func TestDoctorUseCase_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newMemDoctors(
		entities.Doctor{ID: "2", Name: "zamora"},
		entities.Doctor{ID: "1", Name: "Álvarez"},
		entities.Doctor{ID: "3", Name: "Benítez"},
	)
	uc := NewDoctorUseCase(repo, newMemOrders())

	list, err := uc.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("unexpected list: %v %v", list, err)
	}
	if list[0].Name != "Álvarez" || list[1].Name != "Benítez" || list[2].Name != "zamora" {
		t.Fatalf("expected accent-insensitive order, got %s, %s, %s", list[0].Name, list[1].Name, list[2].Name)
	}

	updated, err := uc.Update(ctx, "2", DoctorInput{Name: "Zamora", Phone: "555"})
	if err != nil || updated.Name != "Zamora" || updated.Phone != "555" {
		t.Fatalf("unexpected update: %+v %v", updated, err)
	}

	if _, err := uc.Update(ctx, "404", DoctorInput{Name: "x"}); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
	if _, err := uc.ListOrders(ctx, "404"); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}
