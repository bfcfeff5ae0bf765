package interfaces

//go:generate mockgen -source=sequence_counter_interface.go -destination=mocks/sequence_counter_interface_mock.go -package=mock_interfaces

import "context"

// ISequenceCounter is a monotonic counter per key.
//
// Next must be a single atomic increment-and-read. SeedAtLeast raises the counter to
// value and never lowers it.
type ISequenceCounter interface {
	Next(ctx context.Context, key string) (int64, error)
	SeedAtLeast(ctx context.Context, key string, value int64) error
}
