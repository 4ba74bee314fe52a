package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

// ErrSequenceConsumed is yielded when a List sequence is ranged over twice.
var ErrSequenceConsumed = errors.New("project sequence already consumed")

// Store is the project collection. List is ordered ascending by ordem; the
// sequence is lazy and can be ranged over only once.
type Store interface {
	List(ctx context.Context) iter.Seq2[domain.Project, error]
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (string, error)
	Update(ctx context.Context, id string, in domain.ProjectInput) error
	Delete(ctx context.Context, id string) error
}

// Collect drains a List sequence into a slice, stopping at the first error.
func Collect(seq iter.Seq2[domain.Project, error]) ([]domain.Project, error) {
	out := make([]domain.Project, 0, 16)
	for p, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func oneShot(seq iter.Seq2[domain.Project, error]) iter.Seq2[domain.Project, error] {
	var used atomic.Bool
	return func(yield func(domain.Project, error) bool) {
		if used.Swap(true) {
			yield(domain.Project{}, ErrSequenceConsumed)
			return
		}
		seq(yield)
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}
