package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	sentinel := errors.New("booking.repository: failed to execute query")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure wrapped by repository",
			err:  fmt.Errorf("%w: Create - execute insert: %w", sentinel, &pq.Error{Code: "40001"}),
			want: true,
		},
		{
			name: "deadlock wrapped on commit",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "40P01"}),
			want: true,
		},
		{
			name: "bare driver error",
			err:  &pq.Error{Code: "40001"},
			want: true,
		},
		{
			name: "other pg error code",
			err:  fmt.Errorf("%w: Create - execute insert: %w", sentinel, &pq.Error{Code: "23505"}),
			want: false,
		},
		{
			name: "non-driver error",
			err:  fmt.Errorf("%w: Create - execute insert: %v", sentinel, errors.New("boom")),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
