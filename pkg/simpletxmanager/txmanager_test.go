package simpletxmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	sentinel := errors.New("booking.repository: failed to execute query")

	assert.True(t, isRetryable(fmt.Errorf("%w: Create - execute insert: %w", sentinel, &pq.Error{Code: "40001"})))
	assert.True(t, isRetryable(fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "40P01"})))
	assert.False(t, isRetryable(fmt.Errorf("%w: Create - execute insert: %w", sentinel, &pq.Error{Code: "23505"})))
	assert.False(t, isRetryable(errors.New("boom")))
	assert.False(t, isRetryable(nil))
}
