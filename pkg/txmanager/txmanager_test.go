package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
)

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeBeginner struct{}

func (fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return fakeTx{}, nil
}

// repoWrap reproduces the repository error wrapping so the tests cover
// the chain a serialization failure actually travels through: sentinel,
// then the driver error, then another sentinel layer in the use case.
func repoWrap(err error) error {
	execErr := fmt.Errorf("%w: Create - execute insert: %w",
		errors.New("booking: failed to execute query"), err)
	return fmt.Errorf("%w: failed to create booking: %w",
		errors.New("schedule_event: internal error"), execErr)
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	m := NewTransactionManager(fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return repoWrap(&pq.Error{Code: "40001"})
	})

	require.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
	assert.True(t, IsSerializationFailure(err))
}

func TestDoSerializable_SucceedsAfterRetry(t *testing.T) {
	m := NewTransactionManager(fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return repoWrap(&pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	m := NewTransactionManager(fakeBeginner{})

	boom := errors.New("boom")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return repoWrap(boom)
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"bare 40001", &pq.Error{Code: "40001"}, true},
		{"bare deadlock", &pq.Error{Code: "40P01"}, true},
		{"repository-wrapped 40001", repoWrap(&pq.Error{Code: "40001"}), true},
		{"other pq code", &pq.Error{Code: "23P01"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}
