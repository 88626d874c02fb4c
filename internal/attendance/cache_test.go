package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRedisInvalidatorDeletesHistoryKey(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	studentID := uuid.New()

	mock.ExpectDel(HistoryKey(studentID)).SetVal(1)

	inv := NewRedisInvalidator(rdb, zap.NewNop())
	inv.InvalidateHistory(context.Background(), studentID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisInvalidatorSwallowsFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	studentID := uuid.New()

	mock.ExpectDel(HistoryKey(studentID)).SetErr(errors.New("connection refused"))

	inv := NewRedisInvalidator(rdb, zap.NewNop())
	inv.InvalidateHistory(context.Background(), studentID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
