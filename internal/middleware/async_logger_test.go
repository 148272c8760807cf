package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/mocks"
)

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestAsyncLoggerConfig_WithDefaults(t *testing.T) {
	cfg := AsyncLoggerConfig{NumWorkers: 2}.withDefaults()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger(t *testing.T) {
	t.Run("nil logging service returns nil", func(t *testing.T) {
		assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
	})

	t.Run("custom config", func(t *testing.T) {
		al := NewAsyncLogger(new(mocks.MockLoggingService), AsyncLoggerConfig{
			BufferSize:   100,
			NumWorkers:   2,
			WriteTimeout: time.Second,
		})
		require.NotNil(t, al)
		assert.Equal(t, 100, cap(al.entryCh))
		al.Stop()
	})
}

func TestAsyncLogger_NilReceiver(t *testing.T) {
	var al *AsyncLogger

	assert.False(t, al.Log(&model.LogEntry{Message: "ignored"}))
	assert.NotPanics(t, al.Stop)
}

func TestAsyncLogger_Log(t *testing.T) {
	t.Run("logs within buffer size", func(t *testing.T) {
		svc := new(mocks.MockLoggingService)
		svc.On("CreateLog", mock.Anything, mock.Anything).Return(nil)

		al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, WriteTimeout: time.Second})

		enqueued := 0
		for range 5 {
			if al.Log(&model.LogEntry{Level: "info", Message: "test"}) {
				enqueued++
			}
		}

		assert.Equal(t, 5, enqueued)
		al.Stop()
	})

	t.Run("drops when buffer is full", func(t *testing.T) {
		blockCh := make(chan struct{})
		svc := new(mocks.MockLoggingService)
		svc.On("CreateLog", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			<-blockCh
		}).Return(nil)

		al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 3, NumWorkers: 1, WriteTimeout: time.Second})

		dropped := 0
		for range 10 {
			if !al.Log(&model.LogEntry{Level: "info", Message: "test"}) {
				dropped++
			}
		}

		assert.Greater(t, dropped, 0)
		_, statsDropped, _, _ := al.Stats()
		assert.Equal(t, int64(dropped), statsDropped)

		close(blockCh)
		al.Stop()
	})

	t.Run("nil entry is ignored", func(t *testing.T) {
		al := NewAsyncLogger(new(mocks.MockLoggingService), DefaultAsyncLoggerConfig())
		defer al.Stop()

		assert.False(t, al.Log(nil))
	})
}

func TestAsyncLogger_Stats(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.Anything).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 2, WriteTimeout: time.Second})
	defer al.Stop()

	for range 5 {
		al.Log(&model.LogEntry{Level: "info", Message: "test"})
	}

	require.Eventually(t, func() bool {
		_, _, written, _ := al.Stats()
		return written == 5
	}, time.Second, 10*time.Millisecond)

	enqueued, dropped, _, errCount := al.Stats()
	assert.Equal(t, int64(5), enqueued)
	assert.Equal(t, int64(0), dropped)
	assert.Equal(t, int64(0), errCount)
}

func TestAsyncLogger_ErrorHandling(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.Anything).Return(errors.New("db error"))

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 2, WriteTimeout: time.Second})
	defer al.Stop()

	for range 3 {
		al.Log(&model.LogEntry{Level: "info", Message: "test"})
	}

	require.Eventually(t, func() bool {
		_, _, _, errCount := al.Stats()
		return errCount == 3
	}, time.Second, 10*time.Millisecond)
}

func TestAsyncLogger_Stop(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.Anything).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 4, WriteTimeout: time.Second})

	for range 10 {
		al.Log(&model.LogEntry{Level: "info", Message: "test"})
	}

	al.Stop()

	_, _, written, _ := al.Stats()
	assert.Equal(t, int64(10), written)

	assert.False(t, al.Log(&model.LogEntry{Message: "after stop"}))
	assert.NotPanics(t, al.Stop)
}

func TestGlobalAsyncLogger(t *testing.T) {
	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())

	svc := new(mocks.MockLoggingService)
	svc.On("CreateLog", mock.Anything, mock.Anything).Return(nil)

	InitAsyncLogger(svc, DefaultAsyncLoggerConfig())
	require.NotNil(t, GetAsyncLogger())
	assert.True(t, GetAsyncLogger().Log(&model.LogEntry{Level: "info", Message: "test"}))

	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())
	StopAsyncLogger()
}

func TestInitAsyncLogger_ReplacesExisting(t *testing.T) {
	svc1 := new(mocks.MockLoggingService)
	svc2 := new(mocks.MockLoggingService)

	InitAsyncLogger(svc1, DefaultAsyncLoggerConfig())
	first := GetAsyncLogger()
	require.NotNil(t, first)

	InitAsyncLogger(svc2, DefaultAsyncLoggerConfig())
	second := GetAsyncLogger()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.False(t, first.Log(&model.LogEntry{Message: "old logger is stopped"}))

	StopAsyncLogger()
}
