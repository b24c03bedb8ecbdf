package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func selectEntries(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Options(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreNotFoundErrs)
}

func TestGormLogger_LogModeReturnsClone(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)

	clone, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Warn, clone.level)
	assert.Equal(t, gormlogger.Info, gl.level)
}

func TestGormLogger_LevelGating(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Silent)

	gl.Info(context.Background(), "suppressed")
	gl.Warn(context.Background(), "suppressed")
	gl.Error(context.Background(), "suppressed")

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Info(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	gl.Info(context.Background(), "migrated %d tables", 5)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "migrated 5 tables")
}

func TestGormLogger_Trace_Error(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), selectEntries("SELECT * FROM entries", 0), errors.New("connection reset"))

	entries := recorded.FilterMessage("sql error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "SELECT * FROM entries", entries[0].ContextMap()["sql"])
}

func TestGormLogger_Trace_NotFoundIgnored(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), selectEntries("SELECT * FROM invoices WHERE id = ?", 0), gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_NotFoundLoggedWhenConfigured(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

	gl.Trace(context.Background(), time.Now(), selectEntries("SELECT 1", 0), gormlogger.ErrRecordNotFound)

	assert.Len(t, recorded.FilterMessage("sql error").All(), 1)
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	gl.Trace(context.Background(), time.Now().Add(-time.Second), selectEntries("SELECT * FROM entries", 10), nil)

	entries := recorded.FilterMessage("slow query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLogger_Trace_DebugStatement(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), selectEntries("SELECT * FROM vendors", 3), nil)

	entries := recorded.FilterMessage("sql").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
}

func TestGormLogger_Trace_Silent(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), selectEntries("SELECT 1", 1), nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_CarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	gl.Trace(ctx, time.Now(), selectEntries("SELECT 1", 1), nil)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Warn},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
