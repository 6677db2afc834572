package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.True(t, handler.ContainsAttr("code", int64(500)))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		assert.Equal(t, 4, handler.Count())
	})

	t.Run("keeps attributes from With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "batch").With("profile", "tubular").Info("file exported", "rows", 3)
		logger.WithGroup("report").Info("summary", "missing", 1)

		records := handler.GetRecords()
		assert.Len(t, records, 2)
		assert.Equal(t, "batch", records[0].Attrs["component"])
		assert.Equal(t, "tubular", records[0].Attrs["profile"])
		assert.Equal(t, int64(3), records[0].Attrs["rows"])
		assert.Equal(t, int64(1), records[1].Attrs["report.missing"])

		// derived loggers share the parent's buffer
		AssertLogContains(t, handler, slog.LevelInfo, "file exported")
		AssertLogAttr(t, handler, "component", "batch")
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")
		handler.Clear()

		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}
