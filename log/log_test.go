package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oriumgames/worldeditor/log"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string, fields ...log.Field) { r.lines = append(r.lines, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, fields ...log.Field)  { r.lines = append(r.lines, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, fields ...log.Field)  { r.lines = append(r.lines, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, fields ...log.Field) { r.lines = append(r.lines, "error:"+msg) }

func TestDefaultLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		log.Info("hello", log.F("k", "v"))
	})
}

func TestSetLoggerRoutesCalls(t *testing.T) {
	rec := &recordingLogger{}
	log.SetLogger(rec)
	defer log.SetLogger(nil)

	log.Info("a")
	log.Warn("b")
	log.Error("c")

	assert.Equal(t, []string{"info:a", "warn:b", "error:c"}, rec.lines)
}

func TestSetLoggerNilResetsToNoop(t *testing.T) {
	log.SetLogger(&recordingLogger{})
	log.SetLogger(nil)
	assert.IsType(t, log.Noop(), log.GetLogger())
}
