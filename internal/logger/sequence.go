package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SequenceKey is the field holding an entry's number.
const SequenceKey = "seq"

// sequenceCore numbers every written entry. Cores derived through With share
// the counter of their parent.
type sequenceCore struct {
	zapcore.Core
	counter *atomic.Uint64
}

func newSequenceCore(inner zapcore.Core) zapcore.Core {
	return &sequenceCore{Core: inner, counter: new(atomic.Uint64)}
}

func (c *sequenceCore) With(fields []zapcore.Field) zapcore.Core {
	return &sequenceCore{Core: c.Core.With(fields), counter: c.counter}
}

func (c *sequenceCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sequenceCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	n := c.counter.Add(1)
	all := make([]zapcore.Field, 0, len(fields)+1)
	all = append(all, fields...)
	return c.Core.Write(ent, append(all, zap.Uint64(SequenceKey, n)))
}
