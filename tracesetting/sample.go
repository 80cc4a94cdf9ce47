package tracesetting

import (
	"context"

	"github.com/modelserving/tracing/activity"
	"github.com/modelserving/tracing/metric"
)

// SampleTrace runs the rate/count sampling decision for one candidate
// request. It reports true when this candidate should become a Trace; the
// caller (manager.TraceManager) is responsible for actually constructing
// the Trace and asking the host runtime to create its handle.
//
// count==0 on entry means the budget is already exhausted: sampled is
// false even though sample%rate matched. A negative count is unlimited
// and is never decremented.
func (s *TraceSetting) SampleTrace(ctx context.Context) bool {
	if !s.Valid() {
		return false
	}

	s.mu.Lock()
	s.sample++
	sampled := s.sample%s.rate.Value == 0
	if sampled {
		switch {
		case s.count.Value > 0:
			s.count.Value--
			s.created++
		case s.count.Value == 0:
			sampled = false
		default: // negative: unlimited
			s.created++
		}
	}
	s.mu.Unlock()

	s.recorder.RecordSample(ctx, s.modelName)
	if sampled {
		s.recorder.RecordCreated(ctx, s.modelName)
	}
	return sampled
}

// WriteTrace is called once per Trace, when the Trace is released, to
// fold its per-sub-trace fragments into this setting's accumulating
// buffer and apply the flush policy. Only meaningful in TRITON mode;
// callers in OTEL mode need not call it.
//
// Flush fires when either the count budget has just been fully drained
// (count==0 and every sampled candidate has now been collected) or the
// buffered-sample count has reached logFrequency. A fired flush always
// writes to an indexed file (to_index_file=true), since WriteTrace-driven
// flushes are always rotations, never the final destructor flush.
func (s *TraceSetting) WriteTrace(ctx context.Context, streams map[string]string) {
	s.mu.Lock()

	var fragment string
	for _, frag := range streams {
		if fragment != "" {
			fragment += ","
		}
		fragment += frag
	}

	if s.sampleInStream != 0 {
		s.traceStream.WriteString(",")
	}
	s.traceStream.WriteString(fragment)
	s.sampleInStream++
	s.collected++

	countDrained := s.count.Value == 0 && s.collected == s.sample
	logFreqHit := s.logFrequency.Value != 0 && s.sampleInStream >= s.logFrequency.Value

	var flushed string
	var flushedCount uint64
	doFlush := countDrained || logFreqHit
	if doFlush {
		flushed = s.traceStream.String()
		flushedCount = s.sampleInStream
		s.traceStream.Reset()
		s.sampleInStream = 0
	}
	s.mu.Unlock()

	if !doFlush {
		return
	}

	trigger := metric.FlushTriggerLogFreq
	if countDrained {
		trigger = metric.FlushTriggerCountDrain
	}
	s.recorder.RecordFlush(ctx, s.modelName, trigger, int(flushedCount))

	if s.file != nil {
		s.file.SaveTraces(ctx, flushed, true)
	}
}

// Close is the destructor-equivalent described in spec: in TRITON mode,
// if any samples remain buffered, they are flushed now — indexed if
// logFrequency rotation is in use, aggregate otherwise. It is safe to
// call more than once (later calls are no-ops) and is also registered as
// a finalizer at construction so a setting that simply falls out of
// scope still flushes its remainder.
func (s *TraceSetting) Close(ctx context.Context) {
	s.mu.Lock()
	if s.mode.Value != activity.ModeTriton || s.sampleInStream == 0 {
		s.mu.Unlock()
		return
	}

	flushed := s.traceStream.String()
	flushedCount := s.sampleInStream
	s.traceStream.Reset()
	s.sampleInStream = 0
	s.mu.Unlock()

	s.recorder.RecordFlush(ctx, s.modelName, metric.FlushTriggerDestruction, int(flushedCount))

	if s.file != nil {
		s.file.SaveTraces(ctx, flushed, s.logFrequency.Value != 0)
	}
}
