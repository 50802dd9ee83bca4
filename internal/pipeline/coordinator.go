package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/streamlex/live-translator/internal/extraction"
	"github.com/streamlex/live-translator/internal/models"
	"github.com/streamlex/live-translator/pkg/audio"
	"github.com/streamlex/live-translator/pkg/logging"
)

// Sentinel errors returned by Start so callers can map failures to
// transport-level responses.
var (
	ErrBusy          = errors.New("pipeline busy")
	ErrStreamNotLive = errors.New("stream is not live")
)

// Callbacks for the three outbound event channels. Each invocation is
// recover-guarded at the coordinator boundary: a failing observer is
// logged and swallowed, never destabilizing the pipeline.
type (
	TranscriptionFunc func(models.TranscriptionResult)
	ErrorFunc         func(string)
	StateFunc         func(State)
)

// Options configures a Coordinator.
type Options struct {
	// Workers is the number of segment-processing workers. The default
	// of 1 preserves strict emission ordering; higher values trade
	// ordering for throughput (results may arrive out of segment order).
	Workers int
	// QueueSize bounds the audio segment queue. Segments arriving while
	// the queue is full are dropped and reported as recoverable errors.
	QueueSize int
	// StopTimeout bounds the worker join during Stop. Stragglers are
	// logged and abandoned so the Stopped transition always completes.
	StopTimeout time.Duration
	// VADThreshold is the RMS amplitude above which a segment is
	// considered to contain speech.
	VADThreshold float64
}

// Coordinator drives the streaming pipeline: it owns the state machine,
// the segment queue, the processing workers, the outbound callbacks and
// the running statistics.
type Coordinator struct {
	extractor extraction.Extractor
	processor *SegmentProcessor
	stats     *Stats
	opts      Options
	logger    *logrus.Entry

	mu        sync.Mutex
	state     State
	config    Config
	sessionID string
	streamRef string
	queue     chan *Segment
	stopCh    chan struct{}
	workers   sync.WaitGroup

	onTranscription TranscriptionFunc
	onError         ErrorFunc
	onState         StateFunc
}

// NewCoordinator creates a stopped coordinator.
func NewCoordinator(extractor extraction.Extractor, processor *SegmentProcessor, stats *Stats, cfg Config, opts Options) *Coordinator {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 5 * time.Second
	}
	c := &Coordinator{
		extractor: extractor,
		processor: processor,
		stats:     stats,
		opts:      opts,
		state:     StateStopped,
		config:    cfg,
		logger:    logging.WithComponent("coordinator"),
	}
	if processor != nil {
		processor.notify = c.reportError
	}
	return c
}

// SetTranscriptionCallback registers the transcription result observer.
func (c *Coordinator) SetTranscriptionCallback(fn TranscriptionFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTranscription = fn
}

// SetErrorCallback registers the error observer.
func (c *Coordinator) SetErrorCallback(fn ErrorFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// SetStateCallback registers the state change observer.
func (c *Coordinator) SetStateCallback(fn StateFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = fn
}

// State returns the current pipeline state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the identifier of the current (or last) run.
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Config returns the current configuration snapshot.
func (c *Coordinator) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// setState transitions to a new state under the lock and reports it.
// A no-op transition (new state equals current) is suppressed.
func (c *Coordinator) setState(newState State) {
	c.mu.Lock()
	if c.state == newState {
		c.mu.Unlock()
		return
	}
	c.state = newState
	fn := c.onState
	c.mu.Unlock()

	c.logger.WithField("state", newState).Info("state changed")
	c.invokeState(fn, newState)
}

// reportError surfaces a recoverable error: counted, logged, delivered.
func (c *Coordinator) reportError(message string) {
	c.stats.RecordError()
	c.logger.Error(message)

	c.mu.Lock()
	fn := c.onError
	c.mu.Unlock()
	c.invokeError(fn, message)
}

// Start validates the stream and brings the pipeline to Running. It is
// rejected unless the current state is Stopped.
func (c *Coordinator) Start(ctx context.Context, streamRef string) error {
	c.mu.Lock()
	if c.state != StateStopped {
		state := c.state
		c.mu.Unlock()
		c.logger.WithField("state", state).Warn("start rejected, pipeline not stopped")
		return fmt.Errorf("pipeline is %s, not stopped: %w", state, ErrBusy)
	}
	c.state = StateStarting
	c.sessionID = uuid.NewString()
	c.streamRef = streamRef
	stateFn := c.onState
	c.mu.Unlock()
	c.logger.WithField("state", StateStarting).Info("state changed")
	c.invokeState(stateFn, StateStarting)

	// Validation runs outside the lock; a concurrent Stop may flip the
	// state underneath us and wins.
	live, err := c.extractor.IsLive(ctx, streamRef)
	if err != nil {
		return c.failStart(fmt.Errorf("stream validation failed: %w", err))
	}
	if !live {
		return c.failStart(ErrStreamNotLive)
	}

	info, err := c.extractor.Resolve(ctx, streamRef)
	if err != nil {
		return c.failStart(fmt.Errorf("stream resolution failed: %w", err))
	}

	c.mu.Lock()
	if c.state != StateStarting {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("start aborted, pipeline is %s: %w", state, ErrBusy)
	}
	c.queue = make(chan *Segment, c.opts.QueueSize)
	c.stopCh = make(chan struct{})
	queue := c.queue
	stopCh := c.stopCh
	duration := c.config.SegmentDuration
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"title":    info.Title,
		"uploader": info.Uploader,
	}).Info("stream resolved")

	for i := 0; i < c.opts.Workers; i++ {
		c.workers.Add(1)
		go c.runWorker(fmt.Sprintf("worker-%d", i+1), queue, stopCh)
	}

	// The extraction loop outlives this call. Its lifetime is bound to
	// Stop, not to the caller's context, which only covers validation.
	if err := c.extractor.StartContinuous(context.Background(), streamRef, c.enqueueSegment, duration); err != nil {
		c.signalWorkers(queue, stopCh)
		c.workers.Wait()
		c.mu.Lock()
		c.queue = nil
		c.stopCh = nil
		c.mu.Unlock()
		return c.failStart(fmt.Errorf("extraction start failed: %w", err))
	}

	c.mu.Lock()
	if c.state != StateStarting {
		state := c.state
		c.mu.Unlock()
		// A concurrent Stop won the race. Shut extraction back down and
		// leave the state where Stop put it.
		c.extractor.Stop()
		return fmt.Errorf("start aborted, pipeline is %s: %w", state, ErrBusy)
	}
	c.state = StateRunning
	fn := c.onState
	c.mu.Unlock()
	c.logger.WithField("state", StateRunning).Info("state changed")
	c.invokeState(fn, StateRunning)
	return nil
}

// failStart reports a start failure and moves the pipeline to Error.
func (c *Coordinator) failStart(err error) error {
	c.reportError(err.Error())
	c.setState(StateError)
	return err
}

// enqueueSegment is the extraction-side callback. It applies the cheap
// audio-presence pre-filter before queueing so silent segments do not
// waste recognition calls; this is an optimization, not a guarantee.
func (c *Coordinator) enqueueSegment(data []byte) {
	c.mu.Lock()
	state := c.state
	queue := c.queue
	cfg := c.config
	c.mu.Unlock()

	if state != StateRunning && state != StateStarting {
		return
	}

	if !audio.DetectSpeech(data, c.opts.VADThreshold) {
		c.logger.Debug("segment without speech skipped at enqueue")
		return
	}

	seg := &Segment{
		ID:         uuid.NewString(),
		Audio:      data,
		Config:     cfg,
		EnqueuedAt: time.Now().UTC(),
	}

	select {
	case queue <- seg:
	default:
		c.reportError("segment queue full, segment dropped")
	}
}

// runWorker pulls segments until it receives a terminal marker or the
// stop channel closes. Any panic inside processing is contained here so
// the worker survives to handle the next segment.
func (c *Coordinator) runWorker(id string, queue chan *Segment, stopCh chan struct{}) {
	defer c.workers.Done()

	logger := c.logger.WithField("worker", id)
	logger.Debug("worker started")
	defer logger.Debug("worker stopped")

	for {
		select {
		case <-stopCh:
			return
		case seg := <-queue:
			if seg == nil {
				// Terminal marker.
				return
			}
			c.processSegment(seg)
		}
	}
}

// processSegment runs one segment through the processor with panic
// containment and forwards the outcome to the registered observers.
func (c *Coordinator) processSegment(seg *Segment) {
	defer func() {
		if r := recover(); r != nil {
			c.reportError(fmt.Sprintf("panic while processing segment %s: %v", seg.ID, r))
		}
	}()

	result, err := c.processor.Process(context.Background(), seg)
	if err != nil {
		c.reportError(fmt.Sprintf("segment %s processing failed: %v", seg.ID, err))
		return
	}
	if result == nil {
		// Dropped silently: no speech or nothing recognized.
		return
	}

	c.mu.Lock()
	fn := c.onTranscription
	c.mu.Unlock()
	c.invokeTranscription(fn, *result)
}

// Stop brings the pipeline to Stopped. It is idempotent, a no-op when
// already stopped, and safe to call concurrently with an in-flight
// Start. The observable transition to Stopped always completes even if
// a worker fails to join within the timeout.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.state == StateStopped || c.state == StateStopping {
		c.mu.Unlock()
		return
	}
	c.state = StateStopping
	queue := c.queue
	stopCh := c.stopCh
	stateFn := c.onState
	c.mu.Unlock()
	c.logger.WithField("state", StateStopping).Info("state changed")
	c.invokeState(stateFn, StateStopping)

	c.extractor.Stop()

	if queue != nil {
		c.signalWorkers(queue, stopCh)

		joined := make(chan struct{})
		go func() {
			c.workers.Wait()
			close(joined)
		}()
		select {
		case <-joined:
		case <-time.After(c.opts.StopTimeout):
			c.logger.Warn("worker join timed out, abandoning straggler")
		}

		c.drainQueue(queue)
	}

	c.mu.Lock()
	c.queue = nil
	c.stopCh = nil
	c.mu.Unlock()

	c.setState(StateStopped)
	c.logger.Info("pipeline stopped")
}

// signalWorkers pushes one terminal marker per worker and closes the
// stop channel for workers that cannot receive a marker.
func (c *Coordinator) signalWorkers(queue chan *Segment, stopCh chan struct{}) {
	for i := 0; i < c.opts.Workers; i++ {
		select {
		case queue <- nil:
		default:
		}
	}
	if stopCh != nil {
		close(stopCh)
	}
}

// drainQueue discards remaining segments without processing them.
func (c *Coordinator) drainQueue(queue chan *Segment) {
	for {
		select {
		case <-queue:
		default:
			return
		}
	}
}

// Configure applies a partial configuration update. It never blocks and
// is effective for segments enqueued after the call.
func (c *Coordinator) Configure(update ConfigUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if update.SegmentDuration != nil && *update.SegmentDuration <= 0 {
		return fmt.Errorf("segment duration must be positive, got %d", *update.SegmentDuration)
	}

	if update.SourceLanguage != nil && *update.SourceLanguage != "" {
		c.config.SourceLanguage = *update.SourceLanguage
	}
	if update.TargetLanguage != nil && *update.TargetLanguage != "" {
		c.config.TargetLanguage = *update.TargetLanguage
	}
	if update.SegmentDuration != nil {
		c.config.SegmentDuration = *update.SegmentDuration
	}

	c.logger.WithFields(logrus.Fields{
		"source_language":  c.config.SourceLanguage,
		"target_language":  c.config.TargetLanguage,
		"segment_duration": c.config.SegmentDuration,
	}).Info("configuration updated")
	return nil
}

// Stats returns an immutable snapshot of the running statistics.
func (c *Coordinator) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}

// ResetStats zeroes the statistics counters.
func (c *Coordinator) ResetStats() {
	c.stats.Reset()
}

// invokeTranscription delivers a result with panic containment.
func (c *Coordinator) invokeTranscription(fn TranscriptionFunc, result models.TranscriptionResult) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithField("panic", r).Error("transcription callback panicked")
		}
	}()
	fn(result)
}

// invokeError delivers an error message with panic containment.
func (c *Coordinator) invokeError(fn ErrorFunc, message string) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithField("panic", r).Error("error callback panicked")
		}
	}()
	fn(message)
}

// invokeState delivers a state change with panic containment.
func (c *Coordinator) invokeState(fn StateFunc, state State) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithField("panic", r).Error("state callback panicked")
		}
	}()
	fn(state)
}
