// Package services implements the conversion engine's business logic.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
	"github.com/fredcamaral/deckmd/internal/domain/ports"
	"github.com/fredcamaral/deckmd/pkg/logger"
)

// progressBuffer is sized so a run never blocks on a slow consumer:
// progress values are deduplicated, so at most 101 distinct values plus
// the terminal 100 can ever be sent.
const progressBuffer = 128

// ConverterService drives one conversion run at a time: it obtains the
// slide sequence from the reader, accumulates the output document in a
// single pass, and reports progress and the terminal result through the
// returned handle.
type ConverterService struct {
	reader   ports.DeckReader
	renderer ports.DocumentRenderer
	writer   ports.DocumentWriter
	logger   logger.Logger

	mu     sync.Mutex
	active bool
}

// NewConverterService creates a conversion service
func NewConverterService(
	reader ports.DeckReader,
	renderer ports.DocumentRenderer,
	writer ports.DocumentWriter,
	log logger.Logger,
) *ConverterService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ConverterService{
		reader:   reader,
		renderer: renderer,
		writer:   writer,
		logger:   log,
	}
}

// run implements ports.ConversionHandle
type run struct {
	id       string
	progress chan int
	result   chan entities.ConversionResult
	last     int
}

func newRun() *run {
	return &run{
		id:       uuid.NewString(),
		progress: make(chan int, progressBuffer),
		result:   make(chan entities.ConversionResult, 1),
		last:     -1,
	}
}

func (r *run) ID() string { return r.id }

func (r *run) Progress() <-chan int { return r.progress }

func (r *run) Result() <-chan entities.ConversionResult { return r.result }

// emit publishes a progress value, skipping duplicates. Values are
// non-decreasing by construction.
func (r *run) emit(v int) {
	if v == r.last {
		return
	}
	r.last = v
	select {
	case r.progress <- v:
	default:
		// Buffer full can only happen with a consumer that never
		// drains; dropping keeps the run from blocking.
	}
}

// finish delivers the single terminal result and closes both channels.
func (r *run) finish(res entities.ConversionResult) {
	r.result <- res
	close(r.progress)
	close(r.result)
}

// Convert starts a background conversion run. It fails immediately with
// entities.ErrConversionInProgress when a previous run on this engine
// is still outstanding.
func (s *ConverterService) Convert(ctx context.Context, sourcePath, destPath string) (ports.ConversionHandle, error) {
	if sourcePath == "" {
		return nil, errors.New("source path cannot be empty")
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil, entities.ErrConversionInProgress
	}
	s.active = true
	s.mu.Unlock()

	if destPath == "" {
		destPath = entities.DefaultDestination(sourcePath)
	}

	r := newRun()
	log := s.logger.With(
		logger.String("run_id", r.id),
		logger.String("source", sourcePath),
		logger.String("dest", destPath),
	)

	go func() {
		started := time.Now()
		res := s.execute(ctx, r, sourcePath, destPath, log)

		s.release()

		if res.Success {
			log.Info("conversion succeeded",
				logger.String("output", res.OutputPath),
				logger.Duration("elapsed", time.Since(started)))
		} else {
			log.Warn("conversion failed",
				logger.String("error", res.Error),
				logger.Duration("elapsed", time.Since(started)))
		}

		r.finish(res)
	}()

	return r, nil
}

func (s *ConverterService) release() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// execute performs one full run: Reading -> Converting -> Writing. The
// slide sequence is walked exactly once and the document accumulates in
// a single growing buffer.
func (s *ConverterService) execute(ctx context.Context, r *run, sourcePath, destPath string, log logger.Logger) entities.ConversionResult {
	log.Debug("state change", logger.String("state", string(entities.StateReading)))
	deck, err := s.reader.Open(ctx, sourcePath)
	if err != nil {
		// The only path with zero progress events.
		return entities.NewFailureResult(err)
	}

	log.Debug("state change",
		logger.String("state", string(entities.StateConverting)),
		logger.Int("slides", deck.SlideCount()))

	total := deck.SlideCount()
	var doc strings.Builder
	doc.WriteString(s.renderer.RenderHeader(deck.Name(), deck.Metadata))

	for i := range deck.Slides {
		select {
		case <-ctx.Done():
			return entities.NewFailureResult(entities.NewCancelledError(ctx.Err()))
		default:
		}

		r.emit(entities.ProgressPercent(i, total))
		doc.WriteString(s.renderer.RenderSlide(&deck.Slides[i]))
	}

	// Scanning done. Emitted unconditionally, before the write phase.
	r.emit(100)

	log.Debug("state change", logger.String("state", string(entities.StateWriting)))
	if err := s.writer.Write(destPath, []byte(doc.String())); err != nil {
		return entities.NewFailureResult(err)
	}

	return entities.NewSuccessResult(destPath)
}
