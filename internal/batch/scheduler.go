package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler rescans the statement folder on a cron schedule and processes
// statements it has not seen before. Seen-state is in memory only; a restart
// reprocesses the folder, which is safe because exports are timestamped.
type Scheduler struct {
	cron      *cron.Cron
	processor *Processor
	dir       string
	cutoff    time.Time
	logger    *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewScheduler creates a folder watcher around an existing Processor.
func NewScheduler(processor *Processor, dir string, cutoff time.Time, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(
		slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		processor: processor,
		dir:       dir,
		cutoff:    cutoff,
		logger:    logger,
		seen:      make(map[string]struct{}),
	}
}

// Start registers the rescan job under the given cron spec (standard
// 5-field format) and starts the scheduler. An immediate first scan runs
// before the schedule takes over.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.rescan); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("statement folder watch started",
		slog.String("dir", s.dir),
		slog.String("schedule", spec))

	s.rescan()
	return nil
}

// Stop stops the schedule; the returned context is done once any in-flight
// rescan finishes.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("statement folder watch stopping")
	return s.cron.Stop()
}

func (s *Scheduler) rescan() {
	files, err := FindStatements(s.dir, s.cutoff)
	if err != nil {
		s.logger.Error("statement folder scan failed",
			slog.String("dir", s.dir),
			slog.Any("error", err))
		return
	}

	fresh := s.takeUnseen(files)
	if len(fresh) == 0 {
		s.logger.Debug("no new statements", slog.String("dir", s.dir))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.processor.RunFiles(ctx, fresh)
	if err != nil {
		s.logger.Error("scheduled batch run failed", slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled batch run finished",
		slog.String("job_id", result.JobID.String()),
		slog.Int("processed", len(result.Processed)),
		slog.Int("failed", len(result.Failed)))
}

// takeUnseen filters out already-processed paths and marks the remainder as
// seen. Failed files are marked too: a broken PDF stays broken until the
// operator replaces it, and retrying every tick would just spam the log.
func (s *Scheduler) takeUnseen(files []StatementFile) []StatementFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []StatementFile
	for _, f := range files {
		if _, ok := s.seen[f.Path]; ok {
			continue
		}
		s.seen[f.Path] = struct{}{}
		fresh = append(fresh, f)
	}
	return fresh
}
