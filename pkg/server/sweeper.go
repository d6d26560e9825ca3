package server

import (
	"context"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"

	"github.com/polaroidwall/polaroidwall/pkg/storage"
	"github.com/polaroidwall/polaroidwall/pkg/store"
)

// OrphanSweeper removes stored image files that no polaroid references. These
// are left behind when removing a file fails after its record was deleted.
type OrphanSweeper struct {
	logger        log.Logger
	sentryClient  *raven.Client
	polaroidStore store.PolaroidStore
	storage       storage.Storage
	gracePeriod   time.Duration
	now           func() time.Time
}

func NewOrphanSweeper(logger log.Logger, sentryClient *raven.Client, polaroidStore store.PolaroidStore, storage storage.Storage, gracePeriod time.Duration) *OrphanSweeper {
	return &OrphanSweeper{
		logger:        logger,
		sentryClient:  sentryClient,
		polaroidStore: polaroidStore,
		storage:       storage,
		gracePeriod:   gracePeriod,
		now:           time.Now,
	}
}

func (s *OrphanSweeper) Start(ctx context.Context, interval time.Duration) error {
	for {
		select {
		case <-time.After(interval):
			s.logger.Info("Sweeping orphaned image files")
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error(err.Error())
				s.sentryClient.CaptureError(err, map[string]string{})
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Sweep makes a single pass and returns the number of files removed. Files
// younger than the grace period are skipped, as they may belong to a create
// request that has not inserted its record yet.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	// Files are listed before records so that a file written after the listing
	// is never considered.
	files, err := s.storage.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "cannot sweep files: unable to list files")
	}

	polaroids, err := s.polaroidStore.List(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "cannot sweep files: unable to list polaroids")
	}

	referenced := make(map[string]bool, len(polaroids))
	for _, polaroid := range polaroids {
		referenced[polaroid.Image] = true
	}

	cutoff := s.now().Add(-s.gracePeriod)
	removed := 0
	for _, file := range files {
		if referenced[file.Image] || file.ModTime.After(cutoff) {
			continue
		}

		logger := s.logger.With("image", file.Image)
		if err := s.storage.Remove(ctx, file.Image); err != nil {
			err = errors.Wrap(err, "failed to remove orphaned file")
			logger.Error(err.Error())
			s.sentryClient.CaptureError(err, map[string]string{"image": file.Image})
			continue
		}

		logger.Info("removed orphaned file")
		removed++
	}

	return removed, nil
}
