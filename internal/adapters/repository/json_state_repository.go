package repository

import (
	"fmt"
	"os"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/campus-event-manager/navigation-service/internal/core/ports"
	"github.com/campus-event-manager/navigation-service/internal/metrics"
)

const (
	// MaxFileSize caps the state file. Crossing 80% of it rotates the old
	// file aside before the next write.
	MaxFileSize = 500 * 1024

	// BackupSuffix names the rotated sibling.
	BackupSuffix = ".backup"

	backupThreshold = MaxFileSize * 8 / 10
)

// JSONStateRepository persists the navigation snapshot as one JSON document
// on local disk. Writes go through a temp file rename so a crash never leaves
// a half-written state behind, and through a circuit breaker so a persistently
// failing disk stops being retried on every navigation.
type JSONStateRepository struct {
	path    string
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time
	logger  zerolog.Logger
}

var _ ports.StateRepository = (*JSONStateRepository)(nil)

func NewJSONStateRepository(
	path string,
	breaker *gobreaker.CircuitBreaker,
	logger zerolog.Logger,
) *JSONStateRepository {
	return &JSONStateRepository{
		path:    path,
		breaker: breaker,
		now:     time.Now,
		logger:  logger.With().Str("component", "state_file").Str("path", path).Logger(),
	}
}

// Load reads and decodes the state file. A missing file surfaces as a wrapped
// fs.ErrNotExist so the caller can tell a fresh install from a broken file.
func (r *JSONStateRepository) Load() (*ports.StateDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	doc, err := decodeDocument(data, r.logger)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("bytes", len(data)).
		Int("history", len(doc.History)).
		Int("view_states", len(doc.ViewStates)).
		Msg("loaded navigation state")
	return doc, nil
}

// Save serializes the snapshot and writes it out, rotating an oversized
// predecessor to a .backup sibling first.
func (r *JSONStateRepository) Save(doc *ports.StateDocument) error {
	payload, err := encodeDocument(doc, r.now())
	if err != nil {
		return fmt.Errorf("encode state document: %w", err)
	}

	if _, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.write(payload)
	}); err != nil {
		return err
	}

	metrics.StateFileBytes.Set(float64(len(payload)))
	return nil
}

func (r *JSONStateRepository) write(payload []byte) error {
	r.rotateIfOversized()

	if err := renameio.WriteFile(r.path, payload, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// rotateIfOversized renames the current file aside once it nears the size
// cap. Best effort: a failed rename is logged and the save proceeds over the
// old file.
func (r *JSONStateRepository) rotateIfOversized() {
	info, err := os.Stat(r.path)
	if err != nil || info.Size() < backupThreshold {
		return
	}

	backup := r.path + BackupSuffix
	if err := os.Rename(r.path, backup); err != nil {
		r.logger.Warn().Err(err).Msg("state file backup failed")
		return
	}
	r.logger.Info().
		Int64("bytes", info.Size()).
		Str("backup", backup).
		Msg("rotated oversized state file")
}
