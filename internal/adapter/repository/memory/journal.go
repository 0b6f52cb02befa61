package memory

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/vadiminshakov/gowal"

	"github.com/iho/pintwise/internal/domain"
)

const (
	journalKeyPrefix     = "pint_entry_"
	journalDirPermission = 0o755

	journalSegmentThreshold = 1000
)

type journalOp string

const (
	journalOpPut    journalOp = "put"
	journalOpDelete journalOp = "delete"
)

type journalRecord struct {
	Op    journalOp     `json:"op"`
	ID    string        `json:"id"`
	Entry *domain.Entry `json:"entry,omitempty"`
}

// Journal is an append-only log of entry mutations backed by a WAL.
type Journal struct {
	mu  sync.Mutex
	wal *gowal.Wal
}

// OpenJournal opens or creates the journal stored in dir.
func OpenJournal(dir string) (*Journal, error) {
	return openJournal(dir, journalSegmentThreshold)
}

// openJournal keeps every segment: the journal is the only copy of the
// entries, so a record dropped by rotation would lose an entry on replay.
func openJournal(dir string, segmentThreshold int) (*Journal, error) {
	if err := os.MkdirAll(dir, journalDirPermission); err != nil {
		return nil, errors.Wrapf(err, "failed to ensure journal directory %s", dir)
	}

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "log_",
		SegmentThreshold: segmentThreshold,
		MaxSegments:      0,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error init journal")
	}

	return &Journal{wal: wal}, nil
}

// Replay rebuilds the entry set from the log. Later records win.
func (j *Journal) Replay() (map[string]*domain.Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := make(map[string]*domain.Entry)
	for msg := range j.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, journalKeyPrefix) {
			continue
		}

		var rec journalRecord
		if err := json.Unmarshal(msg.Value, &rec); err != nil {
			log.Error().Err(err).Str("key", msg.Key).Msg("failed to unmarshal journal record")
			continue
		}

		switch rec.Op {
		case journalOpPut:
			if rec.Entry != nil {
				entries[rec.ID] = rec.Entry
			}
		case journalOpDelete:
			delete(entries, rec.ID)
		}
	}

	return entries, nil
}

// Close closes the underlying WAL.
func (j *Journal) Close() error {
	return j.wal.Close()
}

func (j *Journal) put(entry *domain.Entry) error {
	return j.append(journalRecord{Op: journalOpPut, ID: entry.ID, Entry: entry})
}

func (j *Journal) remove(id string) error {
	return j.append(journalRecord{Op: journalOpDelete, ID: id})
}

func (j *Journal) append(rec journalRecord) error {
	if j == nil {
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "failed to marshal journal record")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.wal.Write(j.wal.CurrentIndex()+1, journalKeyPrefix+rec.ID, data); err != nil {
		return errors.Wrap(err, "failed to write journal record")
	}

	return nil
}
