// Package storage persists compressed frames in a pebble database keyed by
// KSUID.
package storage

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/bytekit/pkg/codec"
	"github.com/ssargent/bytekit/pkg/metrics"
)

// ErrNotFound is returned when no frame is stored under an id.
var ErrNotFound = errors.New("frame not found")

// FrameStoreOptions configures a FrameStore. Zero values select the default
// codec, a disabled logger and no metrics.
type FrameStoreOptions struct {
	Codec   *codec.BufferCodec
	Logger  *zerolog.Logger
	Metrics *metrics.Metrics
	Sync    bool
}

// FrameStore stores buffers as compressed frames.
type FrameStore struct {
	db      *pebble.DB
	codec   *codec.BufferCodec
	log     zerolog.Logger
	metrics *metrics.Metrics
	writeOp *pebble.WriteOptions
}

// NewFrameStore opens or creates a store in dir.
func NewFrameStore(dir string, opts FrameStoreOptions) (*FrameStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open frame store at %s", dir)
	}

	s := &FrameStore{
		db:      db,
		codec:   opts.Codec,
		log:     zerolog.Nop(),
		metrics: opts.Metrics,
		writeOp: pebble.NoSync,
	}
	if s.codec == nil {
		s.codec = codec.NewBufferCodec()
	}
	if opts.Logger != nil {
		s.log = opts.Logger.With().Str("component", "framestore").Logger()
	}
	if opts.Sync {
		s.writeOp = pebble.Sync
	}
	if s.metrics != nil {
		ids, err := s.List()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		s.metrics.SetStoredFrames(len(ids))
	}

	s.log.Debug().Str("dir", dir).Str("algorithm", s.codec.Algorithm().Name()).Msg("frame store opened")
	return s, nil
}

// Put compresses b and stores the frame under a new id.
func (s *FrameStore) Put(b codec.Buffer) (ksuid.KSUID, error) {
	start := time.Now()
	frame, err := s.codec.Compress(b)
	s.metrics.ObserveFrame(metrics.OpCompress, b.Size(), frame.Size(), err, time.Since(start))
	if err != nil {
		return ksuid.Nil, err
	}

	id, err := s.store(frame)
	s.metrics.ObserveFrame(metrics.OpPut, b.Size(), frame.Size(), err, time.Since(start))
	if err != nil {
		return ksuid.Nil, err
	}

	s.log.Debug().
		Str("id", id.String()).
		Int("raw_bytes", b.Size()).
		Int("frame_bytes", frame.Size()).
		Msg("frame stored")
	return id, nil
}

// PutFrame stores an already compressed frame after checking that it
// decompresses with the store's codec.
func (s *FrameStore) PutFrame(frame codec.Buffer) (ksuid.KSUID, error) {
	start := time.Now()
	raw, err := s.codec.Decompress(frame)
	s.metrics.ObserveFrame(metrics.OpDecompress, raw.Size(), frame.Size(), err, time.Since(start))
	if err != nil {
		return ksuid.Nil, err
	}

	id, err := s.store(frame)
	s.metrics.ObserveFrame(metrics.OpPut, raw.Size(), frame.Size(), err, time.Since(start))
	return id, err
}

// Get loads and decompresses the frame stored under id.
func (s *FrameStore) Get(id ksuid.KSUID) (codec.Buffer, error) {
	start := time.Now()
	frame, err := s.GetFrame(id)
	if err != nil {
		s.metrics.ObserveFrame(metrics.OpGet, 0, 0, err, time.Since(start))
		return codec.Buffer{}, err
	}

	out, err := s.codec.Decompress(frame)
	s.metrics.ObserveFrame(metrics.OpDecompress, out.Size(), frame.Size(), err, time.Since(start))
	s.metrics.ObserveFrame(metrics.OpGet, out.Size(), frame.Size(), err, time.Since(start))
	if err != nil {
		s.log.Warn().Err(err).Str("id", id.String()).Msg("stored frame is corrupt")
		return codec.Buffer{}, errors.Wrapf(err, "frame %s", id)
	}
	return out, nil
}

// GetFrame returns the stored frame without decompressing it.
func (s *FrameStore) GetFrame(id ksuid.KSUID) (codec.Buffer, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return codec.Buffer{}, errors.Wrapf(ErrNotFound, "frame %s", id)
	}
	if err != nil {
		return codec.Buffer{}, errors.Wrapf(err, "failed to read frame %s", id)
	}
	defer closer.Close()

	// data is only valid until closer is closed.
	return codec.BufferFrom(data), nil
}

// Delete removes the frame stored under id.
func (s *FrameStore) Delete(id ksuid.KSUID) error {
	start := time.Now()
	if _, err := s.GetFrame(id); err != nil {
		s.metrics.ObserveFrame(metrics.OpDelete, 0, 0, err, time.Since(start))
		return err
	}

	err := s.db.Delete(id.Bytes(), s.writeOp)
	s.metrics.ObserveFrame(metrics.OpDelete, 0, 0, err, time.Since(start))
	if err != nil {
		return errors.Wrapf(err, "failed to delete frame %s", id)
	}
	s.metrics.FrameStored(-1)
	s.log.Debug().Str("id", id.String()).Msg("frame deleted")
	return nil
}

// List returns the ids of all stored frames in id order. KSUIDs sort by
// creation time at one second resolution.
func (s *FrameStore) List() ([]ksuid.KSUID, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open iterator")
	}

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			_ = iter.Close()
			return nil, errors.Wrapf(err, "invalid key %x", iter.Key())
		}
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close iterator")
	}
	return ids, nil
}

// Close releases the underlying database.
func (s *FrameStore) Close() error {
	return s.db.Close()
}

func (s *FrameStore) store(frame codec.Buffer) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), frame.Bytes(), s.writeOp); err != nil {
		return ksuid.Nil, errors.Wrapf(err, "failed to write frame %s", id)
	}
	s.metrics.FrameStored(1)
	return id, nil
}
