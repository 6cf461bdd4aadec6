package m

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
	"golang.org/x/exp/rand"
)

// KeyedSource is a rand.Source backed by a keyed PRNG: the same key always
// produces the same stream of draws.
type KeyedSource struct {
	prng *sampling.KeyedPRNG
	buf  [8]byte
}

func NewKeyedSource(key []byte) (*KeyedSource, error) {
	prng, err := sampling.NewKeyedPRNG(key)
	if err != nil {
		return nil, errors.Wrap(err, "creating keyed prng")
	}
	return &KeyedSource{prng: prng}, nil
}

func (s *KeyedSource) Uint64() uint64 {
	// The underlying XOF never returns an error on Read.
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Seed re-keys the stream with the little-endian bytes of seed.
func (s *KeyedSource) Seed(seed uint64) {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	prng, err := sampling.NewKeyedPRNG(key[:])
	if err != nil {
		panic(err)
	}
	s.prng = prng
}

func defaultSource() rand.Source {
	return rand.NewSource(uint64(time.Now().UnixNano()))
}
