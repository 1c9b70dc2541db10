package local

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/coocood/freecache"
)

var _ KV = (*MemoryKV)(nil)

const (
	// freecache never allocates less than this
	minCacheSize = 512 * 1024
	// room for the freecache entry header and the chunk key suffix
	entryOverhead = 64

	inlineValue  byte = 0
	chunkedValue byte = 1
)

// MemoryKV is an ephemeral store for demo runs and tests. Entries never
// expire, but freecache may evict them once cacheSize is exhausted.
//
// freecache refuses entries larger than 1/1024 of the cache, so bigger
// values are split into chunks stored under "<key>#<n>", with the key itself
// holding only the chunk count.
type MemoryKV struct {
	cache     *freecache.Cache
	cacheSize int
}

func NewMemoryKV(cacheSize int) *MemoryKV {
	return &MemoryKV{
		cache:     freecache.NewCache(cacheSize),
		cacheSize: max(cacheSize, minCacheSize),
	}
}

func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := s.get(key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("cache get %s: empty entry", key)
	}

	switch raw[0] {
	case inlineValue:
		return raw[1:], nil
	case chunkedValue:
		chunks, n := binary.Uvarint(raw[1:])
		if n <= 0 {
			return nil, fmt.Errorf("cache get %s: bad chunk header", key)
		}
		var value []byte
		for i := 0; i < int(chunks); i++ {
			chunk, err := s.get(chunkKey(key, i))
			if err != nil {
				// a single evicted chunk loses the whole value
				return nil, fmt.Errorf("cache get %s: chunk %d: %w", key, i, err)
			}
			value = append(value, chunk...)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("cache get %s: unknown entry type %d", key, raw[0])
	}
}

func (s *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	prevChunks := s.chunkCount(key)

	limit := s.cacheSize/1024 - entryOverhead - len(key)
	if limit <= 0 {
		return fmt.Errorf("cache set %s: key too long", key)
	}

	chunks := 0
	if len(value)+1 <= limit {
		if err := s.set(key, append([]byte{inlineValue}, value...)); err != nil {
			return err
		}
	} else {
		for start := 0; start < len(value); start += limit {
			end := min(start+limit, len(value))
			if err := s.set(chunkKey(key, chunks), value[start:end]); err != nil {
				return err
			}
			chunks++
		}
		header := binary.AppendUvarint([]byte{chunkedValue}, uint64(chunks))
		if err := s.set(key, header); err != nil {
			return err
		}
	}

	for i := chunks; i < prevChunks; i++ {
		s.cache.Del([]byte(chunkKey(key, i)))
	}
	return nil
}

func (s *MemoryKV) chunkCount(key string) int {
	raw, err := s.cache.Get([]byte(key))
	if err != nil || len(raw) == 0 || raw[0] != chunkedValue {
		return 0
	}
	chunks, n := binary.Uvarint(raw[1:])
	if n <= 0 {
		return 0
	}
	return int(chunks)
}

func (s *MemoryKV) get(key string) ([]byte, error) {
	value, err := s.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, nil
}

func (s *MemoryKV) set(key string, value []byte) error {
	if err := s.cache.Set([]byte(key), value, 0); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func chunkKey(key string, i int) string {
	return key + "#" + strconv.Itoa(i)
}
