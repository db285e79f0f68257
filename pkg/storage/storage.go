package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/itemcodec/pkg/codec"
)

// Errors
var (
	ErrItemNotFound = &StorageError{"item not found"}
)

// StorageError represents a catalog error
type StorageError struct {
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// Entry is a stored item together with its id and encoded size
type Entry struct {
	ID   ksuid.KSUID `json:"id"`
	Item codec.Item  `json:"item"`
	Size int         `json:"size"`
}

// Catalog persists items in pebble, one framed record per ksuid key
type Catalog struct {
	db    *pebble.DB
	codec *codec.RecordCodec
}

// NewCatalog opens (or creates) a catalog at path
func NewCatalog(path string) (*Catalog, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return &Catalog{db: db, codec: codec.NewRecordCodec(codec.FormatFramed)}, nil
}

// Create stores item under a new id
func (s *Catalog) Create(item codec.Item) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := s.put(id, item); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Read returns the item stored under id
func (s *Catalog) Read(id ksuid.KSUID) (codec.Item, error) {
	data, err := s.ReadRaw(id)
	if err != nil {
		return codec.Item{}, err
	}

	item, err := s.codec.Decode(data)
	if err != nil {
		return codec.Item{}, fmt.Errorf("failed to decode item %s: %w", id, err)
	}
	return item, nil
}

// ReadRaw returns the encoded bytes stored under id
func (s *Catalog) ReadRaw(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// pebble owns data until closer is closed
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Update replaces the item stored under id
func (s *Catalog) Update(id ksuid.KSUID, item codec.Item) error {
	if _, err := s.ReadRaw(id); err != nil {
		return err
	}
	return s.put(id, item)
}

// Delete removes the item stored under id
func (s *Catalog) Delete(id ksuid.KSUID) error {
	if _, err := s.ReadRaw(id); err != nil {
		return err
	}
	return s.db.Delete(id.Bytes(), pebble.Sync)
}

// List returns every stored item in id order, which is creation order
func (s *Catalog) List() ([]Entry, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("invalid catalog key %x: %w", iter.Key(), err)
		}
		value := iter.Value()
		item, err := s.codec.Decode(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode item %s: %w", id, err)
		}
		entries = append(entries, Entry{ID: id, Item: item, Size: len(value)})
	}
	return entries, iter.Error()
}

// Close closes the underlying database
func (s *Catalog) Close() error {
	return s.db.Close()
}

func (s *Catalog) put(id ksuid.KSUID, item codec.Item) error {
	data, err := s.codec.Encode(item)
	if err != nil {
		return fmt.Errorf("failed to encode item: %w", err)
	}
	return s.db.Set(id.Bytes(), data, pebble.Sync)
}
