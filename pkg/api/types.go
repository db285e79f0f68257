package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssargent/itemcodec/pkg/codec"
	"github.com/ssargent/itemcodec/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateItemResponse is returned when an item is stored
type CreateItemResponse struct {
	ID   string     `json:"id"`
	Item codec.Item `json:"item"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind            string
	Port            int
	APIKey          string       // Empty disables authentication
	Format          codec.Format // Default format of /codec/encode
	InitialCapacity int          // Initial capacity of encode buffers
	MaxBodySize     int64        // Request body limit in bytes (0 = 1 MiB)
}

// IItemCatalog defines the item catalog operations used by the API
type IItemCatalog interface {
	Create(item codec.Item) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) (codec.Item, error)
	ReadRaw(id ksuid.KSUID) ([]byte, error)
	Update(id ksuid.KSUID, item codec.Item) error
	Delete(id ksuid.KSUID) error
	List() ([]storage.Entry, error)
}
