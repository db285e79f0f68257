// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/itemcodec/pkg/api"     //nolint:depguard
	"github.com/ssargent/itemcodec/pkg/storage" //nolint:depguard
)

// CatalogOpener opens the item catalog stored at path
type CatalogOpener func(path string) (*storage.Catalog, error)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	openCatalog   CatalogOpener
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
		openCatalog:   storage.NewCatalog,
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// OpenCatalog opens the item catalog at path
func (c *Container) OpenCatalog(path string) (*storage.Catalog, error) {
	return c.openCatalog(path)
}

// SetCatalogOpener allows overriding how the catalog is opened (for testing)
func (c *Container) SetCatalogOpener(opener CatalogOpener) {
	c.openCatalog = opener
}
