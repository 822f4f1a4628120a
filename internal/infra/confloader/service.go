package confloader

import (
	"fmt"

	"github.com/tabbi89/ConfigServiceProvider/internal/infra/container"
)

// ServiceName is the container key the store is bound to.
const ServiceName = "config"

// ServiceProvider registers a Store into a container, autoloading a
// directory first when one is configured.
type ServiceProvider struct {
	autoloadDir string
	opts        []Option
}

// NewServiceProvider creates a provider. autoloadDir may be empty.
func NewServiceProvider(autoloadDir string, opts ...Option) *ServiceProvider {
	return &ServiceProvider{
		autoloadDir: autoloadDir,
		opts:        opts,
	}
}

// Register implements container.Provider. The store is bound only after the
// autoload directory loaded cleanly, so a malformed file fails registration.
func (p *ServiceProvider) Register(c *container.Container) error {
	store := New(p.opts...)

	if p.autoloadDir != "" {
		if err := store.AddDirectory(p.autoloadDir); err != nil {
			return err
		}
	}

	c.Set(ServiceName, store)
	return nil
}

// FromContainer returns the store registered in c.
func FromContainer(c *container.Container) (*Store, error) {
	svc, err := c.Get(ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRegistered, err)
	}
	store, ok := svc.(*Store)
	if !ok {
		return nil, fmt.Errorf("%w: service %q is %T", ErrNotRegistered, ServiceName, svc)
	}
	return store, nil
}
