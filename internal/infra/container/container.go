// Package container provides a minimal service container.
//
// Services are bound by name and resolved by name. Providers bundle the
// bindings of one component and run once, at registration time.
package container

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when no service is bound to a name.
var ErrNotFound = errors.New("container: service not found")

// Provider registers services into a container.
type Provider interface {
	Register(c *Container) error
}

// Container holds named services.
type Container struct {
	services  map[string]any
	providers []Provider
}

// New creates an empty container.
func New() *Container {
	return &Container{
		services: make(map[string]any),
	}
}

// Set binds svc to name, replacing any previous binding.
func (c *Container) Set(name string, svc any) {
	c.services[name] = svc
}

// Get returns the service bound to name.
func (c *Container) Get(name string) (any, error) {
	svc, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return svc, nil
}

// Has reports whether a service is bound to name.
func (c *Container) Has(name string) bool {
	_, ok := c.services[name]
	return ok
}

// Names returns the bound service names, sorted.
func (c *Container) Names() []string {
	names := make([]string, 0, len(c.services))
	for name := range c.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register runs p against the container. A provider that fails is not
// recorded.
func (c *Container) Register(p Provider) error {
	if err := p.Register(c); err != nil {
		return fmt.Errorf("register %T: %w", p, err)
	}
	c.providers = append(c.providers, p)
	return nil
}

// Providers returns the number of providers registered successfully.
func (c *Container) Providers() int {
	return len(c.providers)
}
