package container

import (
	"errors"
	"testing"
)

type funcProvider func(c *Container) error

func (f funcProvider) Register(c *Container) error {
	return f(c)
}

func TestContainer_SetGet(t *testing.T) {
	c := New()
	c.Set("answer", 42)

	got, err := c.Get("answer")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Get() = %v, want 42", got)
	}
	if !c.Has("answer") {
		t.Error("Has(answer) = false, want true")
	}
}

func TestContainer_GetMissing(t *testing.T) {
	c := New()

	_, err := c.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if c.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

func TestContainer_Names(t *testing.T) {
	c := New()
	c.Set("b", 1)
	c.Set("a", 2)
	c.Set("b", 3)

	names := c.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}

func TestContainer_Register(t *testing.T) {
	c := New()
	err := c.Register(funcProvider(func(c *Container) error {
		c.Set("svc", "ready")
		return nil
	}))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if c.Providers() != 1 {
		t.Errorf("Providers() = %d, want 1", c.Providers())
	}
	if got, _ := c.Get("svc"); got != "ready" {
		t.Errorf("Get(svc) = %v, want ready", got)
	}
}

func TestContainer_RegisterError(t *testing.T) {
	boom := errors.New("boom")
	c := New()

	err := c.Register(funcProvider(func(c *Container) error {
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("Register() error = %v, want wrapped boom", err)
	}
	if c.Providers() != 0 {
		t.Errorf("Providers() = %d, want 0", c.Providers())
	}
}
