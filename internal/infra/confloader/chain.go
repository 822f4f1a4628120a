package confloader

import (
	"path/filepath"
	"slices"
	"strings"
)

// Chain tries an ordered list of drivers and returns the first non-empty
// result. The order is the caller's: the first driver that produces keys wins.
type Chain struct {
	drivers []Driver
}

// Result is a resolved file.
type Result struct {
	Tree Tree
	// Driver is the name of the driver that produced Tree, or "" when every
	// driver returned an empty result.
	Driver string
	// Checksum fingerprints the parsed bytes. Empty when unknown.
	Checksum string
}

// NewChain creates a chain over drivers.
func NewChain(drivers ...Driver) *Chain {
	return &Chain{drivers: slices.Clone(drivers)}
}

// Drivers returns the drivers in resolution order.
func (c *Chain) Drivers() []Driver {
	return slices.Clone(c.drivers)
}

// Resolve parses path with the first driver that yields a non-empty tree.
// A *ParseError from any driver is returned immediately.
func (c *Chain) Resolve(path string) (Result, error) {
	for _, d := range c.drivers {
		var (
			tree Tree
			data []byte
			err  error
		)
		if l, ok := d.(Loader); ok {
			tree, data, err = l.Load(path)
		} else {
			tree, err = d.Parse(path)
		}
		if err != nil {
			return Result{}, err
		}
		if len(tree) > 0 {
			return Result{
				Tree:     tree,
				Driver:   d.Name(),
				Checksum: checksum(data),
			}, nil
		}
	}
	return Result{Tree: Tree{}}, nil
}

// Parse returns the tree for path, or an empty tree when no driver claims it.
func (c *Chain) Parse(path string) (Tree, error) {
	res, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}
	return res.Tree, nil
}

// ReadConfig is an alias of Parse.
func (c *Chain) ReadConfig(path string) (Tree, error) {
	return c.Parse(path)
}

// Extensions returns every extension owned by the chain's drivers, sorted.
func (c *Chain) Extensions() []string {
	var exts []string
	for _, d := range c.drivers {
		for _, ext := range d.Extensions() {
			exts = append(exts, strings.ToLower(ext))
		}
	}
	slices.Sort(exts)
	return slices.Compact(exts)
}

// Supports reports whether some driver owns the extension of path.
func (c *Chain) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, found := slices.BinarySearch(c.Extensions(), ext)
	return found
}
