package confloader

import (
	"fmt"
	"time"

	"github.com/spaolacci/murmur3"
)

// Source describes one file passed to Store.Add.
type Source struct {
	ID       string    `json:"id" yaml:"id" table:"wide"`
	Path     string    `json:"path" yaml:"path"`
	Driver   string    `json:"driver" yaml:"driver"`
	Checksum string    `json:"checksum,omitempty" yaml:"checksum,omitempty" table:"wide"`
	Keys     int       `json:"keys" yaml:"keys"`
	LoadedAt time.Time `json:"loaded_at" yaml:"loaded_at"`
}

// Stats summarises a store.
type Stats struct {
	Keys    int
	Sources int
}

// checksum is a murmur3 128-bit digest in hex; empty input has no checksum.
func checksum(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	h1, h2 := murmur3.Sum128(data)
	return fmt.Sprintf("%016x%016x", h1, h2)
}
