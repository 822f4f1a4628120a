package confloader

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/providers/file"
)

// Driver parses one configuration format.
//
// Parse returns an empty Tree and a nil error when the path does not carry
// one of the driver's extensions, or when the file is missing, unreadable or
// blank. It returns a *ParseError only when the file is the driver's own and
// its content is malformed.
type Driver interface {
	Name() string
	Extensions() []string
	Parse(path string) (Tree, error)
}

// Loader is implemented by drivers that can also return the bytes they
// parsed. The chain uses it to fingerprint sources without reading twice.
type Loader interface {
	Load(path string) (Tree, []byte, error)
}

// Decoder turns raw file content into a mapping.
type Decoder func(data []byte) (map[string]any, error)

// FileDriver is a Driver for a single file format identified by extension.
type FileDriver struct {
	name   string
	format string
	exts   []string
	decode Decoder
}

// NewFileDriver creates a driver named name that decodes files with one of
// exts. format is the label used in ParseError messages.
func NewFileDriver(name, format string, exts []string, decode Decoder) *FileDriver {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &FileDriver{
		name:   name,
		format: format,
		exts:   normalized,
		decode: decode,
	}
}

// Name returns the driver name.
func (d *FileDriver) Name() string {
	return d.name
}

// Extensions returns the extensions the driver owns.
func (d *FileDriver) Extensions() []string {
	return slices.Clone(d.exts)
}

// Matches reports whether path carries one of the driver's extensions.
func (d *FileDriver) Matches(path string) bool {
	return slices.Contains(d.exts, strings.ToLower(filepath.Ext(path)))
}

// Parse implements Driver.
func (d *FileDriver) Parse(path string) (Tree, error) {
	tree, _, err := d.Load(path)
	return tree, err
}

// Load implements Loader.
func (d *FileDriver) Load(path string) (Tree, []byte, error) {
	if !d.Matches(path) {
		return Tree{}, nil, nil
	}

	// Missing and unreadable files count as empty configuration.
	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return Tree{}, nil, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Tree{}, data, nil
	}

	raw, err := d.decode(data)
	if err != nil {
		return nil, data, newParseError(d.format, path, err)
	}
	return normalizeTree(raw), data, nil
}
