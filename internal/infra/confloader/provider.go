package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on a tree provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by tree provider, use Read() instead")

// treeProvider feeds an already merged Tree into koanf. koanf calls Read()
// when Load is given a nil parser.
type treeProvider Tree

// ReadBytes implements koanf.Provider.
func (t treeProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns a copy of the tree, so koanf never aliases store maps.
func (t treeProvider) Read() (map[string]any, error) {
	return cloneMap(t), nil
}
