// Package confloader loads configuration files into a single merged tree.
//
// Files are parsed by a Chain of format drivers:
//
//   - Lua: a chunk returning the root table (.lua)
//   - YAML (.yml, .yaml)
//   - JSON (.json)
//   - TOML (.toml)
//
// Each driver ignores paths that do not carry its extension and treats a
// missing or blank file as empty configuration, so the chain falls through
// to the next driver. Malformed content in a driver's own format is a
// *ParseError and stops the chain.
//
// A Store merges every added file into one tree. Nested mappings merge
// recursively and anything else is replaced by the later file. Values are
// read with dotted keys:
//
//	store := confloader.New()
//	if err := store.Add("config/db.yaml"); err != nil {
//		return err
//	}
//	driver := store.GetOr("db.driver", "sqlite")
//
// LoadDirectory autoloads every supported file in a directory in lexical
// order. ServiceProvider registers a Store into a container.Container.
package confloader
