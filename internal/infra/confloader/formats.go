package confloader

import (
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
)

// YAMLDriver parses .yml and .yaml files.
func YAMLDriver() *FileDriver {
	return NewFileDriver("yaml", "YAML", []string{".yml", ".yaml"}, yaml.Parser().Unmarshal)
}

// JSONDriver parses .json files.
func JSONDriver() *FileDriver {
	return NewFileDriver("json", "JSON", []string{".json"}, json.Parser().Unmarshal)
}

// TOMLDriver parses .toml files.
func TOMLDriver() *FileDriver {
	return NewFileDriver("toml", "TOML", []string{".toml"}, toml.Parser().Unmarshal)
}

// DefaultDrivers returns the built-in drivers in resolution order:
// Lua, YAML, JSON, TOML.
func DefaultDrivers() []Driver {
	return []Driver{
		LuaDriver(),
		YAMLDriver(),
		JSONDriver(),
		TOMLDriver(),
	}
}
