package schemainfo

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is a subset of the planner hints that can be checked into a YAML
// sidecar file rather than assembled in Go: which field paginates each
// vertex type, and which of those fields are UUID-v4. Schema graph and
// statistics are never part of Config — both are runtime/introspected data,
// not configuration.
type Config struct {
	// PaginationKeys maps vertex type name to its pagination field.
	PaginationKeys map[string]string `yaml:"pagination_keys,omitempty"`

	// UUID4Fields maps vertex type name to the list of its UUID-v4 fields.
	UUID4Fields map[string][]string `yaml:"uuid4_fields,omitempty"`
}

// LoadConfig loads a pagination config YAML file. A missing file is not an
// error; it yields an empty Config, matching how the reference compiler's
// GraphQL codegen loader tolerates a not-yet-created gqlgen.yml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{
				PaginationKeys: make(map[string]string),
				UUID4Fields:    make(map[string][]string),
			}, nil
		}
		return nil, fmt.Errorf("schemainfo: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("schemainfo: parse config: %w", err)
	}
	if cfg.PaginationKeys == nil {
		cfg.PaginationKeys = make(map[string]string)
	}
	if cfg.UUID4Fields == nil {
		cfg.UUID4Fields = make(map[string][]string)
	}
	return &cfg, nil
}

// SaveConfig writes cfg to path as YAML, creating any missing parent
// directories.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("schemainfo: marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("schemainfo: create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// SetPaginationKey sets the pagination field for vertexType.
func (c *Config) SetPaginationKey(vertexType, fieldName string) {
	if c.PaginationKeys == nil {
		c.PaginationKeys = make(map[string]string)
	}
	c.PaginationKeys[vertexType] = fieldName
}

// AddUUID4Field marks fieldName on vertexType as UUID-v4, if not already
// present.
func (c *Config) AddUUID4Field(vertexType, fieldName string) {
	if c.UUID4Fields == nil {
		c.UUID4Fields = make(map[string][]string)
	}
	for _, f := range c.UUID4Fields[vertexType] {
		if f == fieldName {
			return
		}
	}
	c.UUID4Fields[vertexType] = append(c.UUID4Fields[vertexType], fieldName)
}

// ApplyTo overlays cfg's pagination hints onto info, replacing info's
// PaginationKeys/UUID4Fields maps.
func (c *Config) ApplyTo(info *SchemaInfo) {
	info.PaginationKeys = c.PaginationKeys

	uuid4 := make(map[string]map[string]struct{}, len(c.UUID4Fields))
	for vertexType, fields := range c.UUID4Fields {
		set := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			set[f] = struct{}{}
		}
		uuid4[vertexType] = set
	}
	info.UUID4Fields = uuid4
}
