// Package config reads and writes the YAML partition descriptions the
// nvsgen CLI consumes, and converts them to and from partition.Data.
package config

import (
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sensorflash/nvsgen/pkg/codec"
	"github.com/sensorflash/nvsgen/pkg/partition"
)

// Config describes one NVS partition declaratively: its geometry plus
// the namespaces and typed entries to store. Namespace and entry order
// in the file is the order entries are laid out in flash.
type Config struct {
	Partition  Partition   `yaml:"partition"`
	Namespaces []Namespace `yaml:"namespaces"`
}

// Partition names the target partition and its geometry. Offset is
// carried for flashing tools and not interpreted here.
type Partition struct {
	Name   string `yaml:"name,omitempty"`
	Offset string `yaml:"offset,omitempty"`
	Size   string `yaml:"size"`
}

// Namespace is one named group of entries.
type Namespace struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

// Entry is one typed key/value pair. Type is one of u8, u16, u32, i8,
// i16, i32, int, string or blob; int picks the narrowest tag that
// fits. Blob values are hex strings.
type Entry struct {
	Key   string `yaml:"key"`
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// Load reads and parses the description at path.
func Load(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		path = abs
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to path. Descriptions often carry credentials (WiFi
// passwords, API keys), so the file is written 0600.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ParseSize parses a partition size written the way partition tables
// write them: decimal or 0x-prefixed hex.
func ParseSize(s string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid partition size %q: %w", s, err)
	}
	return int(n), nil
}

// PartitionSize returns the declared partition size in bytes.
func (c *Config) PartitionSize() (int, error) {
	if c.Partition.Size == "" {
		return 0, fmt.Errorf("partition size is not set")
	}
	return ParseSize(c.Partition.Size)
}

// Data converts the description into the encoder's input form,
// preserving file order.
func (c *Config) Data() (*partition.Data, error) {
	d := partition.NewData()
	for _, ns := range c.Namespaces {
		if ns.Name == "" {
			return nil, fmt.Errorf("namespace with no name")
		}
		d.AddNamespace(ns.Name)
		for _, e := range ns.Entries {
			v, err := e.value()
			if err != nil {
				return nil, fmt.Errorf("namespace %q key %q: %w", ns.Name, e.Key, err)
			}
			d.Set(ns.Name, e.Key, v)
		}
	}
	return d, nil
}

// FromData builds the description of d, rendering size in hex the way
// partition tables write it.
func FromData(d *partition.Data, size int) *Config {
	cfg := &Config{Partition: Partition{Size: fmt.Sprintf("%#x", size)}}
	for _, ns := range d.Namespaces() {
		n := Namespace{Name: ns}
		for _, key := range d.Keys(ns) {
			v, _ := d.Get(ns, key)
			n.Entries = append(n.Entries, entryFromValue(key, v))
		}
		cfg.Namespaces = append(cfg.Namespaces, n)
	}
	return cfg
}

func entryFromValue(key string, v codec.Value) Entry {
	e := Entry{Key: key, Type: v.Type().String()}
	switch v.Type() {
	case codec.TypeStr:
		e.Value = v.Str()
	case codec.TypeBlob:
		e.Value = hex.EncodeToString(v.Blob())
	case codec.TypeI8, codec.TypeI16, codec.TypeI32:
		e.Value = v.Int64()
	default:
		e.Value = v.Uint64()
	}
	return e
}

func (e Entry) value() (codec.Value, error) {
	switch strings.ToLower(e.Type) {
	case "string", "str":
		s, err := stringValue(e.Value)
		if err != nil {
			return codec.Value{}, err
		}
		return codec.Str(s), nil
	case "blob":
		s, err := stringValue(e.Value)
		if err != nil {
			return codec.Value{}, err
		}
		raw, err := hex.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return codec.Value{}, fmt.Errorf("invalid hex blob: %w", err)
		}
		return codec.Blob(raw), nil
	case "int", "":
		n, err := intValue(e.Value)
		if err != nil {
			return codec.Value{}, err
		}
		return codec.Int(n)
	case "u8":
		return numeric(e.Value, 0, math.MaxUint8, func(n int64) codec.Value { return codec.U8(uint8(n)) })
	case "u16":
		return numeric(e.Value, 0, math.MaxUint16, func(n int64) codec.Value { return codec.U16(uint16(n)) })
	case "u32":
		return numeric(e.Value, 0, math.MaxUint32, func(n int64) codec.Value { return codec.U32(uint32(n)) })
	case "i8":
		return numeric(e.Value, math.MinInt8, math.MaxInt8, func(n int64) codec.Value { return codec.I8(int8(n)) })
	case "i16":
		return numeric(e.Value, math.MinInt16, math.MaxInt16, func(n int64) codec.Value { return codec.I16(int16(n)) })
	case "i32":
		return numeric(e.Value, math.MinInt32, math.MaxInt32, func(n int64) codec.Value { return codec.I32(int32(n)) })
	}
	return codec.Value{}, fmt.Errorf("%w: type %q", codec.ErrValueUnsupported, e.Type)
}

func numeric(v any, min, max int64, build func(int64) codec.Value) (codec.Value, error) {
	n, err := intValue(v)
	if err != nil {
		return codec.Value{}, err
	}
	if n < min || n > max {
		return codec.Value{}, fmt.Errorf("%w: %d out of range [%d, %d]", codec.ErrValueUnsupported, n, min, max)
	}
	return build(n), nil
}

func intValue(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", codec.ErrValueUnsupported, n)
		}
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q: %w", n, err)
		}
		return parsed, nil
	case float64:
		return 0, fmt.Errorf("%w: floating-point value %v", codec.ErrValueUnsupported, n)
	}
	return 0, fmt.Errorf("%w: %T value", codec.ErrValueUnsupported, v)
}

func stringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a string, got %T", codec.ErrValueUnsupported, v)
	}
	return s, nil
}
