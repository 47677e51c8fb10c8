package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorflash/nvsgen/pkg/codec"
	"github.com/sensorflash/nvsgen/pkg/partition"
)

const sampleYAML = `partition:
  name: nvs
  offset: "0x9000"
  size: "0x6000"
namespaces:
  - name: config
    entries:
      - key: ssid
        type: string
        value: HomeWiFi
      - key: port
        type: u16
        value: 1883
      - key: led_ms
        type: int
        value: 1000
      - key: offset
        type: i16
        value: -40
      - key: calib
        type: blob
        value: "0a0b0cff"
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nvs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Sample(t *testing.T) {
	cfg, err := Load(writeSample(t, sampleYAML))
	require.NoError(t, err)

	size, err := cfg.PartitionSize()
	require.NoError(t, err)
	assert.Equal(t, 0x6000, size)
	assert.Equal(t, "nvs", cfg.Partition.Name)

	d, err := cfg.Data()
	require.NoError(t, err)
	assert.Equal(t, []string{"config"}, d.Namespaces())
	assert.Equal(t, []string{"ssid", "port", "led_ms", "offset", "calib"}, d.Keys("config"))

	v, _ := d.Get("config", "ssid")
	assert.True(t, v.Equal(codec.Str("HomeWiFi")))
	v, _ = d.Get("config", "port")
	assert.True(t, v.Equal(codec.U16(1883)))
	v, _ = d.Get("config", "led_ms")
	assert.True(t, v.Equal(codec.U16(1000)), "int auto-narrows to u16")
	v, _ = d.Get("config", "offset")
	assert.True(t, v.Equal(codec.I16(-40)))
	v, _ = d.Get("config", "calib")
	assert.True(t, v.Equal(codec.Blob([]byte{0x0A, 0x0B, 0x0C, 0xFF})))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	cfg, err := Load(writeSample(t, sampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "nvs.yaml")
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := Load(path)
	require.NoError(t, err)

	a, err := cfg.Data()
	require.NoError(t, err)
	b, err := reloaded.Data()
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestParseSize(t *testing.T) {
	testCases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0x6000", want: 0x6000},
		{in: "24576", want: 24576},
		{in: " 0x1000 ", want: 0x1000},
		{in: "", wantErr: true},
		{in: "-4096", wantErr: true},
		{in: "lots", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseSize(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "ParseSize(%q)", tc.in)
			continue
		}
		require.NoError(t, err, "ParseSize(%q)", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestEntry_ValueErrors(t *testing.T) {
	testCases := []struct {
		name  string
		entry Entry
	}{
		{"unknown type", Entry{Key: "k", Type: "double", Value: 1}},
		{"u8 out of range", Entry{Key: "k", Type: "u8", Value: 256}},
		{"i8 out of range", Entry{Key: "k", Type: "i8", Value: -129}},
		{"u16 negative", Entry{Key: "k", Type: "u16", Value: -1}},
		{"bad hex blob", Entry{Key: "k", Type: "blob", Value: "zz"}},
		{"float value", Entry{Key: "k", Type: "int", Value: 1.5}},
		{"string for int", Entry{Key: "k", Type: "int", Value: "many"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Namespaces: []Namespace{{Name: "ns", Entries: []Entry{tc.entry}}}}
			_, err := cfg.Data()
			assert.Error(t, err)
		})
	}
}

func TestEntry_NumericStrings(t *testing.T) {
	cfg := &Config{Namespaces: []Namespace{{
		Name: "ns",
		Entries: []Entry{
			{Key: "hex", Type: "u32", Value: "0xCAFE"},
			{Key: "dec", Type: "int", Value: "42"},
		},
	}}}

	d, err := cfg.Data()
	require.NoError(t, err)

	v, _ := d.Get("ns", "hex")
	assert.True(t, v.Equal(codec.U32(0xCAFE)))
	v, _ = d.Get("ns", "dec")
	assert.True(t, v.Equal(codec.U8(42)))
}

func TestFromData_RoundTrip(t *testing.T) {
	d := partition.NewData()
	d.Set("config", "ssid", codec.Str("net"))
	d.Set("config", "port", codec.U16(1883))
	d.Set("calib", "gain", codec.I8(-3))
	d.Set("calib", "table", codec.Blob([]byte{1, 2, 3}))

	cfg := FromData(d, 0x6000)
	assert.Equal(t, "0x6000", cfg.Partition.Size)

	back, err := cfg.Data()
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}
