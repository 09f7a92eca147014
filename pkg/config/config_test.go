package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name" toml:"name"`
	Count int      `yaml:"count" toml:"count"`
	Tags  []string `yaml:"tags" toml:"tags"`
}

func (s *sample) Validate() error {
	if s.Count < 0 {
		return errors.New("count must not be negative")
	}
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecode_YAMLKeepsDefaults(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")
	path := writeFile(t, "c.yaml", "name: ${SAMPLE_NAME}\n")

	s := sample{Count: 7}
	require.NoError(t, Decode(path, &s))
	require.Equal(t, "from-env", s.Name)
	require.Equal(t, 7, s.Count)
}

func TestDecode_TOML(t *testing.T) {
	path := writeFile(t, "c.toml", "name = \"blog\"\ncount = 3\ntags = [\"a\", \"b\"]\n")

	var s sample
	require.NoError(t, Decode(path, &s))
	require.Equal(t, sample{Name: "blog", Count: 3, Tags: []string{"a", "b"}}, s)
}

func TestDecode_Errors(t *testing.T) {
	var s sample
	require.Error(t, Decode(filepath.Join(t.TempDir(), "missing.yaml"), &s))
	require.Error(t, Decode(writeFile(t, "bad.yaml", "name: [unclosed\n"), &s))
	require.Error(t, Decode(writeFile(t, "bad.toml", "name = \n"), &s))
}

func TestDecodeOptional(t *testing.T) {
	var s sample
	found, err := DecodeOptional(filepath.Join(t.TempDir(), "absent.yaml"), &s)
	require.NoError(t, err)
	require.False(t, found)

	found, err = DecodeOptional(writeFile(t, "c.yml", "count: 2\n"), &s)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, s.Count)
}

func TestLoad_Validates(t *testing.T) {
	var s sample
	err := Load(writeFile(t, "c.yaml", "count: -1\n"), &s)
	require.ErrorContains(t, err, "count must not be negative")
}
