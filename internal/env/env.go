// Package env loads and merges variable sets from the process environment, .env files and inline flags.
package env

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Vars maps variable names to values, as read from env files or the process environment.
type Vars map[string]string

// FromOS builds a Vars map from the current process environment.
func FromOS() Vars {
	out := make(Vars)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			out[key] = value
		}
	}
	return out
}

// Merge merges several Vars maps into one, later maps overriding earlier keys.
func Merge(sets ...Vars) Vars {
	out := make(Vars)
	for _, s := range sets {
		maps.Copy(out, s)
	}
	return out
}

// LoadEnvFile parses one .env file with godotenv.
func LoadEnvFile(path string) (Vars, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	envMap, err := godotenv.Parse(f)
	if err != nil {
		return nil, err
	}
	return Vars(envMap), nil
}

// LoadEnvFiles reads the envFiles listed in templatectl.yaml. Relative names resolve
// against baseDir; a later file wins on duplicate keys.
func LoadEnvFiles(baseDir string, files []string) (Vars, error) {
	sets := make([]Vars, 0, len(files))
	for _, name := range files {
		if name == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(baseDir, name)
		}
		vars, err := LoadEnvFile(name)
		if err != nil {
			return nil, fmt.Errorf("load env file %q: %w", name, err)
		}
		sets = append(sets, vars)
	}
	return Merge(sets...), nil
}

// ParseInlineVars parses the --vars flag value, e.g. "TEMPLATECTL_TIMES=2,TEMPLATECTL_MESSAGE=Goodbye".
// Blank entries are skipped.
func ParseInlineVars(s string) (Vars, error) {
	out := make(Vars)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid inline var %q, expected key=value", part)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key in inline var %q", part)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
