package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ProjectEnvFile is the per-project env file, relative to the working directory.
const ProjectEnvFile = ".advisor.env"

// GlobalEnvPath returns the path to the global advisor env file.
func GlobalEnvPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "advisor", "env")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "advisor", "env")
}

// EnvFile records one env file that was read and the keys it contributed.
type EnvFile struct {
	Path string
	Keys []string // keys applied to the process environment
	Err  error    // parse error; the file is then ignored
}

// LoadEnvFiles applies the global env file, then ProjectEnvFile, to the
// process environment and reports what each file contributed. Missing files
// are left out of the result. Variables set before the call are never
// overwritten; between the two files the project one wins.
func LoadEnvFiles() []EnvFile {
	preset := make(map[string]bool)
	for _, entry := range os.Environ() {
		if k, _, ok := strings.Cut(entry, "="); ok {
			preset[k] = true
		}
	}

	var loaded []EnvFile
	for _, path := range []string{GlobalEnvPath(), ProjectEnvFile} {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		f := EnvFile{Path: path}
		if err == nil {
			f.Err = applyEnv(data, preset, &f.Keys)
		} else {
			f.Err = err
		}
		loaded = append(loaded, f)
	}
	return loaded
}

func applyEnv(data []byte, preset map[string]bool, applied *[]string) error {
	vars, err := ParseEnvFile(data)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if preset[k] {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
		*applied = append(*applied, k)
	}
	return nil
}

// ParseEnvFile parses KEY=VALUE lines. Blank lines and # comments are
// skipped, an "export " prefix is allowed, and double-quoted values are
// unquoted with Go escape rules ('single' quotes are stripped verbatim).
func ParseEnvFile(data []byte) (map[string]string, error) {
	vars := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", n, line)
		}
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("line %d: empty key", n)
		}

		v, err := unquote(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n, k, err)
		}
		vars[k] = v
	}
	return vars, sc.Err()
}

func unquote(v string) (string, error) {
	if len(v) < 2 {
		return v, nil
	}
	switch {
	case v[0] == '"' && v[len(v)-1] == '"':
		return strconv.Unquote(v)
	case v[0] == '\'' && v[len(v)-1] == '\'':
		return v[1 : len(v)-1], nil
	}
	return v, nil
}
