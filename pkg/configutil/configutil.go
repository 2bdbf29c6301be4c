package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// readFile decodes the json5 file at `path`, found is false if the file does not
// exist or is empty.
func readFile[T any](path string) (out T, found bool, err error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if len(contents) == 0 {
		return out, false, nil
	}
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, true, nil
}

// ReadConfig reads a configuration file, `name` should come with a file extension,
// which is lopped off to locate the local override. Fields set in the override take
// priority:
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// os.ErrNotExist is returned if neither file exists.
func ReadConfig[T any](name string) (T, error) {
	prefix, ext := splitExt(filepath.Base(name))
	localPath := filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local.%s", prefix, ext))

	out, foundBase, err := readFile[T](name)
	if err != nil {
		return out, err
	}
	override, foundLocal, err := readFile[T](localPath)
	if err != nil {
		return out, err
	}
	if !foundBase && !foundLocal {
		return out, os.ErrNotExist
	}

	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}
	return out, nil
}

// ReadConfigOr is ReadConfig but a missing config yields `defaults` instead of an error.
// Values present in the files override the defaults.
func ReadConfigOr[T any](name string, defaults T) (T, error) {
	read, err := ReadConfig[T](name)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return defaults, err
	}
	err = mergo.Merge(&read, defaults)
	if err != nil {
		return defaults, err
	}
	return read, nil
}
