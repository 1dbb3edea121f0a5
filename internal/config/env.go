package config

import (
	"errors"
	"io/fs"
	"os"
)

func firstEnv(names []string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
