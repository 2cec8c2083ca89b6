package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/synterm/synterm/pkg/config"
	"github.com/synterm/synterm/pkg/prog"
	"github.com/synterm/synterm/pkg/store"
)

// Loads the rc file and applies flags on top of it. A missing rc file is only
// an error when its path was given explicitly.
func loadConfig(stderr io.Writer, f *prog.Flags) (*config.Config, error) {
	cfg := config.Default()
	if !f.NoRC {
		rc, explicit := f.RC, f.RC != ""
		if !explicit {
			p, err := config.DefaultRCPath()
			if err != nil {
				fmt.Fprintln(stderr, "Warning:", err)
			}
			rc = p
		}
		if rc != "" {
			loaded, err := config.Load(rc)
			switch {
			case err == nil:
				logger.Println("loaded rc file", rc)
				cfg = loaded
			case !explicit && errors.Is(err, fs.ErrNotExist):
			default:
				return nil, err
			}
		}
	}

	if f.Prompt != "" {
		cfg.Prompt = f.Prompt
	}
	if f.History != "" {
		cfg.History = f.History
	}
	if f.DB != "" {
		cfg.DB = f.DB
	}
	if f.Lua != "" {
		cfg.Lua = f.Lua
	}
	return cfg, nil
}

// Opens the bbolt database if one is configured, and the history file
// otherwise. The parent directory is created if needed.
func openStore(cfg *config.Config) (store.Store, error) {
	path := cfg.History
	if cfg.DB != "" {
		path = cfg.DB
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, &store.StorageError{Op: "create directory", Path: path, Err: err}
	}
	if cfg.DB != "" {
		db, err := store.OpenDB(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	file, err := store.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return file, nil
}
