package terminal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dshills/scriptedit/internal/naming"
)

// ErrNoPath is returned when saving a buffer that has no file.
var ErrNoPath = errors.New("no file name")

// Save writes the buffer to its file. An existing file is first copied to
// the next free "<file>.oldN" name, which is returned.
func (a *App) Save() (backup string, err error) {
	if a.path == "" {
		return "", ErrNoPath
	}

	info, err := os.Stat(a.path)
	switch {
	case err == nil:
		if backup, err = naming.BackupName(a.path); err != nil {
			return "", err
		}
		if err := copyFile(a.path, backup, info.Mode().Perm()); err != nil {
			return "", fmt.Errorf("backing up %s: %w", a.path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("saving %s: %w", a.path, err)
	}

	if err := os.WriteFile(a.path, []byte(a.buf.Text()), 0o644); err != nil {
		return backup, fmt.Errorf("saving %s: %w", a.path, err)
	}
	a.buf.MarkClean()
	return backup, nil
}

func (a *App) save() {
	backup, err := a.Save()
	switch {
	case err != nil:
		a.status = err.Error()
	case backup != "":
		a.status = fmt.Sprintf("saved %s (previous version in %s)", a.path, backup)
	default:
		a.status = "saved " + a.path
	}
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
