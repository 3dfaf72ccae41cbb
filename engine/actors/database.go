package actors

import (
	"errors"
	"os"
	"path/filepath"
)

// Directory returns the flat-file directory used by a mind, under the configured root.
func Directory(mind string) string {
	dir := MakeOrGetConfig().GetString("rootDir")
	dir = dir + MakeOrGetConfig().GetString("flatFileDir")
	return filepath.Join(dir, mind)
}

// Open opens <dir>/<db>.dat for reading. ok is false when the file does not exist yet.
func Open(dir, db string) (f *os.File, ok bool, err error) {
	f, err = os.Open(filepath.Join(dir, db+".dat"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}

// Write replaces <dir>/<db>.dat with b. The new content is written to a temporary file
// and renamed over the old one so a crash leaves either the old or the new version.
func Write(dir, db string, b []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, db+".dat")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Append adds b to the end of <dir>/<name>, creating it if needed.
func Append(dir, name string, b []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}
