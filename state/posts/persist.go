package posts

import (
	"encoding/json"
	"errors"
	"io"

	"etch/engine/actors"
)

// FlatFileStore keeps the snapshot as indented JSON in <dir>/<name>.dat.
type FlatFileStore struct {
	dir  string
	name string
}

func NewFlatFileStore(dir, name string) *FlatFileStore {
	return &FlatFileStore{dir: dir, name: name}
}

func (f *FlatFileStore) Load() (s Snapshot, ok bool, err error) {
	file, ok, err := actors.Open(f.dir, f.name)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	defer file.Close()
	err = json.NewDecoder(file).Decode(&s)
	if errors.Is(err, io.EOF) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	return s, true, nil
}

func (f *FlatFileStore) Save(s Snapshot) error {
	b, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}
	return actors.Write(f.dir, f.name, b)
}
