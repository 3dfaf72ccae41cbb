package audit

import (
	"encoding/json"

	"github.com/sasha-s/go-deadlock"

	"etch/engine/actors"
)

// Log keeps every record in memory, in emission order.
type Log struct {
	records []Record
	mutex   *deadlock.Mutex
}

func NewLog() *Log {
	return &Log{mutex: &deadlock.Mutex{}}
}

func (l *Log) Receive(r Record) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.records = append(l.records, r)
	return nil
}

func (l *Log) Records() []Record {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Log) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.records)
}

// FileSink appends each record as one JSON line to <dir>/<name>.
type FileSink struct {
	dir  string
	name string
}

func NewFileSink(dir, name string) *FileSink {
	return &FileSink{dir: dir, name: name}
}

func (f *FileSink) Receive(r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return actors.Append(f.dir, f.name, append(b, '\n'))
}
