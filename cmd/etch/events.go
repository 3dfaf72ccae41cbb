package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/nbd-wtf/go-nostr"
)

// readEvent reads one JSON encoded nostr event from path, or from stdin when path is "-".
func readEvent(path string) (e nostr.Event, err error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return e, err
		}
		defer f.Close()
		r = f
	}
	err = json.NewDecoder(r).Decode(&e)
	return e, err
}
