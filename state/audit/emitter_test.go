package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	return Payload{
		EventID:   "d283f3979d00cb5493f2da07819695bc299fba24aa6e0bacb484fe07a2fc0ae0",
		Pubkey:    "4659db3b248cae1bb6856ee63308af6c9c15239e3bb76f425fbacdd84bb15330",
		CreatedAt: 1736063047889,
		Kind:      1,
		Content:   "Hello, world!",
		// not valid JSON on purpose: the emitter must not care
		Tags:      `["imeta", "url https://nostr.build/i/my-image.jpg", "m image/jpeg" "dim 3024x4032"]`,
		Signature: "c3cea60c7e452527daae9d5eb78805f44aac272a8075eeb6779be011e572fff2c3cea60c7e452527daae9d5eb78805f44aac272a8075eeb6779be011e572fff2",
	}
}

func TestEmit_PassesPayloadThrough(t *testing.T) {
	log := NewLog()
	e := NewEmitter(log)

	got := e.Emit(Record{Operation: OpCreate, Payload: samplePayload()})

	require.Equal(t, 1, log.Len())
	last := log.Records()[0]
	assert.Equal(t, got, last)
	assert.Equal(t, samplePayload(), last.Payload)
	assert.Nil(t, last.TokenID)
}

func TestEmit_SequenceIsContiguous(t *testing.T) {
	log := NewLog()
	e := NewEmitter(log)
	e.Resume(41)

	for i := 0; i < 3; i++ {
		e.Emit(Record{Operation: OpUpdate, Payload: samplePayload()})
	}

	records := log.Records()
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, uint64(42+i), r.Sequence)
	}
	assert.Equal(t, uint64(44), e.Sequence())
}

func TestEmit_FailingSinkDoesNotStopOthers(t *testing.T) {
	log := NewLog()
	var calls int
	failing := SinkFunc(func(Record) error {
		calls++
		return errors.New("relay offline")
	})
	e := NewEmitter(failing)
	e.Register(log)

	e.Emit(Record{Operation: OpCreate, Payload: samplePayload()})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, log.Len())
}

func TestFileSink_AppendsJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit")
	e := NewEmitter(NewFileSink(dir, "pubevents.jsonl"))
	id := uint64(0)

	e.Emit(Record{Operation: OpCreate, TokenID: &id, URI: "https://example.com/metadata.json", Payload: samplePayload()})
	e.Emit(Record{Operation: OpUpdate, Payload: samplePayload()})

	f, err := os.Open(filepath.Join(dir, "pubevents.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		records = append(records, r)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, records, 2)

	require.NotNil(t, records[0].TokenID)
	assert.Equal(t, uint64(0), *records[0].TokenID)
	assert.Equal(t, "https://example.com/metadata.json", records[0].URI)
	assert.Equal(t, samplePayload(), records[0].Payload)
	assert.Nil(t, records[1].TokenID)
	assert.Equal(t, OpUpdate, records[1].Operation)
}
