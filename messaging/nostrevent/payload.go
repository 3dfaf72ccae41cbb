// Package nostrevent converts between nostr events and the opaque payload carried by registry writes.
// Signature checking lives here, outside the registry: callers verify before they submit.
package nostrevent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nbd-wtf/go-nostr"

	"etch/state/audit"
)

var (
	ErrBadID        = errors.New("event id does not match its content")
	ErrBadSignature = errors.New("event signature is not valid")
)

// ToPayload copies the fields of e into a payload. Tags are carried as their JSON encoding.
func ToPayload(e nostr.Event) (audit.Payload, error) {
	tags := e.Tags
	if tags == nil {
		tags = nostr.Tags{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return audit.Payload{}, fmt.Errorf("event %s: encoding tags: %w", e.ID, err)
	}
	return audit.Payload{
		EventID:   e.ID,
		Pubkey:    e.PubKey,
		CreatedAt: int64(e.CreatedAt),
		Kind:      e.Kind,
		Content:   e.Content,
		Tags:      string(b),
		Signature: e.Sig,
	}, nil
}

// ToEvent rebuilds a nostr event from a payload. It fails when the tags are not a JSON array of string arrays.
func ToEvent(p audit.Payload) (nostr.Event, error) {
	var tags nostr.Tags
	if err := json.Unmarshal([]byte(p.Tags), &tags); err != nil {
		return nostr.Event{}, fmt.Errorf("event %s: decoding tags: %w", p.EventID, err)
	}
	return nostr.Event{
		ID:        p.EventID,
		PubKey:    p.Pubkey,
		CreatedAt: nostr.Timestamp(p.CreatedAt),
		Kind:      p.Kind,
		Tags:      tags,
		Content:   p.Content,
		Sig:       p.Signature,
	}, nil
}

// Verify checks that the id of e is the hash of its content and that the signature is valid for its pubkey.
func Verify(e nostr.Event) error {
	if e.GetID() != e.ID {
		return fmt.Errorf("event %s: %w", e.ID, ErrBadID)
	}
	ok, err := e.CheckSignature()
	if err != nil {
		return fmt.Errorf("event %s: %s: %w", e.ID, err.Error(), ErrBadSignature)
	}
	if !ok {
		return fmt.Errorf("event %s: %w", e.ID, ErrBadSignature)
	}
	return nil
}

// VerifyPayload rebuilds the event behind p and verifies it.
func VerifyPayload(p audit.Payload) error {
	e, err := ToEvent(p)
	if err != nil {
		return err
	}
	return Verify(e)
}

// Sign sets the pubkey, id and signature of e using privateKey.
func Sign(e *nostr.Event, privateKey string) error {
	pk, err := nostr.GetPublicKey(privateKey)
	if err != nil {
		return err
	}
	e.PubKey = pk
	if e.Tags == nil {
		e.Tags = nostr.Tags{}
	}
	e.ID = e.GetID()
	return e.Sign(privateKey)
}
