package mq

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestEnvelope_RoundTripByteIdentical(t *testing.T) {
	payload := json.RawMessage(`{"amount":5,"currency":"USDC","to_address":"0xabc"}`)
	env := NewEnvelope(MessageKindWorkItem, payload)

	first, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Envelope
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	second, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}

	// RawMessage сохраняет байты payload, порядок полей фиксирован
	if !bytes.Equal(first, second) {
		t.Errorf("round-trip is not byte-identical:\n%s\n%s", first, second)
	}
}

func TestNewEnvelope(t *testing.T) {
	a := NewEnvelope(MessageKindWorkItem, nil)
	b := NewEnvelope(MessageKindWorkResult, nil)

	if a.ID == "" || a.ID == b.ID {
		t.Error("envelope ids must be unique and non-empty")
	}
	if a.Kind != MessageKindWorkItem || b.Kind != MessageKindWorkResult {
		t.Error("kind must be preserved")
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
}
