package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"gbank/internal/core"
)

// Event kinds published by the upstream ledger backend.
const (
	KindRecordUpsert  = "record.upsert"
	KindLedgerTouched = "ledger.touched"
)

// Event is the envelope for every message on the records queue. The
// payload shape depends on Kind.
type Event struct {
	Kind      string          `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// RecordUpsert carries one changed record from a named collection.
// The record is kept raw so the worker can decode it into the right
// type for the collection.
type RecordUpsert struct {
	Collection string          `json:"collection"` // customers | accounts | loans
	Record     json.RawMessage `json:"record"`
}

// LedgerTouched carries a user's full transaction list after the
// backend changed it.
type LedgerTouched struct {
	UserID       string                   `json:"user_id"`
	Transactions []core.TransactionRecord `json:"transactions"`
}

// NewRecordUpsertEvent wraps a record in an Event envelope.
func NewRecordUpsertEvent(collection string, record any) (Event, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Event{}, fmt.Errorf("marshal record: %w", err)
	}
	payload, err := json.Marshal(RecordUpsert{Collection: collection, Record: raw})
	if err != nil {
		return Event{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Event{Kind: KindRecordUpsert, Timestamp: time.Now(), Payload: payload}, nil
}

// NewLedgerTouchedEvent wraps a user's transaction list in an Event
// envelope.
func NewLedgerTouchedEvent(userID string, txs []core.TransactionRecord) (Event, error) {
	payload, err := json.Marshal(LedgerTouched{UserID: userID, Transactions: txs})
	if err != nil {
		return Event{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Event{Kind: KindLedgerTouched, Timestamp: time.Now(), Payload: payload}, nil
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event envelope.
func EventFromJSON(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// DecodeRecordUpsert decodes the payload of a record.upsert event.
func (e Event) DecodeRecordUpsert() (RecordUpsert, error) {
	if e.Kind != KindRecordUpsert {
		return RecordUpsert{}, fmt.Errorf("event kind is %q, not %q", e.Kind, KindRecordUpsert)
	}
	var p RecordUpsert
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return RecordUpsert{}, fmt.Errorf("decode record upsert: %w", err)
	}
	return p, nil
}

// DecodeLedgerTouched decodes the payload of a ledger.touched event.
func (e Event) DecodeLedgerTouched() (LedgerTouched, error) {
	if e.Kind != KindLedgerTouched {
		return LedgerTouched{}, fmt.Errorf("event kind is %q, not %q", e.Kind, KindLedgerTouched)
	}
	var p LedgerTouched
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return LedgerTouched{}, fmt.Errorf("decode ledger touched: %w", err)
	}
	return p, nil
}
