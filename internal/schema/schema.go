// Package schema defines the fixed 15-slot item layout and the per-collection
// document that assigns display names and enabled flags to each slot. The
// document never restructures storage: slot identity is positional and fixed,
// the document only supplies interpretation metadata.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Slot identifies one of the 15 fixed typed storage fields on an item.
// The closed enum keeps slot rendering exhaustive at compile time.
type Slot int

const (
	Str1 Slot = iota
	Str2
	Str3
	Int1
	Int2
	Int3
	Date1
	Date2
	Date3
	Bool1
	Bool2
	Bool3
	Multext1
	Multext2
	Multext3
	NumSlots
)

// Kind is the value type stored in a slot.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDate
	KindBool
	KindMultext
)

// MaxLabelLen bounds the display name of a slot.
const MaxLabelLen = 64

var slotKeys = [NumSlots]string{
	"custom_str1", "custom_str2", "custom_str3",
	"custom_int1", "custom_int2", "custom_int3",
	"custom_date1", "custom_date2", "custom_date3",
	"custom_bool1", "custom_bool2", "custom_bool3",
	"custom_multext1", "custom_multext2", "custom_multext3",
}

var (
	// ErrUnknownSlot reports a slot key outside the fixed 15.
	ErrUnknownSlot = errors.New("unknown slot")
	// ErrInvalidSchema reports a candidate document that cannot be normalized.
	ErrInvalidSchema = errors.New("invalid items schema")
)

// Key returns the wire/storage key for the slot, e.g. "custom_str1".
func (s Slot) Key() string {
	if s < 0 || s >= NumSlots {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotKeys[s]
}

// Kind returns the value type stored in the slot.
func (s Slot) Kind() Kind {
	switch {
	case s >= Str1 && s <= Str3:
		return KindString
	case s >= Int1 && s <= Int3:
		return KindInt
	case s >= Date1 && s <= Date3:
		return KindDate
	case s >= Bool1 && s <= Bool3:
		return KindBool
	default:
		return KindMultext
	}
}

// SlotFromKey resolves a wire key back to a Slot.
func SlotFromKey(key string) (Slot, error) {
	for i, k := range slotKeys {
		if k == key {
			return Slot(i), nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownSlot, key)
}

// Slots returns all 15 slots in positional order.
func Slots() []Slot {
	slots := make([]Slot, NumSlots)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// Field is the interpretation metadata for one slot. An empty Name with
// State false means the slot is unused.
type Field struct {
	Name  string `json:"name"`
	State bool   `json:"state"`
}

// Document assigns a Field to every slot. It is an immutable value type;
// all transformations return a new Document.
type Document [NumSlots]Field

// Default returns a document with all 15 slots unnamed and disabled. New
// collections start from this.
func Default() Document {
	return Document{}
}

// MarshalJSON emits all 15 slot keys in positional order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(slotKeys[i])
		val, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a stored document leniently: missing slot keys are
// defaulted and unknown keys dropped. Rows written before a slot existed
// still decode. Strictness belongs to Apply, which gates what gets stored.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw, err := rawObject(data)
	if err != nil {
		return err
	}

	var doc Document
	for i, key := range slotKeys {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, &doc[i]); err != nil {
			return fmt.Errorf("%w: slot %s: %v", ErrInvalidSchema, key, err)
		}
	}
	*d = doc
	return nil
}

// Apply validates and normalizes a candidate document for storage. The
// candidate may be a JSON object or a JSON-encoded string containing one
// (legacy clients send the latter). It must contain all 15 known slot keys
// and no label may exceed MaxLabelLen; unknown keys are dropped. Apply is
// idempotent over its own output.
func Apply(candidate []byte) (Document, error) {
	raw, err := rawObject(candidate)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	for i, key := range slotKeys {
		msg, ok := raw[key]
		if !ok {
			return Document{}, fmt.Errorf("%w: missing slot %q", ErrInvalidSchema, key)
		}
		if err := json.Unmarshal(msg, &doc[i]); err != nil {
			return Document{}, fmt.Errorf("%w: slot %s: %v", ErrInvalidSchema, key, err)
		}
		if len(doc[i].Name) > MaxLabelLen {
			return Document{}, fmt.Errorf("%w: slot %s name exceeds %d characters", ErrInvalidSchema, key, MaxLabelLen)
		}
	}
	return doc, nil
}

// IsSlotActive reports whether the document marks the slot enabled.
func IsSlotActive(d Document, key string) (bool, error) {
	s, err := SlotFromKey(key)
	if err != nil {
		return false, err
	}
	return d[s].State, nil
}

// Active returns the enabled slots in positional order. Consumer-facing read
// paths treat the remaining slots as absent.
func (d Document) Active() []Slot {
	var active []Slot
	for i, f := range d {
		if f.State {
			active = append(active, Slot(i))
		}
	}
	return active
}

// rawObject decodes data into a key->raw map, unwrapping one level of JSON
// string encoding if present.
func rawObject(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
		trimmed = []byte(inner)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidSchema)
	}
	return raw, nil
}
