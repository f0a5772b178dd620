package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotKeys(t *testing.T) {
	assert.Equal(t, 15, int(NumSlots))
	assert.Equal(t, "custom_str1", Str1.Key())
	assert.Equal(t, "custom_multext3", Multext3.Key())

	for _, s := range Slots() {
		back, err := SlotFromKey(s.Key())
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}

	_, err := SlotFromKey("custom_str4")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestSlotKinds(t *testing.T) {
	assert.Equal(t, KindString, Str2.Kind())
	assert.Equal(t, KindInt, Int3.Kind())
	assert.Equal(t, KindDate, Date1.Kind())
	assert.Equal(t, KindBool, Bool2.Kind())
	assert.Equal(t, KindMultext, Multext1.Kind())
}

func TestMarshalOrderIsPositional(t *testing.T) {
	doc := Default()
	doc[Multext3] = Field{Name: "Last", State: true}
	doc[Str1] = Field{Name: "First", State: true}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	text := string(raw)
	for i := 0; i < int(NumSlots)-1; i++ {
		a := strings.Index(text, `"`+slotKeys[i]+`"`)
		b := strings.Index(text, `"`+slotKeys[i+1]+`"`)
		require.GreaterOrEqual(t, a, 0)
		require.GreaterOrEqual(t, b, 0)
		assert.Less(t, a, b, "slot %s must precede %s", slotKeys[i], slotKeys[i+1])
	}
}

func TestUnmarshalIsLenient(t *testing.T) {
	// Missing keys default, unknown keys drop
	var doc Document
	err := json.Unmarshal([]byte(`{"custom_str1":{"name":"Author","state":true},"custom_str9":{"name":"x","state":true}}`), &doc)
	require.NoError(t, err)
	assert.Equal(t, Field{Name: "Author", State: true}, doc[Str1])
	assert.Equal(t, Field{}, doc[Int1])
}

func TestApplyRequiresAllSlots(t *testing.T) {
	full := Default()
	raw, err := json.Marshal(full)
	require.NoError(t, err)

	_, err = Apply(raw)
	assert.NoError(t, err)

	// Drop one key
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	delete(m, "custom_bool2")
	partial, err := json.Marshal(m)
	require.NoError(t, err)

	_, err = Apply(partial)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestApplyDropsUnknownKeys(t *testing.T) {
	full := Default()
	raw, err := json.Marshal(full)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	m["custom_str9"] = json.RawMessage(`{"name":"x","state":true}`)
	extended, err := json.Marshal(m)
	require.NoError(t, err)

	doc, err := Apply(extended)
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "custom_str9")
}

func TestApplyLabelBound(t *testing.T) {
	doc := Default()
	doc[Str1] = Field{Name: strings.Repeat("a", MaxLabelLen), State: true}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	_, err = Apply(raw)
	assert.NoError(t, err)

	doc[Str1] = Field{Name: strings.Repeat("a", MaxLabelLen+1), State: true}
	raw, err = json.Marshal(doc)
	require.NoError(t, err)
	_, err = Apply(raw)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestApplyAcceptsEncodedString(t *testing.T) {
	// Legacy clients send the document as a JSON-encoded string
	raw, err := json.Marshal(Default())
	require.NoError(t, err)
	encoded, err := json.Marshal(string(raw))
	require.NoError(t, err)

	doc, err := Apply(encoded)
	require.NoError(t, err)
	assert.Equal(t, Default(), doc)
}

func TestApplyIdempotent(t *testing.T) {
	doc := Default()
	doc[Date2] = Field{Name: "Published", State: true}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	once, err := Apply(raw)
	require.NoError(t, err)

	raw, err = json.Marshal(once)
	require.NoError(t, err)
	twice, err := Apply(raw)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestIsSlotActive(t *testing.T) {
	doc := Default()
	doc[Bool3] = Field{State: true}

	active, err := IsSlotActive(doc, "custom_bool3")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = IsSlotActive(doc, "custom_bool1")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = IsSlotActive(doc, "nonsense")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestActive(t *testing.T) {
	doc := Default()
	assert.Empty(t, doc.Active())

	doc[Str2] = Field{Name: "A", State: true}
	doc[Multext1] = Field{Name: "B", State: true}
	assert.Equal(t, []Slot{Str2, Multext1}, doc.Active())
}
