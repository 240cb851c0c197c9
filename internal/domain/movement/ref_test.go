package movement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Ref
	}{
		{"null means default", `null`, DefaultRef()},
		{"empty string means default", `""`, DefaultRef()},
		{"non-empty string creates named", `"Shelf A"`, NamedRef("Shelf A")},
		{"number is an existing id", `42`, IDRef(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Ref
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefUnmarshalRejectsInvalid(t *testing.T) {
	var r Ref
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &r), "fractional id")
	assert.Error(t, json.Unmarshal([]byte(`true`), &r), "boolean")
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &r), "object")
}

func TestRefAbsentFieldDefaults(t *testing.T) {
	var payload struct {
		Placement Ref `json:"placement"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Equal(t, RefUseDefault, payload.Placement.Kind())
}

func TestRefMarshalRoundTrip(t *testing.T) {
	for _, ref := range []Ref{DefaultRef(), NamedRef("Shelf A"), IDRef(42)} {
		data, err := json.Marshal(ref)
		require.NoError(t, err)

		var got Ref
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, ref, got)
	}
}
