package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "integer", input: `100`, want: 100},
		{name: "decimal", input: `99.95`, want: 99.95},
		{name: "numeric string", input: `"999"`, want: 999},
		{name: "padded string", input: `" 12.5 "`, want: 12.5},
		{name: "word", input: `"lots"`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
		{name: "infinity string", input: `"Infinity"`, wantErr: true},
		{name: "short infinity string", input: `"-Inf"`, wantErr: true},
		{name: "nan string", input: `"NaN"`, wantErr: true},
		{name: "overflowing number", input: `1e999`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}
