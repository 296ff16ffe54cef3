package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYears_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue int
		wantValid bool
	}{
		{"integer", `3`, 3, true},
		{"zero", `0`, 0, true},
		{"float truncates", `2.9`, 2, true},
		{"numeric string", `"5"`, 5, true},
		{"padded numeric string", `" 7 "`, 7, true},
		{"empty string", `""`, 0, true},
		{"null", `null`, 0, true},
		{"word", `"five"`, 0, false},
		{"negative", `-1`, 0, false},
		{"negative string", `"-4"`, 0, false},
		{"bool", `true`, 0, false},
		{"object", `{"years": 3}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Years
			require.NoError(t, json.Unmarshal([]byte(tt.input), &y))
			assert.Equal(t, tt.wantValid, y.Valid())
			if tt.wantValid {
				assert.Equal(t, tt.wantValue, y.Value)
			}
		})
	}
}

func TestYears_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(YearsOf(4))
	require.NoError(t, err)
	assert.Equal(t, `4`, string(data))

	data, err = json.Marshal(Years{Raw: "lots"})
	require.NoError(t, err)
	assert.Equal(t, `"lots"`, string(data))
}

func TestProfile_DecodeMalformedExperience(t *testing.T) {
	var p Profile
	err := json.Unmarshal([]byte(`{"id":"u1","skills":["go"],"experience_years":"a decade"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "u1", p.ID)
	assert.False(t, p.ExperienceYears.Valid())
	assert.Equal(t, "a decade", p.ExperienceYears.String())
}
