package hand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		value    float64
		currency string
		wantErr  bool
	}{
		{input: "$0.05", value: 0.05, currency: "USD"},
		{input: "$1,234.56", value: 1234.56, currency: "USD"},
		{input: "€2.50", value: 2.5, currency: "EUR"},
		{input: "£10", value: 10, currency: "GBP"},
		{input: "¥100", value: 100, currency: "CNY"},
		{input: "3.00", value: 3, currency: "USD"},
		{input: " $5 ", value: 5, currency: "USD"},
		{input: "", wantErr: true},
		{input: "$", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, currency, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.value, value, 0.0001)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     time.Time
		timezone string
		wantErr  bool
	}{
		{
			name:     "pokerstars with ET",
			input:    "2024/01/15 20:00:00 ET",
			want:     time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
			timezone: "ET",
		},
		{
			name:  "ggpoker iso-ish",
			input: "2024-01-15 20:00:00",
			want:  time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
		},
		{
			name:     "partypoker long form",
			input:    "Monday, January 15, 20:00:00 CET 2024",
			want:     time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
			timezone: "CET",
		},
		{
			name:    "garbage",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, timezone, err := ParseDateTime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "expected %v, got %v", tt.want, got)
			assert.Equal(t, tt.timezone, timezone)
		})
	}
}

func TestHandActionCount(t *testing.T) {
	h := &Hand{
		Actions: map[Street][]Action{
			Preflop: {{Player: "a", Kind: ActionRaise, Amount: 3}, {Player: "b", Kind: ActionCall, Amount: 3}},
			Flop:    {{Player: "a", Kind: ActionCheck}},
		},
	}
	assert.Equal(t, 3, h.ActionCount())
}
