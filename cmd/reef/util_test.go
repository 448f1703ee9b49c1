package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAda(t *testing.T) {
	tests := []struct {
		lovelace uint64
		expected string
	}{
		{0, "0.000000"},
		{1, "0.000001"},
		{969750, "0.969750"},
		{2_000_000, "2.000000"},
		{45_000_000_000_000_000, "45000000000.000000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, formatAda(tt.lovelace))
		})
	}
}

func TestParseOutpoints(t *testing.T) {
	txid := "0000000000000000000000000000000000000000000000000000000000000001"

	outpoints, err := parseOutpoints([]string{txid + ":0", txid + ":12"})
	require.NoError(t, err)
	require.Len(t, outpoints, 2)
	require.Equal(t, txid, outpoints[1].Txid)
	require.Equal(t, uint32(12), outpoints[1].Index)

	tests := []struct {
		name  string
		input string
	}{
		{"missing index", txid},
		{"invalid index", txid + ":a"},
		{"too many parts", txid + ":0:1"},
		{"negative index", txid + ":-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOutpoints([]string{tt.input})
			require.Error(t, err)
		})
	}
}
