package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	require.Equal(t, "the oneills", Text("  The O'Neill's "))
	require.Equal(t, "nottm forest", Text("Nottm Forest"))
}

func TestTextKeepsHyphen(t *testing.T) {
	require.Equal(t, "over-under", Text("Over-Under"))
}

func TestInput(t *testing.T) {
	cases := map[string]string{
		"Ajax & Lazio!!!":          "ajax lazio",
		"Arsenal  to   WIN":        "arsenal to win",
		"Correct Score: 2-1":       "correct score 2-1",
		"Over/Under 2.5 Goals":     "overunder 2.5 goals",
		"Milan–Inter (draw)":       "milan-inter draw",
		"  Chelsea  Win to Nil  ":  "chelsea win to nil",
	}
	for in, want := range cases {
		require.Equal(t, want, Input(in), in)
	}
}

func TestCleanToken(t *testing.T) {
	require.Equal(t, "ajax", CleanToken("(ajax)"))
	require.Equal(t, "2.5", CleanToken("2.5,"))
	require.Equal(t, "win", CleanToken("win"))
	require.Equal(t, "", CleanToken("!!!"))
}
