package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	require.Equal(t, 100, Ratio("correct score", "correct score"))
	require.Equal(t, 0, Ratio("", "correct score"))
	require.Equal(t, 0, Ratio("x", ""))

	// erro de digitação comum continua acima do threshold padrão (80)
	require.GreaterOrEqual(t, Ratio("corect score", "correct score"), 80)
	require.GreaterOrEqual(t, Ratio("both teams to score", "both teams score"), 80)

	// strings sem relação ficam bem abaixo
	require.Less(t, Ratio("ajax", "moneyline"), 60)
}

func TestClosest(t *testing.T) {
	candidates := []string{"match odds", "correct score", "both teams to score"}

	got := Closest("corect score", candidates, 3, 0.8)
	require.NotEmpty(t, got)
	require.Equal(t, "correct score", got[0])

	// cutoff alto filtra tudo que não é quase igual
	require.Empty(t, Closest("zzzz", candidates, 3, 0.95))

	// n limita o tamanho do resultado
	require.Len(t, Closest("score", candidates, 1, 0.0), 1)
}
