package normalize

import (
	"regexp"
	"strings"
)

var (
	apostrophes = strings.NewReplacer("’", "", "'", "")
	ampersand   = regexp.MustCompile(`\b&\b`)
	punct       = regexp.MustCompile(`[^\w\s.\-]`)
	tokenEdge   = regexp.MustCompile(`^\W+|\W+$`)
)

// Text normaliza pra casamento de alias: trim, minúsculas, sem apóstrofos.
// Hífens são mantidos porque distinguem alguns aliases.
func Text(s string) string {
	return apostrophes.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Input normaliza totalmente a entrada de uma aposta antes do parse:
// minúsculas, travessões viram hífen, "&" colado vira "and", remove pontuação
// (exceto letras, dígitos, espaço, ponto e hífen) e colapsa espaços.
func Input(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	s = ampersand.ReplaceAllString(s, "and")
	s = punct.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// CleanToken remove pontuação das bordas de um token.
func CleanToken(t string) string {
	return tokenEdge.ReplaceAllString(t, "")
}
