package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally.
// PostgreSQL uses backslash as the default LIKE escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
