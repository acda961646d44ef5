
package textclean

import "strings"

// Clean lower-cases text and collapses every whitespace run into a single
// space. Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
