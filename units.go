package reveal

import "github.com/rivo/uniseg"

// Units splits text into its display units, one per grapheme cluster,
// so that combined characters and emoji are revealed as a whole.
func Units(text string) []string {
	units := make([]string, 0, len(text))

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		units = append(units, g.Str())
	}

	return units
}
