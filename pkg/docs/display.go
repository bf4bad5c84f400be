package docs

import "strings"

// DisplayName derives a component's heading from a story title: the last
// "/" segment with a space before every capital letter except the first
// character ("Compound Components/DataTable" -> "Data Table").
//
// Unlike a plain "space before every non-leading capital" rewrite, a capital
// that already follows a space gets no second one: "Experimental Widget"
// stays as is instead of becoming "Experimental  Widget". This is an
// intended difference.
func DisplayName(title string) (name string) {
	segment := title
	if i := strings.LastIndex(title, "/"); i >= 0 {
		segment = title[i+1:]
	}

	var b strings.Builder
	b.Grow(len(segment) + 4)

	var prev rune
	for i, r := range segment {
		if i > 0 && r >= 'A' && r <= 'Z' && prev != ' ' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	name = b.String()
	return name
}
