// ABOUTME: Immutable filter -> sort -> search pipeline over predator records
// ABOUTME: Each stage takes a view and returns a new one

package query

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nainya/predators/pkg/predator"
)

// Filter derives a view from the full set. It never narrows a previous view:
// the All selector returns the full set, a category returns its members in
// source order. Records share their Movies and Scenes with full; use
// Index.Filter or View.Clone for an independent copy.
func Filter(full []predator.Record, f predator.CategoryFilter) View {
	c, ok := f.Category()
	if !ok {
		return slices.Clone(View(full))
	}

	view := make(View, 0, len(full))
	for i := range full {
		if full[i].Category == c {
			view = append(view, full[i])
		}
	}
	return view
}

// Sort returns a stably sorted shallow copy of v
func Sort(v View, mode SortMode) View {
	out := slices.Clone(v)

	switch mode {
	case Alphabetical:
		slices.SortStableFunc(out, func(a, b predator.Record) int {
			return strings.Compare(a.Name, b.Name)
		})
	case ByID:
		slices.SortStableFunc(out, func(a, b predator.Record) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}

	return out
}

// Search returns deep copies of the records of v whose name contains text,
// ignoring case and diacritics, in v's order. Empty text returns a copy of v.
// Text that folds to nothing (a lone combining mark) matches no records.
func Search(v View, text string) View {
	if text == "" {
		return v.Clone()
	}

	m := newMatcher()
	needle := m.fold(text)
	if needle == "" {
		return View{}
	}

	out := make(View, 0, len(v))
	for i := range v {
		if strings.Contains(m.fold(v[i].Name), needle) {
			out = append(out, v[i].Clone())
		}
	}
	return out
}

// Run applies q to the indexed full set in the fixed order filter, sort, search
func Run(idx *Index, q Query) View {
	return Search(Sort(idx.Filter(q.Filter), q.Sort), q.Text)
}

// matcher folds strings for comparison; not safe for concurrent use
type matcher struct {
	t transform.Transformer
}

func newMatcher() *matcher {
	return &matcher{
		t: transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			cases.Fold(),
			norm.NFC,
		),
	}
}

func (m *matcher) fold(s string) string {
	out, _, err := transform.String(m.t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Fold returns the comparison form used by Search
func Fold(s string) string {
	return newMatcher().fold(s)
}
