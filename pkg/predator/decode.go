// ABOUTME: Strict dataset decoding with snake_case key normalisation
// ABOUTME: All-or-nothing: any invalid record fails the whole load

package predator

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var codec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// wire types carry pointers so absent fields can be told apart from zero values
type wireScene struct {
	ID               *int    `json:"id"`
	Movie            *string `json:"movie"`
	SceneDescription *string `json:"sceneDescription"`
}

func (s wireScene) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.NotNil),
		validation.Field(&s.Movie, validation.NotNil),
		validation.Field(&s.SceneDescription, validation.NotNil),
	)
}

type wireRecord struct {
	ID          *int        `json:"id"`
	Name        *string     `json:"name"`
	Type        *string     `json:"type"`
	Diet        *string     `json:"diet"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	Height      string      `json:"height"`
	Length      string      `json:"length"`
	Weight      string      `json:"weight"`
	Movies      []string    `json:"movies"`
	MovieScenes []wireScene `json:"movieScenes"`
	Link        *string     `json:"link"`
}

func (w wireRecord) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.NotNil),
		validation.Field(&w.Name, validation.Required),
		validation.Field(&w.Type, validation.Required,
			validation.In(string(Land), string(Air), string(Sea))),
		validation.Field(&w.Diet, validation.Required,
			validation.In(string(Carnivore), string(Herbivore))),
		validation.Field(&w.Latitude, validation.NotNil),
		validation.Field(&w.Longitude, validation.NotNil),
		validation.Field(&w.Movies, validation.NotNil),
		validation.Field(&w.MovieScenes, validation.NotNil),
		validation.Field(&w.Link, validation.NotNil),
	)
}

func (w wireRecord) record() Record {
	scenes := make([]Scene, len(w.MovieScenes))
	for i, s := range w.MovieScenes {
		scenes[i] = Scene{ID: *s.ID, Movie: *s.Movie, Description: *s.SceneDescription}
	}

	return Record{
		ID:        *w.ID,
		Name:      *w.Name,
		Category:  Category(*w.Type),
		Diet:      Diet(*w.Diet),
		Latitude:  *w.Latitude,
		Longitude: *w.Longitude,
		Measurements: Measurements{
			Height: w.Height,
			Length: w.Length,
			Weight: w.Weight,
		},
		Movies: append([]string(nil), w.Movies...),
		Scenes: scenes,
		Link:   *w.Link,
	}
}

// Decode reads a JSON array of records from r.
//
// Multi-word keys may use snake_case (movie_scenes, scene_description); they are
// normalised to their canonical camelCase names at every nesting level. Read
// failures yield a NotFound DataError, anything else a DecodeError. On error no
// records are returned.
func Decode(r io.Reader, source string) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, notFound(source, err)
	}
	return DecodeBytes(data, source)
}

// DecodeBytes decodes an in-memory dataset; see Decode
func DecodeBytes(data []byte, source string) ([]Record, error) {
	var raw any
	if err := codec.Unmarshal(data, &raw); err != nil {
		return nil, decodeFailed(source, err)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, decodeFailed(source, fmt.Errorf("expected an array of records, got %T", raw))
	}

	n := newKeyNormalizer()
	records := make([]Record, 0, len(items))
	seen := make(map[int]int, len(items))

	for i, item := range items {
		normalized, err := n.normalize(item)
		if err != nil {
			return nil, decodeFailed(source, fmt.Errorf("record %d: %w", i, err))
		}

		canonical, err := codec.Marshal(normalized)
		if err != nil {
			return nil, decodeFailed(source, fmt.Errorf("record %d: %w", i, err))
		}

		var w wireRecord
		if err := codec.Unmarshal(canonical, &w); err != nil {
			return nil, decodeFailed(source, fmt.Errorf("record %d: %w", i, err))
		}
		if err := w.Validate(); err != nil {
			return nil, decodeFailed(source, fmt.Errorf("record %d: %w", i, err))
		}

		if prev, dup := seen[*w.ID]; dup {
			return nil, decodeFailed(source,
				fmt.Errorf("record %d: duplicate id %d (first at record %d)", i, *w.ID, prev))
		}
		seen[*w.ID] = i

		records = append(records, w.record())
	}

	return records, nil
}

// keyNormalizer rewrites object keys from snake_case to camelCase
type keyNormalizer struct {
	title cases.Caser
}

func newKeyNormalizer() *keyNormalizer {
	return &keyNormalizer{title: cases.Title(language.Und)}
}

// normalize fails when two keys of one object map to the same canonical
// name (movie_scenes and movieScenes); keeping either would depend on map
// iteration order.
func (n *keyNormalizer) normalize(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		from := make(map[string]string, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			key := n.camel(k)
			if prev, dup := from[key]; dup {
				return nil, fmt.Errorf("keys %q and %q both map to %q", prev, k, key)
			}
			val, err := n.normalize(x[k])
			if err != nil {
				return nil, err
			}
			from[key] = k
			out[key] = val
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i := range x {
			val, err := n.normalize(x[i])
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return v, nil
	}
}

// camel converts movie_scenes to movieScenes. Leading and trailing
// underscores are kept; keys without inner underscores are returned as is.
func (n *keyNormalizer) camel(key string) string {
	core := strings.Trim(key, "_")
	if core == "" || !strings.Contains(core, "_") {
		return key
	}

	lead := key[:strings.Index(key, core)]
	trail := key[len(lead)+len(core):]

	parts := strings.Split(core, "_")
	var b strings.Builder
	b.WriteString(lead)
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(n.title.String(p))
	}
	b.WriteString(trail)

	return b.String()
}

// CamelKey converts a single snake_case key to its canonical camelCase form
func CamelKey(key string) string {
	return newKeyNormalizer().camel(key)
}
