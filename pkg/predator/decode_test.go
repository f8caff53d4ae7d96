// ABOUTME: Tests for dataset decoding and schema validation
// ABOUTME: Verifies key normalisation, required fields and all-or-nothing failure

package predator

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

const validDataset = `[
  {
    "id": 1,
    "name": "Tyrannosaurus Rex",
    "type": "land",
    "diet": "carnivore",
    "latitude": 19.1,
    "longitude": -155.5,
    "height": "4 m",
    "length": "12 m",
    "weight": "8,000 kg",
    "movies": ["Jurassic Park", "Jurassic World"],
    "movie_scenes": [
      {"id": 1, "movie": "Jurassic Park", "scene_description": "Paddock escape"}
    ],
    "link": "https://en.wikipedia.org/wiki/Tyrannosaurus"
  },
  {
    "id": 4,
    "name": "Mosasaurus",
    "type": "sea",
    "diet": "carnivore",
    "latitude": 35.2,
    "longitude": 135.8,
    "movies": [],
    "movieScenes": [],
    "link": ""
  }
]`

func TestDecodeValidDataset(t *testing.T) {
	records, err := DecodeBytes([]byte(validDataset), "test")
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	rex := records[0]
	if rex.ID != 1 || rex.Name != "Tyrannosaurus Rex" {
		t.Errorf("Unexpected first record: %d %s", rex.ID, rex.Name)
	}
	if rex.Category != Land || rex.Diet != Carnivore {
		t.Errorf("Expected land carnivore, got %s %s", rex.Category, rex.Diet)
	}
	if len(rex.Scenes) != 1 || rex.Scenes[0].Description != "Paddock escape" {
		t.Errorf("Expected normalised scene_description, got %+v", rex.Scenes)
	}
	if rex.Measurements.Weight != "8,000 kg" {
		t.Errorf("Expected weight 8,000 kg, got %q", rex.Measurements.Weight)
	}

	// Source order is preserved and camelCase keys are accepted as is
	if records[1].ID != 4 || records[1].Category != Sea {
		t.Errorf("Expected Mosasaurus second, got %d %s", records[1].ID, records[1].Category)
	}
	if records[1].Measurements != (Measurements{}) {
		t.Errorf("Expected empty measurements, got %+v", records[1].Measurements)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	records, err := DecodeBytes([]byte(`[]`), "empty")
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestDecodeFailures(t *testing.T) {
	base := `{"id": 1, "name": "Raptor", "type": "land", "diet": "carnivore",
	"latitude": 1, "longitude": 2, "movies": [], "movie_scenes": [], "link": ""}`

	arr := func(s string) string { return "[" + s + "]" }

	tests := []struct {
		name string
		data string
	}{
		{"malformed", `[{"id": 1,`},
		{"not an array", `{"id": 1}`},
		{"invalid category", arr(strings.Replace(base, `"land"`, `"space"`, 1))},
		{"all is not a category", arr(strings.Replace(base, `"land"`, `"all"`, 1))},
		{"invalid diet", arr(strings.Replace(base, `"carnivore"`, `"omnivore"`, 1))},
		{"missing name", arr(strings.Replace(base, `"name": "Raptor", `, "", 1))},
		{"empty name", arr(strings.Replace(base, `"Raptor"`, `""`, 1))},
		{"missing id", arr(strings.Replace(base, `"id": 1, `, "", 1))},
		{"missing latitude", arr(strings.Replace(base, `"latitude": 1, `, "", 1))},
		{"missing scenes", arr(strings.Replace(base, `, "movie_scenes": []`, "", 1))},
		{"wrong id type", arr(strings.Replace(base, `"id": 1`, `"id": "one"`, 1))},
		{"scene missing description", arr(strings.Replace(base, `"movie_scenes": []`,
			`"movie_scenes": [{"id": 1, "movie": "JP"}]`, 1))},
		{"snake and camel key collide", arr(strings.Replace(base, `"movie_scenes": []`,
			`"movie_scenes": [{"id": 1, "movie": "JP", "scene_description": "x"}], "movieScenes": []`, 1))},
		{"nested keys collide", arr(strings.Replace(base, `"movie_scenes": []`,
			`"movie_scenes": [{"id": 1, "movie": "JP", "scene_description": "x", "sceneDescription": "y"}]`, 1))},
	}

	if _, err := DecodeBytes([]byte(arr(base)), "base"); err != nil {
		t.Fatalf("Base record must decode: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeBytes([]byte(tt.data), "bad")
			if err == nil {
				t.Fatalf("Expected decode error, got %d records", len(records))
			}
			if records != nil {
				t.Errorf("Expected no records on failure, got %d", len(records))
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Expected ErrDecode, got %v", err)
			}

			var de *DataError
			if !errors.As(err, &de) || de.Kind != DecodeError {
				t.Errorf("Expected DataError with DecodeError kind, got %v", err)
			}
		})
	}
}

func TestDecodeOneBadRecordFailsAll(t *testing.T) {
	data := strings.Replace(validDataset, `"type": "sea"`, `"type": "lake"`, 1)

	records, err := DecodeBytes([]byte(data), "partial")
	if err == nil {
		t.Fatal("Expected error for invalid category")
	}
	if len(records) != 0 {
		t.Errorf("Expected no partial records, got %d", len(records))
	}
	if !strings.Contains(err.Error(), "record 1") {
		t.Errorf("Expected error to name record 1, got %v", err)
	}
}

func TestDecodeKeyCollisionIsDeterministic(t *testing.T) {
	data := `[{"id": 1, "name": "Raptor", "type": "land", "diet": "carnivore",
	"latitude": 1, "longitude": 2, "movies": [], "link": "",
	"movie_scenes": [{"id": 1, "movie": "JP", "scene_description": "x"}], "movieScenes": []}]`

	var first string
	for i := 0; i < 50; i++ {
		records, err := DecodeBytes([]byte(data), "collide")
		if err == nil {
			t.Fatalf("Expected collision error on load %d, got %d records", i, len(records))
		}
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("Expected ErrDecode, got %v", err)
		}
		if i == 0 {
			first = err.Error()
			continue
		}
		if err.Error() != first {
			t.Fatalf("Expected identical errors, got %q and %q", first, err.Error())
		}
	}

	if !strings.Contains(first, `"movieScenes" and "movie_scenes"`) {
		t.Errorf("Expected both keys in message, got %s", first)
	}
}

func TestDecodeDuplicateID(t *testing.T) {
	data := strings.Replace(validDataset, `"id": 4`, `"id": 1`, 1)

	_, err := DecodeBytes([]byte(data), "dup")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Expected ErrDecode for duplicate id, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate id 1") {
		t.Errorf("Unexpected message: %v", err)
	}
}

func TestDecodeReadFailure(t *testing.T) {
	cause := errors.New("disk gone")

	_, err := Decode(iotest.ErrReader(cause), "broken")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected cause to be wrapped, got %v", err)
	}
	if errors.Is(err, ErrDecode) {
		t.Error("NotFound error must not match ErrDecode")
	}
}

func TestCamelKey(t *testing.T) {
	cases := map[string]string{
		"movie_scenes":      "movieScenes",
		"scene_description": "sceneDescription",
		"name":              "name",
		"movieScenes":       "movieScenes",
		"_private_key":      "_privateKey",
		"trailing_key_":     "trailingKey_",
		"double__under":     "doubleUnder",
		"SHOUT_CASE":        "SHOUTCase",
		"_":                 "_",
	}

	for in, want := range cases {
		if got := CamelKey(in); got != want {
			t.Errorf("CamelKey(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestDataErrorMessage(t *testing.T) {
	err := NewDataError(DecodeError, "file.json", errors.New("bad"))
	if got := err.Error(); got != "predator data decode error (file.json): bad" {
		t.Errorf("Unexpected message: %s", got)
	}
}
