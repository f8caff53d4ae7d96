package query

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/nainya/predators/pkg/predator"
)

// Index holds the full record set with a position bitmap per category.
// It is built once and read-only afterwards.
type Index struct {
	full       []predator.Record
	byCategory map[predator.Category]*roaring.Bitmap
	byDiet     map[predator.Diet]*roaring.Bitmap
}

// NewIndex indexes records by position. The slice is retained and must not be
// modified by the caller.
func NewIndex(records []predator.Record) *Index {
	idx := &Index{
		full:       records,
		byCategory: make(map[predator.Category]*roaring.Bitmap, len(predator.Categories)),
		byDiet:     make(map[predator.Diet]*roaring.Bitmap, 2),
	}

	for i := range records {
		r := &records[i]
		bm, ok := idx.byCategory[r.Category]
		if !ok {
			bm = roaring.New()
			idx.byCategory[r.Category] = bm
		}
		bm.Add(uint32(i))

		dm, ok := idx.byDiet[r.Diet]
		if !ok {
			dm = roaring.New()
			idx.byDiet[r.Diet] = dm
		}
		dm.Add(uint32(i))
	}

	for _, bm := range idx.byCategory {
		bm.RunOptimize()
	}

	return idx
}

// Len returns the size of the full set
func (idx *Index) Len() int {
	return len(idx.full)
}

// Full returns a deep copy of the full set in source order
func (idx *Index) Full() View {
	return View(idx.full).Clone()
}

// Filter is the indexed equivalent of the package-level Filter. Records are
// deep copies, so the indexed set cannot be modified through the result.
func (idx *Index) Filter(f predator.CategoryFilter) View {
	c, ok := f.Category()
	if !ok {
		return idx.Full()
	}

	bm, ok := idx.byCategory[c]
	if !ok {
		return View{}
	}

	view := make(View, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		view = append(view, idx.full[it.Next()].Clone())
	}
	return view
}

// Count returns the number of records in category c
func (idx *Index) Count(c predator.Category) int {
	if bm, ok := idx.byCategory[c]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

// DietCount returns the number of records with diet d
func (idx *Index) DietCount(d predator.Diet) int {
	if bm, ok := idx.byDiet[d]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

// Get returns the record at source position i
func (idx *Index) Get(i int) (predator.Record, bool) {
	if i < 0 || i >= len(idx.full) {
		return predator.Record{}, false
	}
	return idx.full[i].Clone(), true
}
