package world

import (
	"sync"

	"github.com/udisondev/worldguard/internal/model"
)

// RegionRepository owns every Region of the world.
// Regions live in an arena addressed by int32 slot; the table maps grid cells
// to slots. At most one Region exists per cell and regions are never evicted.
type RegionRepository struct {
	mu      sync.RWMutex
	table   map[RegionCoordinates]int32
	regions []*Region
}

// NewRegionRepository creates an empty repository.
func NewRegionRepository() *RegionRepository {
	return &RegionRepository{
		table:   make(map[RegionCoordinates]int32, 1024),
		regions: make([]*Region, 0, 1024),
	}
}

// FromPosition returns the Region owning pos, creating it on first access.
// Never returns nil.
func (r *RegionRepository) FromPosition(pos model.Position) *Region {
	return r.Get(CoordinatesOf(pos))
}

// Get returns the Region for coords, creating it on first access.
func (r *RegionRepository) Get(coords RegionCoordinates) *Region {
	// Fast path: region already exists
	r.mu.RLock()
	idx, ok := r.table[coords]
	if ok {
		region := r.regions[idx]
		r.mu.RUnlock()
		return region
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have created it in between
	if idx, ok := r.table[coords]; ok {
		return r.regions[idx]
	}

	idx = int32(len(r.regions))
	region := newRegion(coords, idx)
	r.regions = append(r.regions, region)
	r.table[coords] = idx
	return region
}

// Lookup returns the Region for coords without creating it.
func (r *RegionRepository) Lookup(coords RegionCoordinates) (*Region, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.table[coords]
	if !ok {
		return nil, false
	}
	return r.regions[idx], true
}

// ByIndex returns the Region at arena slot idx, or nil if out of range.
func (r *RegionRepository) ByIndex(idx int32) *Region {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx < 0 || int(idx) >= len(r.regions) {
		return nil
	}
	return r.regions[idx]
}

// Surrounding returns the existing regions overlapping the Chebyshev square of
// viewDistance tiles around pos. Cells never referenced are skipped, not created.
// viewDistance is clamped to [0, MaxViewDistance].
func (r *RegionRepository) Surrounding(pos model.Position, viewDistance int32) []*Region {
	lo, hi := cellRange(pos, clampRadius(viewDistance))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Region, 0, min(cellSpan(lo, hi), int64(len(r.regions))))
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			if idx, ok := r.table[RegionCoordinates{X: x, Y: y}]; ok {
				out = append(out, r.regions[idx])
			}
		}
	}
	return out
}

// Regions returns a snapshot of all created regions in creation order.
func (r *RegionRepository) Regions() []*Region {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Region(nil), r.regions...)
}

// Count returns the number of created regions.
func (r *RegionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.regions)
}
