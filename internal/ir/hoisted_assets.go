package ir

import "fmt"

// AssetKind is one of the three per-VNode hoist categories spec.md §3
// restricts to at most one entry each.
type AssetKind int

const (
	AssetProps AssetKind = iota
	AssetDynamicProps
	AssetChildren
)

func (k AssetKind) String() string {
	switch k {
	case AssetProps:
		return "Props"
	case AssetDynamicProps:
		return "DynamicProps"
	case AssetChildren:
		return "Children"
	default:
		return "Invalid"
	}
}

// HoistedAssets tracks which of a VNode's pieces HoistStatic has promoted to
// module-level constants. The Rust original enforces "at most one entry per
// kind" with a debug_assert; Go has no debug-only assertions, so each Add
// method returns an error a caller checks, per the decision recorded in
// DESIGN.md's Open Questions section.
type HoistedAssets struct {
	entries map[AssetKind]int
}

func NewHoistedAssets() *HoistedAssets {
	return &HoistedAssets{entries: map[AssetKind]int{}}
}

func (h *HoistedAssets) add(kind AssetKind, hoistIndex int) error {
	if _, exists := h.entries[kind]; exists {
		return fmt.Errorf("ir: VNode already has a hoisted %s entry", kind)
	}
	h.entries[kind] = hoistIndex
	return nil
}

func (h *HoistedAssets) AddProps(hoistIndex int) error        { return h.add(AssetProps, hoistIndex) }
func (h *HoistedAssets) AddDynamicProps(hoistIndex int) error { return h.add(AssetDynamicProps, hoistIndex) }
func (h *HoistedAssets) AddChildren(hoistIndex int) error     { return h.add(AssetChildren, hoistIndex) }

func (h *HoistedAssets) HasPropsHoisted() (int, bool)        { idx, ok := h.entries[AssetProps]; return idx, ok }
func (h *HoistedAssets) HasDynamicPropsHoisted() (int, bool) { idx, ok := h.entries[AssetDynamicProps]; return idx, ok }
func (h *HoistedAssets) HasChildrenHoisted() (int, bool)     { idx, ok := h.entries[AssetChildren]; return idx, ok }
