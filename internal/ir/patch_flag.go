package ir

// PatchFlag is a bitfield hint for the runtime's diff algorithm, set
// exclusively by the PatchFlagMarker pass per spec.md §3's invariant that
// "patch-flag bits are disjoint categories; set only by the patch-flag
// pass." Categories don't overlap, but a VNode can carry more than one, so
// this is still a bitset rather than an enum.
type PatchFlag int

const PatchNone PatchFlag = 0

const (
	// PatchText marks a VNode whose single text child needs re-evaluation.
	PatchText PatchFlag = 1 << iota
	PatchClass
	PatchStyle
	PatchProps
	PatchFullProps
	PatchNeedHydration
	PatchStableFragment
	PatchKeyedFragment
	PatchUnkeyedFragment
	PatchNeedPatch
	PatchDynamicSlots
	PatchDevRootFragment
	PatchHoisted
	PatchBail
)

func (f PatchFlag) Has(bit PatchFlag) bool { return f&bit != 0 }
