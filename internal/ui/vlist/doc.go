// Package vlist implements a windowed list component for Bubble Tea programs.
//
// Only the items near the viewport are rendered. The component keeps a
// cache of rendered rows covering the visible range plus a buffer on each
// side, so large libraries scroll without paying for offscreen items.
//
// # Windowing
//
// Every item occupies a fixed number of rows, which makes the mapping
// between scroll offset and item index pure arithmetic ([VisibleRange]).
// Mutations ([Model.SetItems], [Model.InsertItem], [Model.RemoveItem])
// rebuild the window; [Model.UpdateItem] re-renders just the one item
// when it is inside the window and touches nothing otherwise. When the
// viewport height is unknown the component gives up on windowing and
// renders the whole list, so it still works in unmeasured layouts.
//
// # Scroll Coalescing
//
// Wheel and cursor scrolling go through a single-slot queue: one apply
// command is in flight at a time and newer targets overwrite the slot,
// so a burst of scroll events costs one window rebuild at the latest
// position. Rebuilds themselves are threshold gated; short moves ride on
// the buffered rows already in the cache.
//
// # Failure Isolation
//
// The render callback runs under recover. An item whose callback panics
// renders as a placeholder row and is logged; the rest of the frame is
// unaffected.
//
// # Selection
//
// Selection is a set of item IDs, not indices, so it survives scrolling,
// reordering and list replacement. [Model.ToggleSelect], [Model.SelectAll]
// and [Model.ClearSelection] emit a [SelectionMsg] carrying a sorted
// snapshot for status lines.
//
// Completed render passes emit a [RenderedMsg] with the window bounds and
// elapsed time, which the browse screen surfaces in its footer.
package vlist
