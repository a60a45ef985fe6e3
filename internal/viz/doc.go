// Package viz draws spin lattices in a terminal.
//
// Small lattices are drawn by [RenderBlocks] as two colored columns per spin;
// above [BlockLimit] the [Canvas] packs one braille dot per spin instead.
// [LiveModel] is a Bubble Tea model that sweeps an ensemble on every frame.
//
// Keys in the live view:
//
//	space  pause or resume
//	n      one sweep while paused
//	r      rebuild the lattice from its seed
//	t      next color theme
//	?      help
//	q      quit
package viz
