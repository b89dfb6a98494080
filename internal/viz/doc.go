// Package viz turns recorded orbit frames into something drawable.
//
//   - [BinaryArtist] and [Ringdown]: per-frame render state (disks in
//     back-to-front order, the ringing remnant ellipse)
//   - [Canvas]: Braille-based pixel canvas used by the terminal view
//   - [View] and [Draw]: world-to-pixel mapping and painter's-order drawing
//   - [Model]: Bubble Tea live animation
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Cycle color themes
//	G     - Toggle recording (frames go to LiveOptions.Recorder)
//	?     - Show help overlay
//	[]    - Step through history
//	+/-   - Zoom
package viz
