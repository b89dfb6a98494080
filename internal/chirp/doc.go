// Package chirp generates gravitational-wave chirp templates and scores how
// well two of them agree.
//
// Templates follow the leading-order (Newtonian) frequency evolution from a
// lower cutoff up to the merger frequency of [physics.MergerOmega], followed
// by a short damped tail. [Match] maximises the normalised overlap over time
// shift and phase, and [Verdict] turns it into the feedback of the
// match-the-chirp game played against the [Events] catalog.
package chirp
