package chirp

import (
	"fmt"
	"sort"
	"strings"
)

// Event is a detected merger the player tries to reproduce.
type Event struct {
	Name        string
	M1, M2      float64 // source-frame masses, solar masses
	Description string
}

// Events lists the catalog events available in the game.
var Events = map[string]Event{
	"GW150914": {
		Name: "GW150914", M1: 35.6, M2: 30.6,
		Description: "The first gravitational waves ever observed, from two black holes merging 1.3 billion years ago.",
	},
	"GW151226": {
		Name: "GW151226", M1: 13.7, M2: 7.7,
		Description: "A lighter pair whose long chirp swept through the detectors for over a second.",
	},
	"GW170814": {
		Name: "GW170814", M1: 30.6, M2: 25.2,
		Description: "The first merger seen by three detectors at once.",
	},
	"GW190521": {
		Name: "GW190521", M1: 95.3, M2: 69.0,
		Description: "The heaviest merger of its time, leaving an intermediate-mass black hole behind.",
	},
	"GW190814": {
		Name: "GW190814", M1: 23.2, M2: 2.59,
		Description: "A very unequal pair: the lighter body is either the heaviest neutron star or the lightest black hole known.",
	},
}

// LookupEvent finds an event by name, ignoring case.
func LookupEvent(name string) (Event, error) {
	if e, ok := Events[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return e, nil
	}
	return Event{}, fmt.Errorf("chirp: unknown event %q (available: %s)", name, strings.Join(EventNames(), ", "))
}

// EventNames returns the catalog names in chronological order.
func EventNames() []string {
	names := make([]string, 0, len(Events))
	for n := range Events {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
