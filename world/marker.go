package world

import (
	"fmt"
	"math/bits"
	"sync"
)

// Marker tags a node so systems can find it. Markers are bits; a node's tags
// are the OR of its markers.
type Marker uint32

const maxMarkers = 32

var (
	markerMu    sync.Mutex
	markerNames []string
)

// NewMarker allocates the next free marker bit. It panics once all 32 are
// taken, which only happens through a programming error at init time.
func NewMarker(name string) Marker {
	markerMu.Lock()
	defer markerMu.Unlock()

	if len(markerNames) == maxMarkers {
		panic(fmt.Sprintf("world: cannot allocate marker %q: all %d markers in use", name, maxMarkers))
	}
	markerNames = append(markerNames, name)
	return Marker(1) << (len(markerNames) - 1)
}

func (m Marker) String() string {
	if bits.OnesCount32(uint32(m)) != 1 {
		return fmt.Sprintf("Marker(%#x)", uint32(m))
	}
	markerMu.Lock()
	defer markerMu.Unlock()

	i := bits.TrailingZeros32(uint32(m))
	if i >= len(markerNames) {
		return fmt.Sprintf("Marker(%#x)", uint32(m))
	}
	return markerNames[i]
}

func maskOf(markers []Marker) Marker {
	var mask Marker
	for _, m := range markers {
		mask |= m
	}
	return mask
}
