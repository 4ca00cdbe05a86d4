package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its footprint in the resolv space. The
// space works in pixels on the X/Z ground plane.
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the singleton resolv space holding every footprint.
var Space = donburi.NewComponentType[resolv.Space]()
