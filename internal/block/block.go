package block

import "fmt"

// Kind identifies the type of a voxel cell.
type Kind uint8

const (
	Empty Kind = iota
	Grass
	Dirt
	Stone
	CoalOre
	IronOre
	GoldOre
	DiamondOre
)

var names = [...]string{
	Empty:      "empty",
	Grass:      "grass",
	Dirt:       "dirt",
	Stone:      "stone",
	CoalOre:    "coalOre",
	IronOre:    "ironOre",
	GoldOre:    "goldOre",
	DiamondOre: "diamondOre",
}

// byName maps config names back to kinds
var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(names))
	for k, n := range names {
		m[n] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a block name such as "coalOre".
func ParseKind(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// IsResource reports whether the kind is placed by the resource pass.
func (k Kind) IsResource() bool {
	return k >= Stone && k <= DiamondOre
}

// IsOre reports whether the kind is one of the ores (stone excluded).
func (k Kind) IsOre() bool {
	return k >= CoalOre && k <= DiamondOre
}

// Kinds returns every kind in id order.
func Kinds() []Kind {
	out := make([]Kind, len(names))
	for i := range names {
		out[i] = Kind(i)
	}
	return out
}
