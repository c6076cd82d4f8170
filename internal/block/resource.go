package block

// Scale is the per-axis divisor applied to world coordinates before sampling
// resource noise.
type Scale struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Resource holds the generation parameters of a stone/ore kind.
type Resource struct {
	Kind     Kind
	Scale    Scale
	Scarcity float64 // noise threshold in (0,1); higher is rarer
}

// DefaultResources returns the resource table in generation order. Later
// entries overwrite earlier ones where both pass their threshold.
func DefaultResources() []Resource {
	return []Resource{
		{Kind: Stone, Scale: Scale{30, 30, 30}, Scarcity: 0.5},
		{Kind: CoalOre, Scale: Scale{20, 20, 20}, Scarcity: 0.8},
		{Kind: IronOre, Scale: Scale{60, 60, 60}, Scarcity: 0.9},
		{Kind: GoldOre, Scale: Scale{60, 60, 60}, Scarcity: 0.95},
		{Kind: DiamondOre, Scale: Scale{1, 1, 1}, Scarcity: 0.99},
	}
}
