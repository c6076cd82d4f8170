package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	_, ok := ParseKind("bedrock")
	assert.False(t, ok)
}

func TestResourceClassification(t *testing.T) {
	assert.False(t, Empty.IsResource())
	assert.False(t, Grass.IsResource())
	assert.False(t, Dirt.IsResource())
	assert.True(t, Stone.IsResource())
	assert.False(t, Stone.IsOre())
	assert.True(t, DiamondOre.IsOre())
}

func TestDefaultResourcesOrder(t *testing.T) {
	want := []Kind{Stone, CoalOre, IronOre, GoldOre, DiamondOre}
	res := DefaultResources()
	if assert.Len(t, res, len(want)) {
		for i, r := range res {
			assert.Equal(t, want[i], r.Kind)
			assert.Greater(t, r.Scarcity, 0.0)
			assert.Less(t, r.Scarcity, 1.0)
		}
	}
}
