package physics

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"voxelsim/internal/world"
)

// Body is an upright cylinder whose Location is the top of the cylinder.
// Velocity is stored in whatever frame the body likes; physics only sees the
// world-space view of it.
type Body interface {
	Location() mgl64.Vec3
	Translate(d mgl64.Vec3)
	Bounds() (radius, height float64)
	WorldVelocity() mgl64.Vec3
	ApplyWorldDeltaVelocity(dv mgl64.Vec3)
	SetOnGround(onGround bool)
	ApplyInputs(dt float64)
}

// Blocks answers cell queries in world coordinates. ok is false when the
// cell is unavailable; unavailable cells never collide.
type Blocks interface {
	Block(x, y, z int) (world.Cell, bool)
}

// Contact is a penetration of the body by one unit cube.
type Contact struct {
	Block   [3]int
	Normal  mgl64.Vec3 // unit, points from the block toward the body
	Overlap float64
}

// BroadPhase returns every solid block in the integer box around the body.
func BroadPhase(body Body, blocks Blocks) [][3]int {
	p := body.Location()
	r, h := body.Bounds()

	minX, maxX := int(math.Floor(p.X()-r)), int(math.Ceil(p.X()+r))
	minY, maxY := int(math.Floor(p.Y()-h)), int(math.Ceil(p.Y()))
	minZ, maxZ := int(math.Floor(p.Z()-r)), int(math.Ceil(p.Z()+r))

	var out [][3]int
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				cell, ok := blocks.Block(x, y, z)
				if !ok || cell.IsEmpty() {
					continue
				}
				out = append(out, [3]int{x, y, z})
			}
		}
	}
	return out
}

// penetration is the closest point of a cube to the body's axis, relative
// to the body centre.
type penetration struct {
	dx, dy, dz float64
	horizontal float64
}

// probe measures the body against the cube centred on b and reports whether
// they intersect.
func probe(b [3]int, p mgl64.Vec3, r, h float64) (penetration, bool) {
	half := h / 2
	centerY := p.Y() - half
	bx, by, bz := float64(b[0]), float64(b[1]), float64(b[2])

	cx := mgl64.Clamp(p.X(), bx-0.5, bx+0.5)
	cy := mgl64.Clamp(centerY, by-0.5, by+0.5)
	cz := mgl64.Clamp(p.Z(), bz-0.5, bz+0.5)

	pen := penetration{dx: cx - p.X(), dy: cy - centerY, dz: cz - p.Z()}
	pen.horizontal = math.Sqrt(pen.dx*pen.dx + pen.dz*pen.dz)
	return pen, math.Abs(pen.dy) < half && pen.horizontal < r
}

// NarrowPhase tests each candidate cube against the body cylinder. grounded
// is true when any contact resolves vertically.
func NarrowPhase(candidates [][3]int, body Body) (contacts []Contact, grounded bool) {
	p := body.Location()
	r, h := body.Bounds()

	for _, b := range candidates {
		pen, hit := probe(b, p, r, h)
		if !hit {
			continue
		}
		overlapY := h/2 - math.Abs(pen.dy)
		overlapXZ := r - pen.horizontal

		c := Contact{Block: b}
		if overlapY < overlapXZ || pen.horizontal == 0 {
			c.Normal = mgl64.Vec3{0, verticalSign(pen.dy), 0}
			c.Overlap = overlapY
			grounded = true
		} else {
			c.Normal = mgl64.Vec3{-pen.dx, 0, -pen.dz}.Mul(1 / pen.horizontal)
			c.Overlap = overlapXZ
		}
		contacts = append(contacts, c)
	}
	return contacts, grounded
}

// verticalSign points away from the block. A block straddling the body
// centre pushes up.
func verticalSign(dy float64) float64 {
	if dy > 0 {
		return -1
	}
	return 1
}

// Resolve applies contacts smallest overlap first. A contact the body no
// longer intersects, because an earlier correction moved it, is skipped.
// Velocity into each applied normal is removed. It returns the number of
// contacts applied.
func Resolve(contacts []Contact, body Body) int {
	sortContacts(contacts)
	r, h := body.Bounds()

	applied := 0
	for _, c := range contacts {
		if _, hit := probe(c.Block, body.Location(), r, h); !hit {
			continue
		}
		body.Translate(c.Normal.Mul(c.Overlap))
		along := body.WorldVelocity().Dot(c.Normal)
		body.ApplyWorldDeltaVelocity(c.Normal.Mul(-along))
		applied++
	}
	return applied
}

// sortContacts orders by ascending overlap. Equal overlaps keep detection
// order.
func sortContacts(contacts []Contact) {
	slices.SortStableFunc(contacts, func(a, b Contact) int {
		switch {
		case a.Overlap < b.Overlap:
			return -1
		case a.Overlap > b.Overlap:
			return 1
		}
		return 0
	})
}

// Detect runs one full collision pass and returns the contacts applied.
func Detect(body Body, blocks Blocks) int {
	body.SetOnGround(false)
	contacts, grounded := NarrowPhase(BroadPhase(body, blocks), body)
	if grounded {
		body.SetOnGround(true)
	}
	return Resolve(contacts, body)
}

// Intersects reports whether the body overlaps the cube centred on b.
func Intersects(body Body, b [3]int) bool {
	r, h := body.Bounds()
	_, hit := probe(b, body.Location(), r, h)
	return hit
}
