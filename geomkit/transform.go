package geomkit

// RigidTransform is a rotation composed with a translation: x ↦ R·x + T.
type RigidTransform struct {
	Rotation    Rotation
	Translation Coord
}

// IdentityTransform returns the transform that leaves points unchanged,
// used as the canonical anchor for the root structure in a multi-structure
// superposition.
func IdentityTransform() RigidTransform {
	return RigidTransform{Rotation: Identity()}
}

// ApplyTo maps c through the transform.
func (t RigidTransform) ApplyTo(c Coord) Coord {
	return t.Rotation.ApplyTo(c).Add(t.Translation)
}

// Compose returns the transform equivalent to applying t first, then other.
func (t RigidTransform) Compose(other RigidTransform) RigidTransform {
	return RigidTransform{
		Rotation:    t.Rotation.Compose(other.Rotation),
		Translation: other.Rotation.ApplyTo(t.Translation).Add(other.Translation),
	}
}

// Inverse returns the transform that undoes t.
func (t RigidTransform) Inverse() RigidTransform {
	invR := t.Rotation.Inverse()
	return RigidTransform{
		Rotation:    invR,
		Translation: invR.ApplyTo(t.Translation).Scale(-1),
	}
}

// FitTransform builds the RigidTransform that best superposes a onto b,
// using Kabsch on the recentred point sets and recovering the translation
// so that R·a_centroid + T == b_centroid exactly.
func FitTransform(a, b []Coord) (RigidTransform, error) {
	ca, centroidA := Recentre(a)
	cb, centroidB := Recentre(b)

	rot, err := FitFirstOntoSecond(ca, cb)
	if err != nil {
		return RigidTransform{}, err
	}

	// R·(x - centroidA) + centroidB == R·x + (centroidB - R·centroidA)
	translation := centroidB.Sub(rot.ApplyTo(centroidA))
	return RigidTransform{Rotation: rot, Translation: translation}, nil
}
