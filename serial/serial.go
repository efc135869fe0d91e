// Package serial implements JSON round-tripping for the core's value types
// (Coord, Rotation, RigidTransform, Superposition, Alignment, Hierarchy).
// Every floating-point field is marshalled as a JSON string rather than a
// JSON number, so that round-tripping through a JSON-number parser that
// coerces to float64 (as many non-Go consumers do) never silently loses a
// bit of precision in a coordinate or a score.
//
// Structural integers (table dimensions, counters, group and entry indices)
// are left as ordinary JSON numbers: they are never subject to the
// float64-precision hazard the string encoding guards against. Alignment
// positions are the exception: they are carried as strings too.
package serial

import (
	"encoding/json"
	"strconv"

	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/geomkit"
)

// numString is a float64 that marshals as a JSON string.
type numString float64

func (n numString) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(n), 'g', -1, 64))
}

func (n *numString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = numString(v)
	return nil
}

func strconvUint32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

type coordJSON struct {
	X numString `json:"x"`
	Y numString `json:"y"`
	Z numString `json:"z"`
}

// MarshalCoord renders c as JSON with string-encoded components.
func MarshalCoord(c geomkit.Coord) ([]byte, error) {
	return json.Marshal(coordJSON{X: numString(c.X), Y: numString(c.Y), Z: numString(c.Z)})
}

// UnmarshalCoord parses JSON produced by MarshalCoord back into a
// validated geomkit.Coord.
func UnmarshalCoord(data []byte) (geomkit.Coord, error) {
	var dto coordJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return geomkit.Coord{}, errs.New(errs.KindParse, "serial.UnmarshalCoord", err)
	}
	c, err := geomkit.NewCoord(float64(dto.X), float64(dto.Y), float64(dto.Z))
	if err != nil {
		return geomkit.Coord{}, err
	}
	return c, nil
}

type rotationJSON struct {
	M [9]numString `json:"m"`
}

// MarshalRotation renders r's 9 row-major entries as JSON strings.
func MarshalRotation(r geomkit.Rotation) ([]byte, error) {
	arr := r.Array()
	var dto rotationJSON
	for i, v := range arr {
		dto.M[i] = numString(v)
	}
	return json.Marshal(dto)
}

// UnmarshalRotation parses JSON produced by MarshalRotation, re-validating
// proper-orthogonality within tau.
func UnmarshalRotation(data []byte, tau float64) (geomkit.Rotation, error) {
	var dto rotationJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return geomkit.Rotation{}, errs.New(errs.KindParse, "serial.UnmarshalRotation", err)
	}
	var arr [9]float64
	for i, v := range dto.M {
		arr[i] = float64(v)
	}
	return geomkit.NewRotation(arr, tau)
}

type rigidTransformJSON struct {
	Rotation    rotationJSON `json:"rotation"`
	Translation coordJSON    `json:"translation"`
}

// MarshalRigidTransform renders t as JSON.
func MarshalRigidTransform(t geomkit.RigidTransform) ([]byte, error) {
	arr := t.Rotation.Array()
	var rdto rotationJSON
	for i, v := range arr {
		rdto.M[i] = numString(v)
	}
	dto := rigidTransformJSON{
		Rotation: rdto,
		Translation: coordJSON{
			X: numString(t.Translation.X),
			Y: numString(t.Translation.Y),
			Z: numString(t.Translation.Z),
		},
	}
	return json.Marshal(dto)
}

// UnmarshalRigidTransform parses JSON produced by MarshalRigidTransform,
// re-validating the rotation's proper-orthogonality within tau.
func UnmarshalRigidTransform(data []byte, tau float64) (geomkit.RigidTransform, error) {
	var dto rigidTransformJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return geomkit.RigidTransform{}, errs.New(errs.KindParse, "serial.UnmarshalRigidTransform", err)
	}
	var arr [9]float64
	for i, v := range dto.Rotation.M {
		arr[i] = float64(v)
	}
	rot, err := geomkit.NewRotation(arr, tau)
	if err != nil {
		return geomkit.RigidTransform{}, err
	}
	translation, err := geomkit.NewCoord(float64(dto.Translation.X), float64(dto.Translation.Y), float64(dto.Translation.Z))
	if err != nil {
		return geomkit.RigidTransform{}, err
	}
	return geomkit.RigidTransform{Rotation: rot, Translation: translation}, nil
}
