package serial

import (
	"encoding/json"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/cluster"
	"github.com/cath-tools/strucore/errs"
	"github.com/cath-tools/strucore/geomkit"
	"github.com/cath-tools/strucore/superpose"
)

type superpositionJSON struct {
	Root       int                  `json:"root"`
	Transforms []rigidTransformJSON `json:"transforms"`
}

// MarshalSuperposition renders s as JSON, each transform's rotation and
// translation components carried as strings.
func MarshalSuperposition(s *superpose.Superposition) ([]byte, error) {
	dto := superpositionJSON{Root: s.Root(), Transforms: make([]rigidTransformJSON, s.N())}
	for i := 0; i < s.N(); i++ {
		t := s.Transform(i)
		arr := t.Rotation.Array()
		var rdto rotationJSON
		for j, v := range arr {
			rdto.M[j] = numString(v)
		}
		dto.Transforms[i] = rigidTransformJSON{
			Rotation: rdto,
			Translation: coordJSON{
				X: numString(t.Translation.X),
				Y: numString(t.Translation.Y),
				Z: numString(t.Translation.Z),
			},
		}
	}
	return json.Marshal(dto)
}

// UnmarshalSuperposition parses JSON produced by MarshalSuperposition,
// re-validating each rotation's proper-orthogonality within tau.
func UnmarshalSuperposition(data []byte, tau float64) (*superpose.Superposition, error) {
	var dto superpositionJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, errs.New(errs.KindParse, "serial.UnmarshalSuperposition", err)
	}
	transforms := make([]geomkit.RigidTransform, len(dto.Transforms))
	for i, t := range dto.Transforms {
		var arr [9]float64
		for j, v := range t.Rotation.M {
			arr[j] = float64(v)
		}
		rot, err := geomkit.NewRotation(arr, tau)
		if err != nil {
			return nil, err
		}
		translation, err := geomkit.NewCoord(float64(t.Translation.X), float64(t.Translation.Y), float64(t.Translation.Z))
		if err != nil {
			return nil, err
		}
		transforms[i] = geomkit.RigidTransform{Rotation: rot, Translation: translation}
	}
	return superpose.NewSuperposition(transforms, dto.Root), nil
}

type alignmentCellJSON struct {
	Present  bool       `json:"present"`
	Position *string    `json:"position,omitempty"`
	Score    *numString `json:"score,omitempty"`
}

type alignmentJSON struct {
	Length     int                   `json:"length"`
	NumEntries int                   `json:"numEntries"`
	Cells      [][]alignmentCellJSON `json:"cells"` // [row][entry]
}

// MarshalAlignment renders a as JSON, one row of cells per alignment row,
// with position and score carried as strings when present.
func MarshalAlignment(a *alignment.Alignment) ([]byte, error) {
	dto := alignmentJSON{Length: a.Length(), NumEntries: a.NumEntries()}
	dto.Cells = make([][]alignmentCellJSON, a.Length())
	for row := 0; row < a.Length(); row++ {
		rowCells := make([]alignmentCellJSON, a.NumEntries())
		for entry := 0; entry < a.NumEntries(); entry++ {
			pos, ok := a.PositionOf(entry, row)
			cell := alignmentCellJSON{Present: ok}
			if ok {
				s := strconvUint32(pos)
				cell.Position = &s
				if score, sok := a.ScoreOf(entry, row); sok {
					ns := numString(score)
					cell.Score = &ns
				}
			}
			rowCells[entry] = cell
		}
		dto.Cells[row] = rowCells
	}
	return json.Marshal(dto)
}

// UnmarshalAlignment parses JSON produced by MarshalAlignment back into a
// validated Alignment.
func UnmarshalAlignment(data []byte) (*alignment.Alignment, error) {
	var dto alignmentJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, errs.New(errs.KindParse, "serial.UnmarshalAlignment", err)
	}
	a, err := alignment.NewAlignment(dto.Length, dto.NumEntries)
	if err != nil {
		return nil, err
	}
	for row, cells := range dto.Cells {
		for entry, cell := range cells {
			if !cell.Present || cell.Position == nil {
				continue
			}
			pos, err := parseUint32(*cell.Position)
			if err != nil {
				return nil, errs.New(errs.KindParse, "serial.UnmarshalAlignment", err)
			}
			a.SetPosition(row, entry, pos, true)
			if cell.Score != nil {
				a.SetScore(row, entry, float32(*cell.Score))
			}
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

type hierarchyValueJSON struct {
	IsCluster         bool `json:"isCluster"`
	ClusterGroupIndex int  `json:"clusterGroupIndex,omitempty"`
	EntryIndex        int  `json:"entryIndex,omitempty"`
}

type hierarchyGroupJSON struct {
	Values []hierarchyValueJSON `json:"values"`
}

type hierarchyLayerJSON struct {
	Groups []hierarchyGroupJSON `json:"groups"`
}

type hierarchyJSON struct {
	Layers []hierarchyLayerJSON `json:"layers"`
}

// MarshalHierarchy renders h as JSON. Hierarchy carries only structural
// integers (group/entry indices), so no field needs string encoding.
func MarshalHierarchy(h *cluster.Hierarchy) ([]byte, error) {
	dto := hierarchyJSON{Layers: make([]hierarchyLayerJSON, len(h.Layers))}
	for li, layer := range h.Layers {
		groups := make([]hierarchyGroupJSON, len(layer.Groups))
		for gi, g := range layer.Groups {
			values := make([]hierarchyValueJSON, len(g.Values))
			for vi, v := range g.Values {
				values[vi] = hierarchyValueJSON{
					IsCluster:         v.IsCluster,
					ClusterGroupIndex: v.ClusterGroupIndex,
					EntryIndex:        v.EntryIndex,
				}
			}
			groups[gi] = hierarchyGroupJSON{Values: values}
		}
		dto.Layers[li] = hierarchyLayerJSON{Groups: groups}
	}
	return json.Marshal(dto)
}

// UnmarshalHierarchy parses JSON produced by MarshalHierarchy.
func UnmarshalHierarchy(data []byte) (*cluster.Hierarchy, error) {
	var dto hierarchyJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, errs.New(errs.KindParse, "serial.UnmarshalHierarchy", err)
	}
	h := &cluster.Hierarchy{Layers: make([]cluster.Layer, len(dto.Layers))}
	for li, layer := range dto.Layers {
		groups := make([]cluster.Group, len(layer.Groups))
		for gi, g := range layer.Groups {
			values := make([]cluster.Value, len(g.Values))
			for vi, v := range g.Values {
				values[vi] = cluster.Value{
					IsCluster:         v.IsCluster,
					ClusterGroupIndex: v.ClusterGroupIndex,
					EntryIndex:        v.EntryIndex,
				}
			}
			groups[gi] = cluster.Group{Values: values}
		}
		h.Layers[li] = cluster.Layer{Groups: groups}
	}
	return h, nil
}
