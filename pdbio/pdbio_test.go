package pdbio_test

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/geomkit"
	"github.com/cath-tools/strucore/pdbio"
	"github.com/cath-tools/strucore/residue"
)

const samplePDB = `ATOM      1  N   ALA A   1      11.104  13.207   2.042  1.00 20.00           N
ATOM      2  CA  ALA A   1      12.560  13.207   2.042  1.00 20.00           C
ATOM      3  CB  ALA A   1      13.100  14.600   2.300  1.00 20.00           C
TER
ATOM      4  N   GLY A   2      15.000  13.000   2.000  1.00 20.00           N
ATOM      5  CA  GLY A   2      16.000  13.000   2.000  1.00 20.00           C
END
`

func TestPDBStreamParsesResidues(t *testing.T) {
	stream := pdbio.NewPDBStream("sample", strings.NewReader(samplePDB), 0)
	list, err := stream.Residues()
	require.NoError(t, err)

	var nonNull int
	var sawBreak bool
	for _, r := range list {
		if r.Null {
			sawBreak = true
			continue
		}
		nonNull++
	}
	require.Equal(t, 2, nonNull)
	require.True(t, sawBreak)
}

func TestPDBStreamReadsAtomFields(t *testing.T) {
	stream := pdbio.NewPDBStream("sample", strings.NewReader(samplePDB), 0)
	list, err := stream.Residues()
	require.NoError(t, err)

	var first residue.Residue
	for _, r := range list {
		if !r.Null {
			first = r
			break
		}
	}
	require.Equal(t, "A", first.ID.Chain)
	require.Equal(t, int32(1), first.ID.Number)
	require.NotNil(t, first.CB)
	require.InDelta(t, 12.560, first.CA.X, 1e-6)
}

func TestOpenCompressedDetectsGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(samplePDB))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	r, err := pdbio.OpenCompressed(&buf)
	require.NoError(t, err)

	stream := pdbio.NewPDBStream("gz-sample", r, 0)
	list, err := stream.Residues()
	require.NoError(t, err)
	require.NotEmpty(t, list)
}

func TestOpenCompressedPassesThroughPlainText(t *testing.T) {
	r, err := pdbio.OpenCompressed(strings.NewReader(samplePDB))
	require.NoError(t, err)
	stream := pdbio.NewPDBStream("plain", r, 0)
	list, err := stream.Residues()
	require.NoError(t, err)
	require.NotEmpty(t, list)
}

func TestWriteSuperposedRoundTrip(t *testing.T) {
	stream := pdbio.NewPDBStream("sample", strings.NewReader(samplePDB), 0)
	list, err := stream.Residues()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = pdbio.WriteSuperposed(&buf, list, geomkit.IdentityTransform())
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "ATOM")
	require.Contains(t, out, "TER")
	require.Contains(t, out, "END")
}

func TestNewSliceStream(t *testing.T) {
	list := residue.List{{Null: true}}
	s := pdbio.NewSliceStream("s", list)
	require.Equal(t, "s", s.Name())
	got, err := s.Residues()
	require.NoError(t, err)
	require.Equal(t, list, got)
}
