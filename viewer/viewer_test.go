package viewer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cath-tools/strucore/alignment"
	"github.com/cath-tools/strucore/residue"
	"github.com/cath-tools/strucore/viewer"
)

func TestNewBackendAllKinds(t *testing.T) {
	for _, k := range []viewer.Kind{viewer.PyMOL, viewer.Chimera, viewer.Jmol, viewer.RasMol} {
		b, err := viewer.NewBackend(k)
		require.NoError(t, err)
		require.NotNil(t, b)
	}
}

func TestNewBackendRejectsUnknownKind(t *testing.T) {
	_, err := viewer.NewBackend(viewer.Kind(99))
	require.Error(t, err)
}

func TestBackendEmitsFullScript(t *testing.T) {
	a, err := alignment.NewAlignment(2, 2)
	require.NoError(t, err)

	for _, k := range []viewer.Kind{viewer.PyMOL, viewer.Chimera, viewer.Jmol, viewer.RasMol} {
		b, err := viewer.NewBackend(k)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, b.EmitHeader(&buf))
		require.NoError(t, b.EmitLoad(&buf, 0, "a.pdb"))
		require.NoError(t, b.EmitLoad(&buf, 1, "b.pdb"))
		require.NoError(t, b.EmitColourBase(&buf, "grey"))
		require.NoError(t, b.EmitColourPdb(&buf, 0, "red"))
		require.NoError(t, b.EmitColourResidues(&buf, 0, []residue.ID{{Chain: "A", Number: 5}, {Chain: "A", Number: 6}}, "blue"))
		require.NoError(t, b.EmitAlignmentExtras(&buf, []string{"a", "b"}, a))
		require.NoError(t, b.EmitFooter(&buf))

		require.NotEmpty(t, buf.String())
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "pymol", viewer.PyMOL.String())
	require.Equal(t, "chimera", viewer.Chimera.String())
	require.Equal(t, "jmol", viewer.Jmol.String())
	require.Equal(t, "rasmol", viewer.RasMol.String())
}
