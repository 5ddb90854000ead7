package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTargets_SingleConcrete(t *testing.T) {
	o := classifyTargets("net8.0", "")
	require.Equal(t, targetSingle, o.kind)
	require.Equal(t, "net8.0", o.selected)
}

func TestClassifyTargets_NoneDeclared(t *testing.T) {
	o := classifyTargets("", "")
	require.Equal(t, targetNone, o.kind)
	require.Empty(t, o.selected)
}

func TestClassifyTargets_MultiPicksFirstConcrete(t *testing.T) {
	// net472 is undotted and does not qualify; net8.0 is the first concrete
	// candidate.
	o := classifyTargets("", "net472;net8.0")
	require.Equal(t, targetMulti, o.kind)
	require.Equal(t, "net8.0", o.selected)
	require.Equal(t, []string{"net472", "net8.0"}, o.declared)
}

func TestClassifyTargets_StandardMonikersQualify(t *testing.T) {
	for _, tfm := range []string{"net8.0", "netstandard2.0", "netcoreapp3.1", "net6.0-windows"} {
		o := classifyTargets("", tfm)
		require.Equal(t, targetMulti, o.kind, tfm)
		require.Equal(t, tfm, o.selected, tfm)
	}
}

func TestClassifyTargets_Unselectable(t *testing.T) {
	o := classifyTargets("", "net472;$(ExtraTfms)")
	require.Equal(t, targetUnselectable, o.kind)
}

func TestClassifyTargets_ListWhitespaceAndEmpties(t *testing.T) {
	o := classifyTargets("", " net472 ; net8.0 ;; ")
	require.Equal(t, targetMulti, o.kind)
	require.Equal(t, "net8.0", o.selected)
}

func TestSplitFrameworks(t *testing.T) {
	require.Nil(t, splitFrameworks(""))
	require.Equal(t, []string{"a", "b"}, splitFrameworks("a;b"))
}
