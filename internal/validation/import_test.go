package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindtris/uitheme/internal/theme"
)

func TestParseImport_CSS(t *testing.T) {
	imp, r := ParseImport(`
:root { --background: #fff; --foreground: #000; --primary: #0077be; --primary-foreground: #fff; }
.dark { --background: #000; --foreground: #fff; --primary: #66b2ff; --primary-foreground: #000; }
`)
	require.True(t, r.IsValid, r.Error)
	require.Equal(t, theme.ImportCSS, imp.Kind)
	require.Nil(t, imp.Artifact)
	require.Equal(t, "#0077be", imp.Styles.Light[theme.VarPrimary])
	require.Equal(t, "#66b2ff", imp.Styles.Dark[theme.VarPrimary])
}

func TestParseImport_CSSMissingRequired(t *testing.T) {
	_, r := ParseImport(`:root { --background: #fff; }`)
	require.False(t, r.IsValid)
	require.Contains(t, r.Error, "foreground")
}

func TestParseImport_CSSWithoutRoot(t *testing.T) {
	_, r := ParseImport(`.dark { --background: #000; }`)
	require.False(t, r.IsValid)
	require.Contains(t, r.Error, ":root")
}

func TestParseImport_Artifact(t *testing.T) {
	imp, r := ParseImport(`  {"version":1,"name":"Ocean","base":{"type":"preset","value":"blue"},"overrides":{}}`)
	require.True(t, r.IsValid, r.Error)
	require.Equal(t, theme.ImportArtifact, imp.Kind)
	require.Equal(t, "blue", imp.Artifact.Base.Value)
}

func TestParseImport_BadArtifact(t *testing.T) {
	_, r := ParseImport(`{"version":2,"name":"Ocean","base":{"type":"preset","value":"blue"},"overrides":{}}`)
	require.False(t, r.IsValid)
	require.Contains(t, r.Error, "version")
}

func TestParseImport_Empty(t *testing.T) {
	_, r := ParseImport("   ")
	require.False(t, r.IsValid)
}
