package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainStripsEmphasis(t *testing.T) {
	out := Plain("the **unit economics** are _questionable_ at `$12 CAC`")
	require.Equal(t, "the unit economics are questionable at $12 CAC", out)
}

func TestPlainBulletList(t *testing.T) {
	out := Plain("key risks:\n\n- churn\n- no moat\n- crowded market")
	require.Equal(t, "key risks:\n\n  • churn\n  • no moat\n  • crowded market", out)
}

func TestPlainHeadingAndParagraphs(t *testing.T) {
	out := Plain("## Verdict\n\nfirst paragraph\n\nsecond paragraph")
	parts := strings.Split(out, "\n\n")
	require.Len(t, parts, 3)
	require.Equal(t, "Verdict", parts[0])
}

func TestPlainCodeBlock(t *testing.T) {
	out := Plain("run this:\n\n```\ncurl /health\n```")
	require.Contains(t, out, "curl /health")
}

func TestRenderKeepsBulletStructure(t *testing.T) {
	out := Render("- alpha\n- beta")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "alpha")
	require.Contains(t, lines[1], "beta")
}

func TestPlainSoftLineBreak(t *testing.T) {
	out := Plain("line one\nline two")
	require.Equal(t, "line one\nline two", out)
}

func TestEmptyInput(t *testing.T) {
	require.Equal(t, "", Plain(""))
	require.Equal(t, "", Render("   "))
}
