package engine_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docweave/pkg/ast"
	"github.com/arthur-debert/docweave/pkg/render/engine"
)

func TestCleanup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \n\n\t\n", ""},
		{"collapse runs", "a\n\n\n\nb", "a\n\nb"},
		{"keep single blank", "a\n\nb", "a\n\nb"},
		{"trailing", "a\n\n  \n", "a"},
		{"leading blank lines", "\n\n\na", "a"},
		{"indent kept", "    code\n", "    code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := engine.Cleanup(tt.in)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, engine.Cleanup(once), "cleanup must be idempotent")
		})
	}
}

func TestPrefixLines(t *testing.T) {
	assert.Equal(t, "> a\n>\n> b", engine.PrefixLines("a\n\nb", "> ", ">"))
	assert.Equal(t, "  a\n\n  b", engine.IndentLines("a\n\nb", "  "))
	assert.Equal(t, "", engine.PrefixLines("", "> ", ">"))
}

func TestStateCapture(t *testing.T) {
	st := engine.NewState(4, engine.Limits{})
	st.WriteString("outer ")
	inner := st.Capture(func() {
		st.WriteString("inner")
		nested := st.Capture(func() { st.WriteString("deep") })
		st.WriteString("[" + nested + "]")
	})
	st.WriteString("end")
	st.Printf(" %d", 2)

	assert.Equal(t, "inner[deep]", inner)
	assert.Equal(t, "outer end 2", st.Output())
}

func TestStateIndent(t *testing.T) {
	st := engine.NewState(2, engine.Limits{})
	assert.Equal(t, "", st.CurrentIndent())
	st.PushIndent()
	st.PushIndent()
	assert.Equal(t, 2, st.IndentLevel())
	assert.Equal(t, "    ", st.CurrentIndent())
	st.PopIndent()
	st.PopIndent()
	st.PopIndent()
	assert.Equal(t, 0, st.IndentLevel())
}

func TestStateListMarkers(t *testing.T) {
	st := engine.NewState(4, engine.Limits{})
	assert.False(t, st.InList())
	assert.Equal(t, "", st.NextMarker())

	st.PushList(false, 0, "*")
	st.SetListTight(true)
	assert.True(t, st.ListTight())
	assert.Equal(t, "* ", st.NextMarker())
	assert.Equal(t, "* ", st.NextMarker())

	st.PushList(true, 3, "")
	assert.Equal(t, 2, st.ListDepth())
	assert.True(t, st.ListOrdered())
	assert.Equal(t, "3. ", st.NextMarker())
	assert.Equal(t, "4. ", st.NextMarker())
	assert.Equal(t, []bool{false, true}, st.ListPath())

	st.PopList()
	assert.True(t, st.ListTight())
	assert.Equal(t, "* ", st.NextMarker())
	st.PopList()
	st.PopList()
	assert.False(t, st.InList())
}

func TestStateDepthLimit(t *testing.T) {
	st := engine.NewState(0, engine.Limits{MaxDepth: 2})
	p := &ast.Paragraph{}

	require.True(t, st.Enter(p))
	require.True(t, st.Enter(p))
	assert.False(t, st.Enter(p))
	assert.Equal(t, 2, st.Depth())
	assert.True(t, st.Report.Has(engine.DiagDepthLimit))

	st.Leave()
	st.Leave()
	st.Leave()
	assert.Equal(t, 0, st.Depth())
}

func TestGrid(t *testing.T) {
	t.Run("pads and truncates", func(t *testing.T) {
		report := &engine.Report{}
		g := engine.NewGrid([]string{"A", "B"}, [][]string{{"1"}, {"1", "2", "3"}, {"x", "yy"}}, 0, report)

		assert.Equal(t, 2, g.Columns)
		assert.Equal(t, []string{"1", ""}, g.Rows[0])
		assert.Equal(t, []string{"1", "2"}, g.Rows[1])
		assert.Equal(t, []int{1, 2}, g.Widths())
		assert.Len(t, report.Filter(engine.DiagTableShape), 2)
	})

	t.Run("first row without header", func(t *testing.T) {
		g := engine.NewGrid(nil, [][]string{{"a", "b", "c"}, {"d"}}, 0, nil)
		assert.Equal(t, 3, g.Columns)
		assert.Nil(t, g.Header)
		assert.Equal(t, []string{"d", "", ""}, g.Rows[1])
	})

	t.Run("wide runes", func(t *testing.T) {
		g := engine.NewGrid([]string{"名前"}, [][]string{{"ab"}}, 0, nil)
		assert.Equal(t, []int{4}, g.Widths())
	})
}

func TestPad(t *testing.T) {
	tests := []struct {
		align ast.Alignment
		want  string
	}{
		{ast.AlignNone, "ab   "},
		{ast.AlignLeft, "ab   "},
		{ast.AlignRight, "   ab"},
		{ast.AlignCenter, " ab  "},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Pad("ab", 5, tt.align))
		})
	}
	assert.Equal(t, "toolong", engine.Pad("toolong", 3, ast.AlignLeft))
}

func TestNormalizeAlignments(t *testing.T) {
	got := engine.NormalizeAlignments([]ast.Alignment{ast.AlignRight, ast.AlignNone, ast.AlignCenter}, 2, ast.AlignLeft)
	assert.Equal(t, []ast.Alignment{ast.AlignRight, ast.AlignLeft}, got)

	got = engine.NormalizeAlignments(nil, 3, ast.AlignNone)
	assert.Equal(t, []ast.Alignment{ast.AlignNone, ast.AlignNone, ast.AlignNone}, got)
}

func TestFence(t *testing.T) {
	assert.Equal(t, "```", engine.Fence("plain", '`', 3))
	assert.Equal(t, "````", engine.Fence("has ``` inside", '`', 3))
	assert.Equal(t, "~~~~~", engine.Fence("x", '~', 5))
	assert.Equal(t, "```", engine.Fence("x", '#', 0))
	assert.Equal(t, 4, engine.LongestRun("a````b``", '`'))
}

func TestEscapeChars(t *testing.T) {
	assert.Equal(t, `\*a\_b\*`, engine.EscapeChars("*a_b*", "*_"))
	assert.Equal(t, "plain", engine.EscapeChars("plain", "*_"))
}

func TestJoinBlocks(t *testing.T) {
	assert.Equal(t, "a\n\nb", engine.JoinBlocks([]string{"a\n", "", "  ", "b"}, "\n\n"))
	assert.Equal(t, "", engine.JoinBlocks(nil, "\n"))
}

func TestResolveMath(t *testing.T) {
	reps := map[ast.Notation]string{ast.NotationMathML: "<math/>"}

	got, n := engine.ResolveMath([]ast.Notation{ast.NotationMathML}, "x^2", ast.NotationLaTeX, reps)
	assert.Equal(t, "<math/>", got)
	assert.Equal(t, ast.NotationMathML, n)

	got, n = engine.ResolveMath([]ast.Notation{ast.NotationLaTeX}, "x^2", "", reps)
	assert.Equal(t, "x^2", got)
	assert.Equal(t, ast.NotationLaTeX, n)

	got, n = engine.ResolveMath([]ast.Notation{ast.NotationHTML}, "x^2", ast.NotationLaTeX, reps)
	assert.Equal(t, "x^2", got, "falls back to own content")
	assert.Equal(t, ast.NotationLaTeX, n)

	got, n = engine.ResolveMath([]ast.Notation{ast.NotationHTML}, "", ast.NotationLaTeX, reps)
	assert.Equal(t, "<math/>", got)
	assert.Equal(t, ast.NotationMathML, n)
}

func TestReport(t *testing.T) {
	var nilReport *engine.Report
	assert.Equal(t, 0, nilReport.Len())
	assert.False(t, nilReport.Has(engine.DiagDropped))

	r := &engine.Report{}
	r.Add(engine.DiagDropped, ast.KindHTMLBlock, "dropped %d bytes", 12)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "dropped [html_block]: dropped 12 bytes", r.Diagnostics[0].String())
}

type stringRenderer struct{ out string }

func (s stringRenderer) Render(*ast.Document) (string, error) { return s.out, nil }

func (s stringRenderer) RenderTo(w io.Writer, doc *ast.Document) error {
	return engine.RenderTo(s, w, doc)
}

func TestRenderToWrites(t *testing.T) {
	var buf bytes.Buffer
	r := stringRenderer{out: "hello"}
	require.NoError(t, r.RenderTo(&buf, &ast.Document{}))
	assert.Equal(t, "hello", buf.String())
}
