package panelmd

import (
	"strings"
	"testing"
)

func expect(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlainText(t *testing.T) {
	expect(t, Render("Hello world"), "Hello world")
}

func TestBold(t *testing.T) {
	expect(t, Render("Hello **world**"), "Hello <b>world</b>")
}

func TestItalic(t *testing.T) {
	expect(t, Render("Hello *world*"), "Hello <i>world</i>")
}

func TestStrikethrough(t *testing.T) {
	expect(t, Render("~~gone~~"), "<s>gone</s>")
}

func TestInlineCode(t *testing.T) {
	expect(t, Render("run `go vet` first"), "run <code>go vet</code> first")
}

func TestHeadingBecomesBold(t *testing.T) {
	expect(t, Render("# Login Screen"), "<b>Login Screen</b>")
}

func TestHeadingThenParagraph(t *testing.T) {
	got := Render("## Usage\n\nDrop it on the canvas.")
	expect(t, got, "<b>Usage</b><br><br>Drop it on the canvas.")
}

func TestParagraphSeparation(t *testing.T) {
	got := Render("First.\n\nSecond.")
	expect(t, got, "First.<br><br>Second.")
}

func TestSoftLineBreak(t *testing.T) {
	got := Render("line one\nline two")
	expect(t, got, "line one<br>line two")
}

func TestLink(t *testing.T) {
	got := Render("[Figma](https://figma.com)")
	expect(t, got, `<a href="https://figma.com">Figma</a>`)
}

func TestAutoLink(t *testing.T) {
	got := Render("see https://figma.com for more")
	expect(t, got, `see <a href="https://figma.com">https://figma.com</a> for more`)
}

func TestImageBecomesLink(t *testing.T) {
	got := Render("![cover](https://example.com/cover.png)")
	expect(t, got, `<a href="https://example.com/cover.png">cover</a>`)
}

func TestImageWithoutAltUsesURL(t *testing.T) {
	got := Render("![](https://example.com/x.png)")
	expect(t, got, `<a href="https://example.com/x.png">https://example.com/x.png</a>`)
}

func TestEscapesAngleBrackets(t *testing.T) {
	got := Render("use <div> & \"quotes\"")
	expect(t, got, "use &lt;div&gt; &amp; &quot;quotes&quot;")
}

func TestRawHTMLIsEscaped(t *testing.T) {
	got := Render("before <script>alert(1)</script> after")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML leaked through: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag, got: %s", got)
	}
}

func TestFencedCodeBlock(t *testing.T) {
	got := Render("```\nconst a = 1;\n```")
	expect(t, got, "<pre>const a = 1;\n</pre>")
}

func TestCodeBlockEscapes(t *testing.T) {
	got := Render("```\nif a < b && b > c {}\n```")
	expect(t, got, "<pre>if a &lt; b &amp;&amp; b &gt; c {}\n</pre>")
}

func TestUnorderedList(t *testing.T) {
	got := Render("- one\n- two")
	expect(t, got, "• one<br>• two")
}

func TestOrderedList(t *testing.T) {
	got := Render("1. first\n2. second")
	expect(t, got, "1. first<br>2. second")
}

func TestOrderedListCustomStart(t *testing.T) {
	got := Render("3. third\n4. fourth")
	expect(t, got, "3. third<br>4. fourth")
}

func TestNestedList(t *testing.T) {
	got := Render("- outer\n  - inner")
	expect(t, got, "• outer<br>&nbsp;&nbsp;• inner")
}

func TestTaskList(t *testing.T) {
	got := Render("- [x] done\n- [ ] todo")
	expect(t, got, "• ✅ done<br>• ☐ todo")
}

func TestBlockquote(t *testing.T) {
	got := Render("> quoted text")
	expect(t, got, "<blockquote>quoted text</blockquote>")
}

func TestThematicBreak(t *testing.T) {
	got := Render("above\n\n---\n\nbelow")
	expect(t, got, "above<br><br>──────────<br><br>below")
}

func TestTableBecomesListBlocks(t *testing.T) {
	src := "| Name | Kind |\n| --- | --- |\n| Login | screen |\n| Button | component |"
	got := Render(src)
	want := "<b>1.</b><br>" +
		"• <b>Name</b>: Login<br>" +
		"• <b>Kind</b>: screen<br>" +
		"<br>" +
		"<b>2.</b><br>" +
		"• <b>Name</b>: Button<br>" +
		"• <b>Kind</b>: component"
	expect(t, got, want)
}

func TestSummaryCard(t *testing.T) {
	src := "**Login Screen** with email and password fields.\nSee [the file](https://figma.com/file/abc)."
	got := Render(src)
	want := `<b>Login Screen</b> with email and password fields.<br>See <a href="https://figma.com/file/abc">the file</a>.`
	expect(t, got, want)
}

func TestEmptyInput(t *testing.T) {
	expect(t, Render(""), "")
}
