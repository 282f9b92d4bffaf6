package markdown

import (
	"strings"
	"testing"
)

func TestRenderDeterministic(t *testing.T) {
	r := New()
	input := "# Title\n\nSome *emphasis* and `inline code`.\n\n```go\nfmt.Println(\"hi\")\n```\n\n![diagram](/img/d.png)\n"

	first, err := r.Render(input)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if first == "" {
		t.Fatal("render produced empty output")
	}
	second, err := r.Render(input)
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if first != second {
		t.Fatal("rendering the same input twice should produce identical HTML")
	}
}

func TestRenderEscapesFencedCode(t *testing.T) {
	r := New()
	out, err := r.Render("```go\nif a < b && c > d {\n}\n```\n")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, `<pre><code class="language-go">`) {
		t.Fatalf("fenced block should carry the language class, got: %s", out)
	}
	if !strings.Contains(out, "if a &lt; b &amp;&amp; c &gt; d {") {
		t.Fatalf("code body should be HTML-escaped, got: %s", out)
	}
	if strings.Contains(out, "if a < b") {
		t.Fatalf("raw code body leaked into the output: %s", out)
	}
	if !strings.Contains(out, "</code></pre>") {
		t.Fatalf("fenced block should be closed, got: %s", out)
	}
}

func TestRenderFencedCodeWithoutLanguage(t *testing.T) {
	r := New()
	out, err := r.Render("```\nplain text\n```\n")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "<pre><code>") {
		t.Fatalf("bare fence should render without a language class, got: %s", out)
	}
}

func TestRenderLazyImages(t *testing.T) {
	r := New()
	out, err := r.Render(`![alt text](/img/pic.png "hover")`)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{
		`class="post-img fade-in"`,
		`loading="lazy"`,
		`decoding="async"`,
		`src="/img/pic.png"`,
		`alt="alt text"`,
		`title="hover"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("image output missing %s, got: %s", want, out)
		}
	}

	// 无 title 时不输出空属性
	out, err = r.Render(`![alt only](/img/pic.png)`)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(out, "title=") {
		t.Fatalf("image without a title should not emit one, got: %s", out)
	}
}
