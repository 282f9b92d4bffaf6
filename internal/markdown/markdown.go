package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer markdown 渲染器封装。文章内容视为作者可信输入，
// 代码块内文本会转义，其余 HTML 原样输出
type Renderer struct {
	md goldmark.Markdown
}

// New 创建 markdown 渲染器
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newBlogNodeRenderer(), 200),
			),
		),
	)
	return &Renderer{md: md}
}

// Render 将 markdown 渲染为 HTML，相同输入保证输出一致
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// blogNodeRenderer 定制代码块与图片的输出
type blogNodeRenderer struct{}

func newBlogNodeRenderer() renderer.NodeRenderer {
	return &blogNodeRenderer{}
}

// RegisterFuncs 注册节点渲染函数
func (r *blogNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindImage, r.renderImage)
}

// renderFencedCodeBlock 转义后包裹 <pre><code class="language-X">
func (r *blogNodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}

	language := n.Language(source)
	if len(language) > 0 {
		_, _ = fmt.Fprintf(w, `<pre><code class="language-%s">`, util.EscapeHTML(language))
	} else {
		_, _ = w.WriteString("<pre><code>")
	}

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	return ast.WalkContinue, nil
}

// renderImage 输出懒加载图片，保留 alt/title，加载完成后淡入
func (r *blogNodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	_, _ = w.WriteString(`<img class="post-img fade-in" loading="lazy" decoding="async" src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(textOf(n, source)))
	_, _ = w.WriteString(`"`)
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(` onload="this.classList.add('loaded')" />`)
	return ast.WalkSkipChildren, nil
}

// textOf 收集节点下的纯文本（图片的 alt 来自其子节点）
func textOf(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.Write(textOf(c, source))
	}
	return buf.Bytes()
}
