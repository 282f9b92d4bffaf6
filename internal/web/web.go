package web

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"
	"time"

	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/content"
)

//go:embed templates/*.html templates/*.tmpl assets/*.js
var files embed.FS

// Site 模板用的站点信息
type Site struct {
	URL         string
	Title       string
	Description string
	Language    string
}

// Engine 页面渲染引擎。模板在启动时编译一次
type Engine struct {
	pages   map[string]*htmltemplate.Template
	rss     *texttemplate.Template
	sitemap *texttemplate.Template
	script  htmltemplate.JS
	site    Site
}

// NewEngine 编译全部模板并加载内嵌脚本
func NewEngine(cfg *config.SiteConfig) (*Engine, error) {
	site := Site{
		URL:         "https://blog.sudharsana.dev",
		Title:       "Sudharsana's Tech Blog",
		Language:    "en-us",
	}
	if cfg != nil {
		if cfg.URL != "" {
			site.URL = cfg.URL
		}
		if cfg.Title != "" {
			site.Title = cfg.Title
		}
		site.Description = cfg.Description
		if cfg.Language != "" {
			site.Language = cfg.Language
		}
	}

	funcs := htmltemplate.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}

	pages := make(map[string]*htmltemplate.Template)
	for _, name := range []string{"home", "post", "tag"} {
		tmpl, err := htmltemplate.New("layout.html").Funcs(funcs).
			ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	xmlFuncs := texttemplate.FuncMap{
		"xmlEscape": xmlEscape,
		"rfc1123":   func(t time.Time) string { return t.Format(time.RFC1123Z) },
		"isoDate":   func(t time.Time) string { return t.Format("2006-01-02") },
	}
	rss, err := texttemplate.New("rss.xml.tmpl").Funcs(xmlFuncs).ParseFS(files, "templates/rss.xml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse rss template: %w", err)
	}
	sitemap, err := texttemplate.New("sitemap.xml.tmpl").Funcs(xmlFuncs).ParseFS(files, "templates/sitemap.xml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse sitemap template: %w", err)
	}

	script, err := files.ReadFile("assets/blog.js")
	if err != nil {
		return nil, fmt.Errorf("read client script: %w", err)
	}

	return &Engine{
		pages:   pages,
		rss:     rss,
		sitemap: sitemap,
		script:  htmltemplate.JS(script),
		site:    site,
	}, nil
}

// xmlEscape XML 文本转义
func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}

// HomeData 首页数据
type HomeData struct {
	Site  Site
	Posts []content.Post
	Tags  map[string]int
}

// PostData 文章页数据
type PostData struct {
	Site         Site
	Post         content.Post
	HTML         htmltemplate.HTML
	LikeCount    int64
	CommentCount int64
	Summary      string
	Script       htmltemplate.JS
}

// TagData 标签页数据
type TagData struct {
	Site  Site
	Tag   string
	Posts []content.Post
}

// Site 返回站点信息
func (e *Engine) Site() Site {
	return e.site
}

// RenderHome 渲染首页
func (e *Engine) RenderHome(w io.Writer, posts []content.Post, tags map[string]int) error {
	return e.pages["home"].Execute(w, HomeData{Site: e.site, Posts: posts, Tags: tags})
}

// RenderPost 渲染文章页
func (e *Engine) RenderPost(w io.Writer, data PostData) error {
	data.Site = e.site
	data.Script = e.script
	return e.pages["post"].Execute(w, data)
}

// RenderTag 渲染标签页
func (e *Engine) RenderTag(w io.Writer, tag string, posts []content.Post) error {
	return e.pages["tag"].Execute(w, TagData{Site: e.site, Tag: tag, Posts: posts})
}

// FeedData RSS 数据
type FeedData struct {
	Site      Site
	Posts     []content.Post
	BuildDate time.Time
}

// RenderRSS 渲染 RSS 订阅源
func (e *Engine) RenderRSS(w io.Writer, posts []content.Post) error {
	return e.rss.Execute(w, FeedData{Site: e.site, Posts: posts, BuildDate: time.Now().UTC()})
}

// SitemapData 站点地图数据
type SitemapData struct {
	Site  Site
	Posts []content.Post
	Tags  map[string]int
}

// RenderSitemap 渲染站点地图
func (e *Engine) RenderSitemap(w io.Writer, posts []content.Post, tags map[string]int) error {
	return e.sitemap.Execute(w, SitemapData{Site: e.site, Posts: posts, Tags: tags})
}
