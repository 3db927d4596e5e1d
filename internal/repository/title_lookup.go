package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

const learningPageExt = ".html"

// TitleLookup 根据学习页面ID取得页面标题
type TitleLookup interface {
	Title(ctx context.Context, pageID string) (string, error)
}

// HTMLTitleLookup 读取 <Dir>/<pageID>.html 的 <title>
type HTMLTitleLookup struct {
	Dir string
}

func NewHTMLTitleLookup(dir string) *HTMLTitleLookup {
	return &HTMLTitleLookup{Dir: dir}
}

// Title 页面不存在时返回 fs.ErrNotExist；没有 <title> 时返回空串
func (l *HTMLTitleLookup) Title(ctx context.Context, pageID string) (string, error) {
	f, err := os.Open(filepath.Join(l.Dir, pageID+learningPageExt))
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", err
	}
	return extractTitle(doc), nil
}

func extractTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := extractTitle(c); title != "" {
			return title
		}
	}
	return ""
}
