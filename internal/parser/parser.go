
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	ModeBasic   = "basic"
	ModeArticle = "article"
)

// boilerplate is removed before text is collected in basic mode.
const boilerplate = "script,style,noscript,header,footer,nav,aside"

type Document struct {
	Title string
	Lang  string
	Text  string
}

type Parser struct {
	mode string
}

func New(mode string) (*Parser, error) {
	switch mode {
	case "":
		mode = ModeBasic
	case ModeBasic, ModeArticle:
	default:
		return nil, fmt.Errorf("unknown extract mode %q", mode)
	}
	return &Parser{mode: mode}, nil
}

func (p *Parser) Mode() string { return p.mode }

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extract decodes r to UTF-8 and returns the visible text of the page.
// pageURL is only used by article mode to resolve relative links and may be nil.
func (p *Parser) Extract(r io.Reader, contentType string, pageURL *url.URL) (Document, error) {
	data, err := decode(r, contentType)
	if err != nil {
		return Document{}, err
	}

	if p.mode == ModeArticle {
		if d, err := articleText(data, pageURL); err == nil && d.Text != "" {
			return d, nil
		}
		// fall through to basic extraction
	}
	return basicText(data)
}

func decode(r io.Reader, contentType string) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// already utf-8, keep going
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("error decoding body: %w", err)
		}
		utf8data = data
	}
	return utf8data, nil
}

func basicText(data []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("error parsing html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	lang := strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))

	doc.Find(boilerplate).Remove()
	// the title lives in <head>; keep it out of the body text
	doc.Find("head").Remove()

	return Document{
		Title: title,
		Lang:  lang,
		Text:  joinText(doc.Nodes...),
	}, nil
}

func articleText(data []byte, pageURL *url.URL) (Document, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(data), pageURL)
	if err != nil {
		return Document{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return Document{}, err
	}
	if doc.Length() == 0 {
		return Document{}, errors.New("no article content")
	}

	lang := ""
	if src, err := goquery.NewDocumentFromReader(bytes.NewReader(data)); err == nil {
		lang = strings.TrimSpace(src.Find("html").AttrOr("lang", ""))
	}
	return Document{
		Title: strings.TrimSpace(article.Title),
		Lang:  lang,
		Text:  joinText(doc.Nodes...),
	}, nil
}

// joinText concatenates every text node under roots with single spaces, so
// adjacent block elements never run their words together.
func joinText(roots ...*html.Node) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range roots {
		walk(n)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
}
