package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ParseError reports markup the HTML parser could not structure at all.
// The parser degrades gracefully on almost anything, so this is rare.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse html: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// nonContent elements are excluded from text extraction, subtree included.
var nonContent = map[string]bool{
	"script": true,
	"style":  true,
}

// ExtractLinks returns the href target of every anchor in the document,
// resolved against baseURL into an absolute URL. The result is deduplicated
// and keeps first-discovery order, so a fixed document always yields the
// same slice. Anchors without an href and hrefs that fail to parse are
// skipped; this is a best-effort pass over a single document.
func ExtractLinks(htmlContent, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var links []string
	seen := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := findAttr(n, "href"); ok {
				if abs, ok := resolve(base, href); ok && !seen[abs] {
					seen[abs] = true
					links = append(links, abs)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// ExtractText linearizes the document's text content: script and style
// subtrees are dropped, every remaining text node becomes one line, and the
// overall result is trimmed. Whitespace within a line is left as-is.
func ExtractText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", &ParseError{Err: err}
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && nonContent[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String()), nil
}

// ExtractContent runs trafilatura's main-content extraction instead of the
// raw linearization. Boilerplate (navigation, footers) is stripped along
// with scripts and styles; an empty result means no main content was found.
func ExtractContent(htmlContent string) (string, error) {
	result, err := trafilatura.Extract(strings.NewReader(htmlContent), trafilatura.Options{})
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	return strings.TrimSpace(result.ContentText), nil
}

func findAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
