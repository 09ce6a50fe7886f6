package dataprocessing

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tradelens/pkg/contracts/domain"
)

// ReadHTMLRows tokenizes every table row of an HTML export in document order.
// Rows whose cells are all hidden are dropped so they never read as blank.
func ReadHTMLRows(r io.Reader) ([]domain.Row, error) {
	decoded, err := decodeHTML(r)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var rows []domain.Row
	collectRows(doc, &rows)
	return rows, nil
}

// decodeHTML converts the input to UTF-8. Broker terminals write UTF-16 with a
// byte order mark; other exports declare their charset in a meta tag.
func decodeHTML(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading HTML: %w", err)
	}

	enc, _, _ := charset.DetermineEncoding(data, "text/html")
	decoder := unicode.BOMOverride(enc.NewDecoder())
	return transform.NewReader(bytes.NewReader(data), decoder), nil
}

func collectRows(n *html.Node, rows *[]domain.Row) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head":
			return
		case "tr":
			if row := parseHTMLRow(n); !whollyHidden(row) {
				*rows = append(*rows, row)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectRows(c, rows)
	}
}

func parseHTMLRow(tr *html.Node) domain.Row {
	rowHidden := isHiddenNode(tr)

	row := domain.Row{}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		isHeading := c.Data == "th"
		row = append(row, domain.RawCell{
			Text:       cellText(c),
			Colspan:    attr(c, "colspan"),
			Hidden:     rowHidden || isHiddenNode(c),
			Emphasized: isHeading || hasEmphasis(c),
			Heading:    isHeading,
		})
	}
	return row
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// isHiddenNode reports the hidden attribute, a "hidden" class token or an
// inline display:none.
func isHiddenNode(n *html.Node) bool {
	if hasAttr(n, "hidden") {
		return true
	}
	for _, class := range strings.Fields(attr(n, "class")) {
		if class == "hidden" {
			return true
		}
	}
	style := strings.ToLower(strings.ReplaceAll(attr(n, "style"), " ", ""))
	return strings.Contains(style, "display:none")
}

// whollyHidden reports a non-empty row in which no cell is visible.
func whollyHidden(row domain.Row) bool {
	if len(row) == 0 {
		return false
	}
	for _, c := range row {
		if !c.Hidden {
			return false
		}
	}
	return true
}

func hasEmphasis(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == "b" || c.Data == "strong" {
			return true
		}
		if c.Data != "table" && hasEmphasis(c) {
			return true
		}
	}
	return false
}

// cellText concatenates the text nodes below a cell. Non-breaking spaces
// become plain spaces so thousands separators match the totals pattern.
func cellText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteByte(' ')
		case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.ReplaceAll(b.String(), "\u00a0", " ")
}
