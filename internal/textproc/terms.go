// Package textproc turns fetched pages into term counts for the index.
package textproc

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// contentRootID is the element wiki pages keep their article body in.
const contentRootID = "mw-content-text"

// skipped elements never contribute text.
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Normalize maps a query term to its indexed form by the same rule Tokenize
// applies to page text. It fails unless term holds exactly one token.
func Normalize(term string) (string, error) {
	tokens := Tokenize(term)
	switch len(tokens) {
	case 1:
		return tokens[0], nil
	case 0:
		return "", errors.New("empty term")
	default:
		return "", fmt.Errorf("%q is %d terms, not one", term, len(tokens))
	}
}

// Tokenize splits text into normalized terms: maximal runs of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CountTerms parses an HTML page and counts every term of its visible text.
// Only the article body is counted when the page has one, otherwise <body>.
func CountTerms(r io.Reader) (map[string]int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := findByID(doc, contentRootID)
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		root = doc
	}

	counts := make(map[string]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			for _, term := range Tokenize(n.Data) {
				counts[term]++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return counts, nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
