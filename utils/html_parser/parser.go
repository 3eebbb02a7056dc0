package html_parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// noiseSelector lists page chrome removed before paragraphs are collected.
const noiseSelector = "script, style, nav, footer, header"

var strictPolicy = bluemonday.StrictPolicy()

// NewUTF8Reader converts r to UTF-8 according to the Content-Type header and any <meta charset>.
func NewUTF8Reader(r io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(r, contentType)
}

// ExtractParagraphs returns the trimmed text of every <p> whose length in
// characters exceeds minLength, in document order.
func ExtractParagraphs(r io.Reader, minLength int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return paragraphsFromDocument(doc, minLength), nil
}

func paragraphsFromDocument(doc *goquery.Document, minLength int) []string {
	doc.Find(noiseSelector).Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) > minLength {
			paragraphs = append(paragraphs, text)
		}
	})
	return paragraphs
}

// ExtractReadableParagraphs isolates the main article with go-readability
// and applies the same paragraph filter to the result.
func ExtractReadableParagraphs(r io.Reader, pageURL *url.URL, minLength int) ([]string, error) {
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	var buf strings.Builder
	if err := article.RenderHTML(&buf); err != nil {
		return nil, fmt.Errorf("render readable html: %w", err)
	}
	return ExtractParagraphs(strings.NewReader(buf.String()), minLength)
}

// JoinParagraphs joins paragraphs with single spaces. It returns nil when there is nothing to join.
func JoinParagraphs(paragraphs []string) *string {
	if len(paragraphs) == 0 {
		return nil
	}
	joined := strings.Join(paragraphs, " ")
	return &joined
}

// SanitizeText removes all markup from text supplied by a search API and decodes entities.
func SanitizeText(raw string) string {
	return normalizeWS(html.UnescapeString(strictPolicy.Sanitize(raw)))
}

// StripTags は HTML 文字列からタグを除去し、プレーンテキストだけを返す。
// script/style の中身は捨て、空白は 1 つにまとめる。
func StripTags(raw string) string {
	return stripCore(strings.NewReader(raw))
}

func stripCore(r io.Reader) string {
	var b strings.Builder
	z := html.NewTokenizer(r)

	depthSkip := 0

	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			return normalizeWS(b.String())

		case html.StartTagToken:
			name, _ := z.TagName()
			if skipTag(name) {
				depthSkip++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if skipTag(name) && depthSkip > 0 {
				depthSkip--
			}

		case html.TextToken:
			if depthSkip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func skipTag(name []byte) bool {
	switch string(name) {
	case "script", "style", "noscript":
		return true
	default:
		return false
	}
}

func normalizeWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
