package archive

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	epub "github.com/go-shiori/go-epub"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/serialbook/pkg/domain"
)

const defaultCSS = `body { font-family: Georgia, serif; line-height: 1.6; margin: 2em; }
h1 { text-align: center; margin-bottom: 1em; font-size: 2em; }
h2 { margin-top: 1.5em; font-size: 1.5em; }
p { text-indent: 1em; margin: 0; }
p:first-of-type { text-indent: 0; }
img { max-width: 100%; height: auto; display: block; margin: 1em auto; }
`

const noContent = "<p>No content available.</p>"

// sanitizer drops scripts, styles and event handlers from post bodies
var sanitizer = bluemonday.UGCPolicy()

// WriteEPUB renders series as an EPUB book to w, one section per chapter in series order
func WriteEPUB(w io.Writer, s *domain.Series) error {
	book, err := epub.NewEpub(s.Key)
	if err != nil {
		return fmt.Errorf("create epub: %w", err)
	}
	book.SetAuthor(s.Author)
	book.SetLang("en")
	book.SetIdentifier(BookID(s.Key))
	if s.OriginURL != "" {
		book.SetDescription(s.OriginURL)
	}

	css := "data:text/css;base64," + base64.StdEncoding.EncodeToString([]byte(defaultCSS))
	cssPath, err := book.AddCSS(css, "style.css")
	if err != nil {
		return fmt.Errorf("add css: %w", err)
	}

	for i, c := range s.Chapters {
		body := fmt.Sprintf("<h1>%s</h1>\n%s", html.EscapeString(c.Title), renderBody(c.Body))
		if _, err := book.AddSection(body, c.Title, fmt.Sprintf("chapter_%03d.xhtml", i), cssPath); err != nil {
			return fmt.Errorf("add chapter %q: %w", c.Title, err)
		}
	}

	if _, err := book.WriteTo(w); err != nil {
		return fmt.Errorf("write epub: %w", err)
	}
	return nil
}

// BookID makes a stable book identifier from the series key
func BookID(key string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("serialbook:"+key)).String()
}

// renderBody sanitizes post HTML and re-renders it as well-formed markup
func renderBody(body string) string {
	clean := strings.TrimSpace(sanitizer.Sanitize(body))
	if clean == "" {
		return noContent
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return clean
	}
	res, err := doc.Find("body").Html()
	if err != nil || strings.TrimSpace(res) == "" {
		return clean
	}
	return res
}
