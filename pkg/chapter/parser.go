// Package chapter classifies post titles into series and chapter numbers,
// groups classified posts into ordered series and finds chapters missing from an existing book.
package chapter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/umputun/serialbook/pkg/domain"
)

// Config defines how titles are classified
type Config struct {
	CustomPattern string // optional regexp with one or two capture groups, tried first
	SeriesName    string // overrides series name for titles without a book name
	Author        string // used for synthesized series names and as series author
	OriginURL     string // creator URL attached to every series
}

// rule is a single step of the classification cascade
type rule struct {
	name    string
	re      *regexp.Regexp
	extract func(title string, m []string) (domain.Classification, bool)
}

// Parser classifies post titles with an ordered, first-match-wins cascade of rules
type Parser struct {
	cfg   Config
	rules []rule
}

var (
	volumeChapterRe = regexp.MustCompile(`(?i)^v(\d+)c(\d+)`)
	bookColonRe     = regexp.MustCompile(`(?i)^(.+?):\s*(?:Chapter|Ch\.?)\s*(\d+)`)
	bookDashRe      = regexp.MustCompile(`(?i)^(.+?)\s*-\s*(?:Chapter|Ch\.?)\s*(\d+)`)
	chapterOnlyRe   = regexp.MustCompile(`(?i)^(?:Chapter|Ch\.?)\s*(\d+)`)
	bookBracketRe   = regexp.MustCompile(`(?i)^(.+?)\s*[\(\[](\d+)[\)\]]`)
)

// NewParser makes a parser for the given config. Returns error if custom pattern can't be compiled.
func NewParser(cfg Config) (*Parser, error) {
	p := &Parser{cfg: cfg}

	if cfg.CustomPattern != "" {
		// wrapping group is non-capturing, so group numbering of the custom pattern is preserved
		re, err := regexp.Compile(`(?i)^(?:` + cfg.CustomPattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("compile custom pattern %q: %w", cfg.CustomPattern, err)
		}
		p.rules = append(p.rules, rule{name: "custom", re: re, extract: p.extractCustom})
	}

	p.rules = append(p.rules,
		rule{name: "volume-chapter", re: volumeChapterRe, extract: p.extractVolumeChapter},
		rule{name: "book-colon-chapter", re: bookColonRe, extract: extractBookChapter},
		rule{name: "book-dash-chapter", re: bookDashRe, extract: extractBookChapter},
		rule{name: "chapter-only", re: chapterOnlyRe, extract: p.extractChapterOnly},
		rule{name: "book-bracket-number", re: bookBracketRe, extract: extractBookChapter},
	)
	return p, nil
}

// Classify returns series key and chapter number for the title.
// The second value is false if no rule matched or the matched number can't be converted.
func (p *Parser) Classify(title string) (domain.Classification, bool) {
	for _, r := range p.rules {
		m := r.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		if r.name == "custom" && len(m) < 2 {
			continue // pattern without capture groups carries no chapter number
		}
		return r.extract(title, m)
	}
	return domain.Classification{}, false
}

// Config returns parser configuration
func (p *Parser) Config() Config {
	return p.cfg
}

func (p *Parser) extractCustom(title string, m []string) (domain.Classification, bool) {
	if len(m) >= 3 {
		return extractBookChapter(title, m)
	}
	num, ok := atoi(m[1])
	if !ok {
		return domain.Classification{}, false
	}
	return domain.Classification{SeriesKey: title, Number: &num}, true
}

func (p *Parser) extractVolumeChapter(_ string, m []string) (domain.Classification, bool) {
	num, ok := atoi(m[2])
	if !ok {
		return domain.Classification{}, false
	}
	return domain.Classification{SeriesKey: fmt.Sprintf("%s - Volume %s", p.seriesPrefix(), m[1]), Number: &num}, true
}

func (p *Parser) extractChapterOnly(_ string, m []string) (domain.Classification, bool) {
	num, ok := atoi(m[1])
	if !ok {
		return domain.Classification{}, false
	}
	key := p.cfg.SeriesName
	if key == "" {
		key = "Untitled Book by " + p.cfg.Author
	}
	return domain.Classification{SeriesKey: key, Number: &num}, true
}

func extractBookChapter(_ string, m []string) (domain.Classification, bool) {
	num, ok := atoi(m[2])
	if !ok {
		return domain.Classification{}, false
	}
	return domain.Classification{SeriesKey: strings.TrimSpace(m[1]), Number: &num}, true
}

// seriesPrefix is series name override if set, author otherwise
func (p *Parser) seriesPrefix() string {
	if p.cfg.SeriesName != "" {
		return p.cfg.SeriesName
	}
	return p.cfg.Author
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
