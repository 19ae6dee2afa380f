package archive

import (
	"regexp"
	"strconv"
)

// headingPatterns extract chapter number from archived section headings.
// Headings may carry any prefix, so patterns are searched anywhere in the heading.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Chapter\s+(\d+)`),
	regexp.MustCompile(`(?i)Ch\.?\s+(\d+)`),
	regexp.MustCompile(`#(\d+)`),
}

// NumberFromHeading returns chapter number found in heading, nil if none of the patterns match
func NumberFromHeading(heading string) *int {
	for _, re := range headingPatterns {
		m := re.FindStringSubmatch(heading)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}
