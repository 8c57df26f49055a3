package orgdoc

import (
	"regexp"
	"strings"
)

var (
	headlineRe = regexp.MustCompile(`^(\*+)[ \t]+(.*?)[ \t]*$`)
	beginRe    = regexp.MustCompile(`(?i)^[ \t]*#\+begin_([a-z_-]+)[ \t]*(.*?)[ \t]*$`)
	headerRe   = regexp.MustCompile(`(?i)^[ \t]*#\+header:`)
	propertyRe = regexp.MustCompile(`(?i)^[ \t]*#\+property:[ \t]+header-args[ \t]+(.*?)[ \t]*$`)
	drawerKVRe = regexp.MustCompile(`^[ \t]*:([A-Za-z0-9_+-]+):[ \t]*(.*?)[ \t]*$`)
)

// line is one physical line with its offsets, newline excluded.
type line struct {
	num  int // 1-based
	text string
	span Span
}

func splitLines(text string) []line {
	var out []line
	start := 0
	num := 1
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			if i == len(text) && i == start && num > 1 {
				break
			}
			out = append(out, line{num: num, text: text[start:i], span: Span{Start: start, End: i}})
			start = i + 1
			num++
		}
	}
	return out
}

// ParseDocument scans org text into a Document. It fails with a
// StructuralError when a block's closing delimiter is missing; everything
// else it does not understand is passed over without complaint.
func ParseDocument(name, text string) (*Document, error) {
	doc := &Document{Name: name, text: []byte(text)}
	lines := splitLines(text)

	var stack []*Headline // open headlines, outermost first
	closeDown := func(level, endOff int) {
		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			h := stack[len(stack)-1]
			h.Extent.End = endOff
			stack = stack[:len(stack)-1]
		}
	}

	for i := 0; i < len(lines); i++ {
		ln := lines[i]

		if m := headlineRe.FindStringSubmatch(ln.text); m != nil {
			closeDown(len(m[1]), ln.span.Start)
			h := &Headline{
				Level:      len(m[1]),
				Title:      m[2],
				Line:       ln.num,
				Span:       ln.span,
				Extent:     Span{Start: ln.span.Start, End: len(text)},
				Properties: map[string]string{},
			}
			if len(stack) > 0 {
				h.Parent = stack[len(stack)-1]
			}
			doc.Headlines = append(doc.Headlines, h)
			stack = append(stack, h)

			// A property drawer is only recognized directly under the headline.
			if i+1 < len(lines) && strings.EqualFold(strings.TrimSpace(lines[i+1].text), ":PROPERTIES:") {
				j := i + 2
				for ; j < len(lines); j++ {
					t := strings.TrimSpace(lines[j].text)
					if strings.EqualFold(t, ":END:") {
						i = j
						break
					}
					if kv := drawerKVRe.FindStringSubmatch(lines[j].text); kv != nil {
						h.Properties[strings.ToLower(kv[1])] = kv[2]
					}
				}
			}
			continue
		}

		if m := propertyRe.FindStringSubmatch(ln.text); m != nil && len(stack) == 0 {
			if doc.fileHeaderArgs != "" {
				doc.fileHeaderArgs += " "
			}
			doc.fileHeaderArgs += m[1]
			continue
		}

		if idx := beginRe.FindStringSubmatchIndex(ln.text); idx != nil {
			kind := strings.ToLower(ln.text[idx[2]:idx[3]])
			b := &Block{
				Kind:      kind,
				Line:      ln.num,
				BeginLine: ln.span,
			}
			if len(stack) > 0 {
				b.Headline = stack[len(stack)-1]
			}
			parseBeginTail(b, ln, ln.span.Start+idx[4], ln.text[idx[4]:idx[5]])
			collectHeaderLines(b, lines, i)

			endIdx := -1
			endMarker := "#+end_" + kind
			for j := i + 1; j < len(lines); j++ {
				if strings.EqualFold(strings.TrimSpace(lines[j].text), endMarker) {
					endIdx = j
					break
				}
			}
			if endIdx < 0 {
				return nil, &StructuralError{
					Doc:  name,
					Line: ln.num,
					Msg:  "unclosed block: missing " + endMarker,
				}
			}
			b.EndLine = lines[endIdx].span
			b.Body = Span{Start: ln.span.End + 1, End: lines[endIdx].span.Start}
			if b.Body.End < b.Body.Start {
				b.Body = Span{Start: ln.span.End, End: ln.span.End}
			}
			doc.Blocks = append(doc.Blocks, b)
			i = endIdx
			continue
		}
	}
	closeDown(1, len(text))
	return doc, nil
}

// parseBeginTail splits the text after `#+begin_<kind>` into the language
// token (src blocks only) and the inline parameter span. tailStart is the
// tail's absolute offset; the line may carry trailing whitespace beyond the
// captured tail, so the span must be anchored to the tail's own position,
// not computed back from the end of the line.
func parseBeginTail(b *Block, ln line, tailStart int, tail string) {
	rest := tail
	restStart := tailStart

	if b.Kind == "src" && rest != "" && !strings.HasPrefix(rest, ":") {
		if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
			b.Language = rest[:sp]
			trimmed := strings.TrimLeft(rest[sp:], " \t")
			restStart += len(rest) - len(trimmed)
			rest = trimmed
		} else {
			b.Language = rest
			rest = ""
			restStart = ln.span.End
		}
	}

	if rest == "" {
		b.InlineSpan = Span{Start: ln.span.End, End: ln.span.End}
		return
	}
	b.InlineSpan = Span{Start: restStart, End: restStart + len(rest)}
}

// collectHeaderLines gathers the contiguous `#+header:` lines directly above
// the begin line, preserving document order.
func collectHeaderLines(b *Block, lines []line, beginIdx int) {
	var hdrs []HeaderLine
	for j := beginIdx - 1; j >= 0; j-- {
		if !headerRe.MatchString(lines[j].text) {
			break
		}
		hdrs = append([]HeaderLine{{Line: lines[j].num, Span: lines[j].span}}, hdrs...)
	}
	b.HeaderLines = hdrs
}
