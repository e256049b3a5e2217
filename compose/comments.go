package compose

import "strings"

// commentMarker begins a documentation comment line.
const commentMarker = "# --"

// markerText reports whether a raw line is a documentation comment, and if
// so returns its marker-stripped text. Inside list-style blocks the marker
// may follow the sequence dash ("- # -- text").
func markerText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "- ")

	if !strings.HasPrefix(trimmed, commentMarker) {
		return "", false
	}

	return strings.TrimSpace(trimmed[len(commentMarker):]), true
}

// associateComments performs the single linear pass over raw lines that
// detects comment blocks and resolves their attachment, then reports every
// occurrence left without a description.
//
// A block is a maximal run of consecutive marker lines; its text is the
// space-joined content of each line. Marker lines with no text after the
// marker contribute nothing but do not break the run.
func (s *scanState) associateComments() {
	lines := s.doc.lines

	i := 0
	for i < len(lines) {
		if _, ok := markerText(lines[i]); !ok {
			i++

			continue
		}

		start := i

		var parts []string

		for i < len(lines) {
			text, ok := markerText(lines[i])
			if !ok {
				break
			}

			if text != "" {
				parts = append(parts, text)
			}

			i++
		}

		s.attachBlock(start, i, strings.Join(parts, " "))
	}

	for _, o := range s.occurrences {
		if o.description == "" {
			s.warnf("Line %d: Variable '%s' without comment", o.line+1, o.name)
		}
	}
}

// attachBlock attaches a comment block to the first significant line after
// it. Blank lines and merge-key references (<<:) are skipped; a service
// key line captures the block as the service description; a line with
// indexed occurrences documents every occurrence declared there; anything
// else orphans the block.
func (s *scanState) attachBlock(start, end int, text string) {
	target := -1

	for j := end; j < len(s.doc.lines); j++ {
		line := strings.TrimSpace(s.doc.lines[j])
		if line == "" || strings.Contains(line, "<<:") {
			continue
		}

		target = j

		break
	}

	if target >= 0 {
		if name, ok := s.serviceLines[target]; ok {
			s.serviceDescs[name] = text

			return
		}

		if occs := s.lineIndex[target]; len(occs) > 0 {
			for _, o := range occs {
				o.description = text
			}

			return
		}
	}

	s.warnf("Line %d: Comment without associated variable", start+1)
}
