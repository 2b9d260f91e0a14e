package pysource

// scanner is a byte cursor over Python source that tracks the current line.
type scanner struct {
	src  []byte
	off  int
	line int
}

func (s *scanner) eof() bool { return s.off >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.off]
}

func (s *scanner) bump() byte {
	b := s.src[s.off]
	s.off++
	if b == '\n' {
		s.line++
	}
	return b
}

func (s *scanner) hasPrefix(p string) bool {
	return len(s.src)-s.off >= len(p) && string(s.src[s.off:s.off+len(p)]) == p
}

// ScanComments returns every "#" comment in src that is not inside a string
// literal, in source order. The source does not need to parse.
func ScanComments(src []byte) []Comment {
	s := &scanner{src: src, line: 1}
	var comments []Comment
	for !s.eof() {
		switch b := s.peek(); b {
		case '#':
			start, line := s.off, s.line
			for !s.eof() && s.peek() != '\n' && s.peek() != '\r' {
				s.bump()
			}
			comments = append(comments, Comment{Text: string(src[start:s.off]), Line: line})
		case '"', '\'':
			s.skipString(b)
		default:
			s.bump()
		}
	}
	return comments
}

// skipString consumes a string literal starting at the opening quote.
// Single-quoted literals end at the closing quote or an unescaped newline.
func (s *scanner) skipString(q byte) {
	triple := string([]byte{q, q, q})
	if s.hasPrefix(triple) {
		s.off += 3
		for !s.eof() {
			if s.hasPrefix(triple) {
				s.off += 3
				return
			}
			if s.bump() == '\\' && !s.eof() {
				s.bump()
			}
		}
		return
	}

	s.bump()
	for !s.eof() {
		switch s.peek() {
		case q:
			s.bump()
			return
		case '\n':
			return
		case '\\':
			s.bump()
			if !s.eof() {
				s.bump()
			}
		default:
			s.bump()
		}
	}
}
