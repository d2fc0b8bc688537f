package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// operatorTokens is ordered so that two-byte tokens match before their prefixes.
var operatorTokens = []string{"!=", "<=", ">=", ":", "=", "<", ">"}

// item is one value read from a clause.
type item struct {
	text   string
	quoted bool
	pos    int
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

// atSpace reports whether the next rune is whitespace.
func (s *scanner) atSpace() bool {
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return unicode.IsSpace(r)
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

// key reads a key name followed by an operator token. known decides which
// names count as keys. On failure the position is left unchanged.
func (s *scanner) key(known func(string) bool) (name, op string, ok bool) {
	end := s.pos
	for end < len(s.src) && isLetter(s.src[end]) {
		end++
	}
	if end == s.pos || !known(s.src[s.pos:end]) {
		return "", "", false
	}
	rest := s.src[end:]
	for _, tok := range operatorTokens {
		if strings.HasPrefix(rest, tok) {
			name = s.src[s.pos:end]
			s.pos = end + len(tok)
			return name, tok, true
		}
	}
	return "", "", false
}

// values reads a comma-separated value list up to the next whitespace.
// Adjacent bare and quoted parts become separate items; empty items are
// dropped.
func (s *scanner) values() ([]item, error) {
	var items []item
	for !s.eof() && !s.atSpace() {
		switch s.src[s.pos] {
		case ',':
			s.pos++
		case '"':
			it, err := s.quoted()
			if err != nil {
				return nil, err
			}
			if it.text != "" {
				items = append(items, it)
			}
		default:
			items = append(items, s.bare(true))
		}
	}
	return items, nil
}

// words reads the parts of a free-text token up to the next whitespace.
func (s *scanner) words() ([]item, error) {
	var items []item
	for !s.eof() && !s.atSpace() {
		if s.src[s.pos] == '"' {
			it, err := s.quoted()
			if err != nil {
				return nil, err
			}
			if it.text != "" {
				items = append(items, it)
			}
			continue
		}
		items = append(items, s.bare(false))
	}
	return items, nil
}

// bare reads an unquoted run. Commas end the run only inside value lists.
func (s *scanner) bare(stopAtComma bool) item {
	start := s.pos
	for !s.eof() && !s.atSpace() {
		c := s.src[s.pos]
		if c == '"' || (stopAtComma && c == ',') {
			break
		}
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}
	return item{text: s.src[start:s.pos], pos: start}
}

func (s *scanner) quoted() (item, error) {
	start := s.pos
	end := strings.IndexByte(s.src[start+1:], '"')
	if end < 0 {
		return item{}, errorf(start, "unterminated quoted string")
	}
	s.pos = start + 1 + end + 1
	return item{text: s.src[start+1 : start+1+end], quoted: true, pos: start}, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
