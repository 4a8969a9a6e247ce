package tcgdex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseQuery builds a Query from its method-chain text form, for example
//
//	Query().equal("category", "Pokemon").notNull("ability").paginate(1, 20)
//
// The leading Query() is optional. Arguments are quoted strings or integers.
func ParseQuery(input string) (*Query, error) {
	p := &queryParser{src: []rune(strings.TrimSpace(input))}
	if len(p.src) == 0 {
		return nil, fmt.Errorf("query is empty")
	}

	q := NewQuery()
	p.skipSpace()
	first := true
	if p.consumeWord("Query") {
		first = false
		if err := p.expect('('); err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
	} else {
		// allow `equal(...)` without the leading dot
		p.consume('.')
	}

	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		if !first || p.peek() == '.' {
			if err := p.expect('.'); err != nil {
				return nil, err
			}
		}
		first = false

		name := p.ident()
		if name == "" {
			return nil, p.errorf("expected method name")
		}
		args, err := p.arguments()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := apply(q, name, args); err != nil {
			return nil, err
		}
	}
	return q, nil
}

type arg struct {
	text     string
	isNumber bool
}

type method struct {
	arity int
	fn    func(q *Query, a []arg) error
}

var methods = map[string]method{
	"equal":              {2, func(q *Query, a []arg) error { q.Equal(a[0].text, a[1].text); return nil }},
	"notEqual":           {2, func(q *Query, a []arg) error { q.NotEqual(a[0].text, a[1].text); return nil }},
	"contains":           {2, func(q *Query, a []arg) error { q.Contains(a[0].text, a[1].text); return nil }},
	"notContains":        {2, func(q *Query, a []arg) error { q.NotContains(a[0].text, a[1].text); return nil }},
	"greaterOrEqualThan": {2, func(q *Query, a []arg) error { q.GreaterOrEqualThan(a[0].text, a[1].text); return nil }},
	"lessOrEqualThan":    {2, func(q *Query, a []arg) error { q.LessOrEqualThan(a[0].text, a[1].text); return nil }},
	"greaterThan":        {2, func(q *Query, a []arg) error { q.GreaterThan(a[0].text, a[1].text); return nil }},
	"lessThan":           {2, func(q *Query, a []arg) error { q.LessThan(a[0].text, a[1].text); return nil }},
	"isNull":             {1, func(q *Query, a []arg) error { q.IsNull(a[0].text); return nil }},
	"notNull":            {1, func(q *Query, a []arg) error { q.NotNull(a[0].text); return nil }},
	"sort": {2, func(q *Query, a []arg) error {
		order := strings.ToLower(a[1].text)
		if order != "asc" && order != "desc" {
			return fmt.Errorf("sort order must be asc or desc, got %q", a[1].text)
		}
		q.Sort(a[0].text, order)
		return nil
	}},
	"paginate": {2, func(q *Query, a []arg) error {
		page, err := strconv.Atoi(a[0].text)
		if err != nil || page < 1 {
			return fmt.Errorf("paginate page must be a positive integer, got %q", a[0].text)
		}
		size, err := strconv.Atoi(a[1].text)
		if err != nil || size < 1 {
			return fmt.Errorf("paginate itemsPerPage must be a positive integer, got %q", a[1].text)
		}
		q.Paginate(page, size)
		return nil
	}},
}

func apply(q *Query, name string, args []arg) error {
	m, ok := methods[name]
	if !ok {
		return fmt.Errorf("unknown query method %q", name)
	}
	if len(args) != m.arity {
		return fmt.Errorf("%s takes %d argument(s), got %d", name, m.arity, len(args))
	}
	if args[0].isNumber && name != "paginate" {
		return fmt.Errorf("%s: field name must be a string", name)
	}
	return m.fn(q, args)
}

type queryParser struct {
	src []rune
	pos int
}

func (p *queryParser) eof() bool { return p.pos >= len(p.src) }

func (p *queryParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *queryParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *queryParser) consume(r rune) bool {
	p.skipSpace()
	if p.peek() == r {
		p.pos++
		return true
	}
	return false
}

func (p *queryParser) expect(r rune) error {
	if !p.consume(r) {
		return p.errorf("expected %q", r)
	}
	return nil
}

func (p *queryParser) consumeWord(word string) bool {
	end := p.pos + len([]rune(word))
	if end > len(p.src) || string(p.src[p.pos:end]) != word {
		return false
	}
	if end < len(p.src) && isIdentRune(p.src[end]) {
		return false
	}
	p.pos = end
	return true
}

func (p *queryParser) ident() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() && isIdentRune(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *queryParser) arguments() ([]arg, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var args []arg
	if p.consume(')') {
		return args, nil
	}
	for {
		a, err := p.argument()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.consume(')') {
			return args, nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
	}
}

func (p *queryParser) argument() (arg, error) {
	p.skipSpace()
	switch r := p.peek(); {
	case r == '"' || r == '\'':
		s, err := p.quoted(r)
		return arg{text: s}, err
	case r == '-' || unicode.IsDigit(r):
		start := p.pos
		p.pos++
		for !p.eof() && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		text := string(p.src[start:p.pos])
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return arg{}, p.errorf("invalid number %q", text)
		}
		return arg{text: text, isNumber: true}, nil
	default:
		return arg{}, p.errorf("expected quoted string or number")
	}
}

func (p *queryParser) quoted(quote rune) (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for !p.eof() {
		r := p.src[p.pos]
		p.pos++
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			b.WriteRune(p.src[p.pos])
			p.pos++
		default:
			b.WriteRune(r)
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *queryParser) errorf(format string, args ...any) error {
	return fmt.Errorf("invalid query at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
