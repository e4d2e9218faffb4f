package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/squintql/squint/internal/predicate"
	"github.com/squintql/squint/internal/resolve"
)

// Parser parses query strings and resolves them in a single pass.
type Parser struct {
	lexer    *Lexer
	curr     Token
	peek     Token
	resolver *resolve.Resolver
}

// Parse parses and resolves a query against the type model. The first
// resolution error aborts the pass; there is no partial result.
//
//	from Book b
//	join b.author a
//	select a.name, b.isbn
//	where b.isbn between '100' and '200' and b.pages = 300
func Parse(input string, model resolve.TypeModel) (*ResolvedQuery, error) {
	p := &Parser{lexer: NewLexer(input), resolver: resolve.New(model)}
	p.advance()
	p.advance()
	return p.parseQuery()
}

func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lexer.NextToken()
}

// keywordIs reports whether the current token is the given keyword.
// Keywords compare case-insensitively; names never do.
func (p *Parser) keywordIs(kw string) bool {
	return p.curr.Type == TokenIdent && strings.EqualFold(p.curr.Value, kw)
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.keywordIs(kw) {
		return fmt.Errorf("expected '%s', got '%s' at pos %d", kw, p.curr.Value, p.curr.Pos)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdent(what string) (string, error) {
	if p.curr.Type != TokenIdent {
		return "", fmt.Errorf("expected %s, got '%s' at pos %d", what, p.curr.Value, p.curr.Pos)
	}
	name := p.curr.Value
	p.advance()
	return name, nil
}

func (p *Parser) parseQuery() (*ResolvedQuery, error) {
	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}

	entity, err := p.expectIdent("entity type")
	if err != nil {
		return nil, err
	}
	if p.keywordIs("as") {
		p.advance()
	}
	alias, err := p.expectIdent("alias")
	if err != nil {
		return nil, err
	}

	p.resolver.PushFromScope(alias)
	if err := p.resolver.RegisterEntityAlias(alias, entity); err != nil {
		return nil, err
	}
	p.resolver.PopScope()

	for p.keywordIs("join") {
		if err := p.parseJoin(); err != nil {
			return nil, err
		}
	}

	q := &ResolvedQuery{Entity: p.resolver.TargetEntity()}

	if p.keywordIs("select") {
		if err := p.parseSelect(q); err != nil {
			return nil, err
		}
	}
	if p.keywordIs("where") {
		if err := p.parseWhere(q); err != nil {
			return nil, err
		}
	}

	if p.curr.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected '%s' at pos %d", p.curr.Value, p.curr.Pos)
	}
	return q, nil
}

func (p *Parser) parseJoin() error {
	p.advance() // join

	segments, err := p.parsePathSegments()
	if err != nil {
		return err
	}
	if p.keywordIs("as") {
		p.advance()
	}
	alias, err := p.expectIdent("join alias")
	if err != nil {
		return err
	}

	if len(segments) == 1 && !p.resolver.IsEntityAlias(segments[0]) {
		if _, err := p.resolver.ResolveUnqualifiedPropertySource(segments[0]); err != nil {
			return err
		}
	}

	p.resolver.PushFromScope(alias)
	path, err := p.resolvePath(segments)
	if err != nil {
		return err
	}
	if err := p.resolver.PathCompleted(path); err != nil {
		return err
	}
	p.resolver.RegisterJoinAlias(alias, path)
	p.resolver.PopScope()
	return nil
}

func (p *Parser) parseSelect(q *ResolvedQuery) error {
	p.advance() // select
	p.resolver.PushSelectScope()

	for {
		segments, err := p.parsePathSegments()
		if err != nil {
			return err
		}
		path, err := p.resolvePath(segments)
		if err != nil {
			return err
		}
		if err := p.resolver.PathCompleted(path); err != nil {
			return err
		}
		physical, err := p.resolver.PhysicalPath(path)
		if err != nil {
			return err
		}
		q.Projections = append(q.Projections, Projection{Path: strings.Join(physical, ".")})

		if p.curr.Type != TokenComma {
			break
		}
		p.advance()
	}

	p.resolver.PopScope()
	return nil
}

func (p *Parser) parseWhere(q *ResolvedQuery) error {
	p.advance() // where

	for {
		pred, err := p.parseCondition()
		if err != nil {
			return err
		}
		q.Predicates = append(q.Predicates, pred)

		if !p.keywordIs("and") {
			break
		}
		p.advance()
	}
	return nil
}

func (p *Parser) parseCondition() (predicate.Predicate, error) {
	segments, err := p.parsePathSegments()
	if err != nil {
		return nil, err
	}
	path, err := p.resolvePath(segments)
	if err != nil {
		return nil, err
	}
	if err := p.resolver.PathCompleted(path); err != nil {
		return nil, err
	}
	physical, err := p.resolver.PhysicalPath(path)
	if err != nil {
		return nil, err
	}
	ref := path.Last()

	switch {
	case p.keywordIs("between"):
		p.advance()
		lower, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("and"); err != nil {
			return nil, err
		}
		upper, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return predicate.NewRange(physical, ref, lower, upper)

	case p.curr.Type == TokenEquals:
		p.advance()
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return predicate.NewEquals(physical, ref, value)

	case p.keywordIs("matches"):
		p.advance()
		if p.curr.Type != TokenString {
			return nil, fmt.Errorf("expected quoted match expression, got '%s' at pos %d", p.curr.Value, p.curr.Pos)
		}
		expr := p.curr.Value
		p.advance()
		return predicate.NewMatch(physical, ref, expr)
	}

	return nil, fmt.Errorf("expected 'between', '=', or 'matches', got '%s' at pos %d", p.curr.Value, p.curr.Pos)
}

// parsePathSegments consumes a dotted path. Collection subscripts are
// handed to the resolver, which rejects them.
func (p *Parser) parsePathSegments() ([]string, error) {
	first, err := p.expectIdent("property path")
	if err != nil {
		return nil, err
	}
	segments := []string{first}

	for {
		if p.curr.Type == TokenLBracket {
			selector, err := p.parseSubscript()
			if err != nil {
				return nil, err
			}
			if _, err := p.resolver.ResolveIndexOperation(segments[len(segments)-1], selector); err != nil {
				return nil, err
			}
		}
		if p.curr.Type != TokenDot {
			return segments, nil
		}
		p.advance()
		segment, err := p.expectIdent("property name")
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}
}

func (p *Parser) parseSubscript() (string, error) {
	p.advance() // [
	var parts []string
	for p.curr.Type != TokenRBracket {
		if p.curr.Type == TokenEOF {
			return "", fmt.Errorf("unterminated subscript at pos %d", p.curr.Pos)
		}
		parts = append(parts, p.curr.Value)
		p.advance()
	}
	p.advance() // ]
	return strings.Join(parts, ""), nil
}

// resolvePath drives the resolver over one path's segments, assembling the
// PropertyPath from the returned references. Multi-segment paths must be
// rooted at an alias; a bare identifier resolves as an unqualified property
// of the target type.
func (p *Parser) resolvePath(segments []string) (*resolve.PropertyPath, error) {
	if len(segments) == 1 {
		ref, err := p.resolver.ResolveUnqualifiedProperty(segments[0])
		if err != nil {
			return nil, err
		}
		return resolve.NewPropertyPath(ref), nil
	}

	root, err := p.resolver.ResolveUnqualifiedRoot(segments[0])
	if err != nil {
		return nil, err
	}
	path := resolve.NewPropertyPath(root)

	for _, segment := range segments[1 : len(segments)-1] {
		ref, err := p.resolver.ResolveIntermediary(path, segment)
		if err != nil {
			return nil, err
		}
		path.Append(ref)
	}

	last, err := p.resolver.ResolveTerminus(path, segments[len(segments)-1])
	if err != nil {
		return nil, err
	}
	path.Append(last)
	return path, nil
}

func (p *Parser) parseLiteral() (any, error) {
	switch p.curr.Type {
	case TokenString:
		v := p.curr.Value
		p.advance()
		return v, nil
	case TokenNumber:
		f, err := strconv.ParseFloat(p.curr.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number '%s' at pos %d", p.curr.Value, p.curr.Pos)
		}
		p.advance()
		return f, nil
	case TokenIdent:
		switch strings.ToLower(p.curr.Value) {
		case "true":
			p.advance()
			return true, nil
		case "false":
			p.advance()
			return false, nil
		}
	}
	return nil, fmt.Errorf("expected literal value, got '%s' at pos %d", p.curr.Value, p.curr.Pos)
}
