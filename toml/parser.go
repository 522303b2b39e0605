package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parser builds a generic document tree: tables are map[string]any,
// arrays []any, arrays of tables []map[string]any
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
	root  map[string]any
	scope map[string]any // table receiving key/value pairs
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
		root:  make(map[string]any),
	}
	p.advance()
	p.advance()
	p.scope = p.root
	return p
}

// advance shifts the lookahead window, dropping comments
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
	for p.peek.Type == TokenComment {
		p.peek = p.lexer.NextToken()
	}
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenNewline:
			p.advance()
			continue
		case TokenLBracket:
			if err := p.parseHeader(); err != nil {
				return nil, err
			}
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			if err := p.parsePair(p.scope); err != nil {
				return nil, err
			}
		case TokenError:
			return nil, fmt.Errorf("line %d: %s", p.cur.Line, p.cur.Literal)
		default:
			return nil, fmt.Errorf("line %d: unexpected %s", p.cur.Line, p.cur)
		}

		if p.cur.Type != TokenNewline && p.cur.Type != TokenEOF {
			return nil, fmt.Errorf("line %d: expected end of line, got %s", p.cur.Line, p.cur)
		}
	}
	return p.root, nil
}

// parseHeader handles [a.b] and [[a.b]]
func (p *Parser) parseHeader() error {
	line := p.cur.Line
	array := p.peek.Type == TokenLBracket
	p.advance()
	if array {
		p.advance()
	}

	keys, err := p.parseKey()
	if err != nil {
		return err
	}

	closers := 1
	if array {
		closers = 2
	}
	for i := 0; i < closers; i++ {
		if p.cur.Type != TokenRBracket {
			return fmt.Errorf("line %d: unclosed table header", line)
		}
		p.advance()
	}

	table := p.root
	for i, key := range keys {
		last := i == len(keys)-1
		existing, ok := table[key]

		switch {
		case last && array:
			list, _ := existing.([]map[string]any)
			if ok && list == nil {
				return fmt.Errorf("line %d: %s is not an array of tables", line, key)
			}
			next := make(map[string]any)
			table[key] = append(list, next)
			table = next
		case !ok:
			next := make(map[string]any)
			table[key] = next
			table = next
		default:
			switch v := existing.(type) {
			case map[string]any:
				table = v
			case []map[string]any:
				// Headers under an array of tables extend its latest element
				if last || len(v) == 0 {
					return fmt.Errorf("line %d: %s is an array of tables", line, key)
				}
				table = v[len(v)-1]
			default:
				return fmt.Errorf("line %d: %s is not a table", line, key)
			}
		}
	}

	p.scope = table
	return nil
}

// parseKey reads a possibly dotted key
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		switch p.cur.Type {
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.cur.Literal)
		default:
			return nil, fmt.Errorf("line %d: expected key, got %s", p.cur.Line, p.cur)
		}
		p.advance()

		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.advance()
	}
}

func (p *Parser) parsePair(table map[string]any) error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return fmt.Errorf("line %d: expected '=' after key, got %s", p.cur.Line, p.cur)
	}
	p.advance()

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	for _, key := range keys[:len(keys)-1] {
		next, ok := table[key]
		if !ok {
			m := make(map[string]any)
			table[key] = m
			table = m
			continue
		}
		m, isMap := next.(map[string]any)
		if !isMap {
			return fmt.Errorf("line %d: %s is not a table", p.cur.Line, key)
		}
		table = m
	}

	last := keys[len(keys)-1]
	if _, dup := table[last]; dup {
		return fmt.Errorf("line %d: duplicate key %s", p.cur.Line, last)
	}
	table[last] = val
	return nil
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.advance()
		return tok.Literal, nil
	case TokenBool:
		p.advance()
		return tok.Literal == "true", nil
	case TokenInteger:
		p.advance()
		n, err := strconv.ParseInt(strings.ReplaceAll(tok.Literal, "_", ""), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad integer %s", tok.Line, tok.Literal)
		}
		return int(n), nil
	case TokenFloat:
		p.advance()
		return parseFloat(tok)
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseInlineTable()
	}
	return nil, fmt.Errorf("line %d: unexpected value %s", tok.Line, tok)
}

func parseFloat(tok Token) (float64, error) {
	lit := strings.ReplaceAll(tok.Literal, "_", "")
	switch strings.TrimLeft(lit, "+-") {
	case "inf":
		if strings.HasPrefix(lit, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad float %s", tok.Line, tok.Literal)
	}
	return f, nil
}

// parseArray allows newlines between elements and a trailing comma
func (p *Parser) parseArray() ([]any, error) {
	line := p.cur.Line
	p.advance()
	arr := make([]any, 0)

	for {
		for p.cur.Type == TokenNewline {
			p.advance()
		}
		if p.cur.Type == TokenRBracket {
			p.advance()
			return arr, nil
		}
		if p.cur.Type == TokenEOF {
			return nil, fmt.Errorf("line %d: unterminated array", line)
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		for p.cur.Type == TokenNewline {
			p.advance()
		}
		switch p.cur.Type {
		case TokenComma:
			p.advance()
		case TokenRBracket:
		case TokenEOF:
			return nil, fmt.Errorf("line %d: unterminated array", line)
		default:
			return nil, fmt.Errorf("line %d: expected ',' or ']' in array, got %s", p.cur.Line, p.cur)
		}
	}
}

func (p *Parser) parseInlineTable() (map[string]any, error) {
	p.advance()
	table := make(map[string]any)

	for p.cur.Type != TokenRBrace {
		if err := p.parsePair(table); err != nil {
			return nil, err
		}
		switch p.cur.Type {
		case TokenComma:
			p.advance()
		case TokenRBrace:
		default:
			return nil, fmt.Errorf("line %d: expected ',' or '}' in inline table, got %s", p.cur.Line, p.cur)
		}
	}
	p.advance()
	return table, nil
}
