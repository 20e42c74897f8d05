package parser

import (
	"github.com/chebwaplus/losp/value"
)

// parser is a recursive-descent builder driven by the token stream; each
// construct (operator, filter, key-value, object literal, list, function)
// has its own parse method, matching the tokenizer's recognised-constructs
// table one-for-one.
type parser struct {
	toks []Token
	pos  int
	src  string
}

// Parse tokenizes and builds source into a single root Node: a synthetic
// ListNode wrapping every top-level expression, so a program containing
// more than one top-level form still yields one Node.
func Parse(source string) (Node, error) {
	toks, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: source}

	rootTok := p.cur()
	children := NewChildren(AdmitAll)
	var lastFilter *FilterNode
	for p.cur().Kind != TokenEOF {
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		lastFilter = attach(children, lastFilter, n)
	}
	return NewListNode(&rootTok, children), nil
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return newSyntaxError(p.src, p.cur(), format, args...)
}

func (p *parser) expect(k TokenKind) (Token, error) {
	if p.cur().Kind != k {
		return Token{}, p.errorf("expected %s, got %s %q", k, p.cur().Kind, p.cur().Text())
	}
	return p.advance(), nil
}

// attach appends n to children unless n is a chained filter, in which case
// it's linked onto the end of the previous filter's chain instead of being
// added as a sibling. Returns the new "last filter" for the next call.
func attach(children *Children, lastFilter *FilterNode, n Node) *FilterNode {
	if f, ok := n.(*FilterNode); ok {
		if f.Chained && lastFilter != nil {
			end := lastFilter
			for end.Next != nil {
				end = end.Next
			}
			end.Next = f
			return lastFilter
		}
		_ = children.Add(n)
		return f
	}
	_ = children.Add(n)
	return nil
}

// parseExprSeq parses expressions until the given terminator token kind is
// seen (without consuming it), threading filter chaining through the
// sequence. Key-value children are kept everywhere except inside a list.
func (p *parser) parseExprSeq(end TokenKind) (*Children, error) {
	policy := AdmitAny
	if end == TokenRBracket {
		policy = AdmitAll
	}
	children := NewChildren(policy)
	var lastFilter *FilterNode
	for p.cur().Kind != end {
		if p.cur().Kind == TokenEOF {
			return nil, p.errorf("unexpected end of input, expected %s", end)
		}
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		lastFilter = attach(children, lastFilter, n)
	}
	return children, nil
}

func (p *parser) parseExpr() (Node, error) {
	switch p.cur().Kind {
	case TokenLParen:
		return p.parseOperator()
	case TokenSpecialOperatorSymbol:
		return p.parseSpecialOperator()
	case TokenLeftInitFilter:
		return p.parseFilter(false)
	case TokenLeftChainFilter:
		return p.parseFilter(true)
	case TokenLeftInitFunc:
		return p.parseFunction()
	case TokenLBracket:
		return p.parseList()
	case TokenLCurly:
		return p.parseKeyValue()
	case TokenDblLCurly:
		return p.parseObjectLiteral()
	case TokenSymbol:
		tok := p.advance()
		return NewIdentifierNode(&tok, tok.Text()), nil
	case TokenString:
		tok := p.advance()
		return NewLiteralNode(&tok, value.NewString(DecodeStringLiteral(tok.Text()))), nil
	case TokenInt:
		tok := p.advance()
		return NewLiteralNode(&tok, parseIntLiteral(tok.Text())), nil
	case TokenFloat:
		tok := p.advance()
		return NewLiteralNode(&tok, parseFloatLiteral(tok.Text())), nil
	case TokenBool:
		tok := p.advance()
		return NewLiteralNode(&tok, value.NewBool(tok.Text() == "true")), nil
	case TokenNull:
		tok := p.advance()
		return NewLiteralNode(&tok, value.Null{}), nil
	default:
		return nil, p.errorf("unexpected token %s %q", p.cur().Kind, p.cur().Text())
	}
}

// parseOperator parses `(name args...)`. The name is a bare symbol (or an
// integer, such as the `1`/`0` truthiness operators), never itself
// evaluated as an identifier reference.
func (p *parser) parseOperator() (Node, error) {
	open := p.cur()
	p.advance()
	nameTok := p.cur()
	if nameTok.Kind != TokenSymbol && nameTok.Kind != TokenInt {
		return nil, p.errorf("expected %s, got %s %q", TokenSymbol, nameTok.Kind, nameTok.Text())
	}
	p.advance()
	children, err := p.parseExprSeq(TokenRParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return NewOperatorNode(&open, nameTok.Text(), children), nil
}

// parseSpecialOperator parses `Name(args...)` and runs the name's Prepare
// hook to restructure the result into a SpecialOperatorNode.
func (p *parser) parseSpecialOperator() (Node, error) {
	nameTok := p.advance()
	name := nameTok.Text()
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	children, err := p.parseExprSeq(TokenRParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	op := NewOperatorNode(&nameTok, name, children)

	prepare, ok := specialPrepareRegistry[name]
	if !ok {
		prepare = DefaultPrepare
	}
	return prepare(op)
}

// parseFilter parses `#(args...)` or, when chained is true, `%(args...)`.
// Linking a chained filter onto its predecessor happens in attach, not
// here: this only builds the node for the current introducer.
func (p *parser) parseFilter(chained bool) (Node, error) {
	introducer := p.advance()
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	children, err := p.parseExprSeq(TokenRParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	id := "#"
	if chained {
		id = "%"
	}
	return NewFilterNode(&introducer, id, children, chained), nil
}

// parseFunction parses `FN([params] body...)`.
func (p *parser) parseFunction() (Node, error) {
	tok := p.advance()
	paramsNode, err := p.parseList()
	if err != nil {
		return nil, err
	}
	params, ok := paramsNode.(*ListNode)
	if !ok {
		return nil, p.errorf("FN's parameter list must be a list")
	}
	for _, c := range params.Children().Items() {
		if _, ok := c.(*IdentifierNode); !ok {
			return nil, p.errorf("FN's parameter list may only contain identifiers")
		}
	}
	body, err := p.parseExprSeq(TokenRParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return NewFunctionNode(&tok, params, body), nil
}

// parseList parses `[args...]`; key-value children are never admitted.
func (p *parser) parseList() (Node, error) {
	tok, err := p.expect(TokenLBracket)
	if err != nil {
		return nil, err
	}
	children, err := p.parseExprSeq(TokenRBracket)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return NewListNode(&tok, children), nil
}

// parseTags consumes a run of leading #tag tokens.
func (p *parser) parseTags() []string {
	var tags []string
	for p.cur().Kind == TokenTag {
		tags = append(tags, p.advance().Text())
	}
	return tags
}

// parseKeyValue parses `{tags* key expr...}`.
func (p *parser) parseKeyValue() (Node, error) {
	tok, err := p.expect(TokenLCurly)
	if err != nil {
		return nil, err
	}
	tags := p.parseTags()
	keyTok, err := p.expect(TokenSymbol)
	if err != nil {
		return nil, err
	}
	children, err := p.parseExprSeq(TokenRCurly)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRCurly); err != nil {
		return nil, err
	}
	return NewKeyValueNode(&tok, keyTok.Text(), children, tags), nil
}

// parseObjectLiteral parses `{{tags* kv...}}`.
func (p *parser) parseObjectLiteral() (Node, error) {
	tok, err := p.expect(TokenDblLCurly)
	if err != nil {
		return nil, err
	}
	tags := p.parseTags()
	children := NewChildren(AdmitKeyValueOnly)
	for p.cur().Kind != TokenDblRCurly {
		if p.cur().Kind == TokenEOF {
			return nil, p.errorf("unexpected end of input, expected }}")
		}
		kv, err := p.parseKeyValue()
		if err != nil {
			return nil, err
		}
		if err := children.Add(kv); err != nil {
			return nil, p.errorf("%s", err.Error())
		}
	}
	if _, err := p.expect(TokenDblRCurly); err != nil {
		return nil, err
	}
	return NewObjectLiteralNode(&tok, children, tags), nil
}

func parseIntLiteral(text string) value.Value {
	var n int64
	neg := false
	i := 0
	if text[0] == '+' || text[0] == '-' {
		neg = text[0] == '-'
		i++
	}
	for ; i < len(text); i++ {
		n = n*10 + int64(text[i]-'0')
	}
	if neg {
		n = -n
	}
	return value.NewInt(int32(n))
}

func parseFloatLiteral(text string) value.Value {
	var f float64
	neg := false
	i := 0
	if text[0] == '+' || text[0] == '-' {
		neg = text[0] == '-'
		i++
	}
	for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
		f = f*10 + float64(text[i]-'0')
	}
	if i < len(text) && text[i] == '.' {
		i++
		frac := 0.1
		for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
			f += float64(text[i]-'0') * frac
			frac /= 10
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		expNeg := false
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			expNeg = text[i] == '-'
			i++
		}
		exp := 0
		for ; i < len(text) && text[i] >= '0' && text[i] <= '9'; i++ {
			exp = exp*10 + int(text[i]-'0')
		}
		if expNeg {
			exp = -exp
		}
		for ; exp > 0; exp-- {
			f *= 10
		}
		for ; exp < 0; exp++ {
			f /= 10
		}
	}
	if neg {
		f = -f
	}
	return value.NewFloat(float32(f))
}
