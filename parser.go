package mylang

// Parser implements the arity-directed, single-pass parser of spec.md
// §4.2: message sends consume however many following primaries the
// target selector's declared arity calls for, and method definitions are
// installed into a shadow table as soon as they are parsed so that later
// uses in the same program resolve correctly (spec.md §9).
//
// Grounded on iolang/parse.go's single-pass parseRecurse structure (build
// left to right, recurse into brackets, look one token ahead to decide
// what to do) though the grammar itself is entirely different: Io has no
// static arity, MyLang's defining mechanic per spec.md §1.
type Parser struct {
	toks  []Token
	pos   int
	arity map[string]int // shadow table: selector name -> declared arity
}

// NewParser creates a Parser over a token stream, pre-seeding the shadow
// table with the arities of the built-in methods spec.md §6's bootstrap
// script installs, so that a fresh program can use arithmetic/comparison
// operators before it ever redefines them.
func NewParser(toks []Token) *Parser {
	return &Parser{
		toks: toks,
		arity: map[string]int{
			"+": 1, "-": 1, "*": 1, "/": 1, "%": 1,
			"<": 1, "<=": 1, "==": 1, ">=": 1, ">": 1,
			"clone": 0, "print": 0, "asString": 0,
			"between": 2, "contains": 1,
		},
	}
}

// ParseProgram parses an entire token stream (lexer output, already
// including the trailing EOF) into a Program node.
func ParseProgram(toks []Token) (*Program, *Error) {
	p := NewParser(toks)
	pos := Position{Line: 1, Col: 1}
	if len(toks) > 0 {
		pos = toks[0].Pos
	}
	stmts, err := p.parseStmtList(false)
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != EOF {
		return nil, p.errf("unexpected token %s at top level", p.peek())
	}
	return &Program{baseNode: baseNode{Pos: pos}, Stmts: stmts}, nil
}

func (p *Parser) peek() Token       { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) errf(format string, args ...interface{}) *Error {
	return newErrorf(ParseError, p.peek().Pos, format, args...)
}

func (p *Parser) expect(k TokenKind) (Token, *Error) {
	if p.peek().Kind != k {
		return Token{}, p.errf("expected %s, got %s", k, p.peek())
	}
	return p.advance(), nil
}

// skipNewlines consumes any run of blank statement separators.
func (p *Parser) skipNewlines() {
	for p.peek().Kind == NEWLINE {
		p.advance()
	}
}

// parseStmtList parses statements until DEDENT (inBlock == true) or EOF
// (inBlock == false).
func (p *Parser) parseStmtList(inBlock bool) ([]Node, *Error) {
	var stmts []Node
	p.skipNewlines()
	for {
		if inBlock && p.peek().Kind == DEDENT {
			break
		}
		if !inBlock && p.peek().Kind == EOF {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	return stmts, nil
}

// parseBlock parses "NEWLINE INDENT stmt* DEDENT" per spec.md §4.2. It
// assumes the caller has already confirmed (via peekBlockStart) that a
// block follows.
func (p *Parser) parseBlock() (*Block, *Error) {
	pos := p.peek().Pos
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtList(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return &Block{baseNode: baseNode{Pos: pos}, Stmts: stmts}, nil
}

// peekBlockStart reports whether the upcoming tokens are "NEWLINE INDENT",
// i.e. whether an indented block argument follows the current position.
func (p *Parser) peekBlockStart() bool {
	return p.peek().Kind == NEWLINE && p.peekAt(1).Kind == INDENT
}

// maybeParseBlock parses a trailing block argument if one is present,
// returning nil otherwise.
func (p *Parser) maybeParseBlock() (*Block, *Error) {
	if p.peekBlockStart() {
		return p.parseBlock()
	}
	return nil, nil
}

// parseStatement parses one top-level statement: a control-flow
// statement, a method definition, an assignment, or a bare expression.
func (p *Parser) parseStatement() (Node, *Error) {
	switch p.peek().Kind {
	case RETURN:
		pos := p.advance().Pos
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Return{baseNode: baseNode{Pos: pos}, Expr: expr}, nil
	case BREAK:
		pos := p.advance().Pos
		return &Break{baseNode: baseNode{Pos: pos}}, nil
	case CONTINUE:
		pos := p.advance().Pos
		return &Continue{baseNode: baseNode{Pos: pos}}, nil
	}
	return p.parseAssignmentOrExpr()
}

// isSelectorToken reports whether tok can appear as a message selector in
// chain position: ordinary identifiers, operator runs (also lexed as
// IDENT), and the "clone" keyword, which spec.md §4.1 reserves lexically
// but which behaves as an ordinary selector once bootstrap has installed
// Object clone.
func isSelectorToken(tok Token) bool {
	return tok.Kind == IDENT || tok.Kind == CLONE
}

// parseAssignmentOrExpr implements spec.md §4.2's statement-shape
// disambiguation and §9's first Open Question decision: it first tries to
// read the statement as "ReceiverExpr IDENT+ =", and only if that shape is
// confirmed by finding ASSIGN does it commit to an Assignment or
// MethodDef; otherwise it backtracks and parses an ordinary
// arity-directed expression.
func (p *Parser) parseAssignmentOrExpr() (Node, *Error) {
	save := p.pos
	receiver, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	// Bare "IDENT =" is a variable bind.
	if p.peek().Kind == ASSIGN {
		if id, ok := receiver.(*Identifier); ok {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &Assignment{baseNode: baseNode{Pos: id.Pos}, Target: LValue{Name: id.Name}, Value: value}, nil
		}
		return nil, p.errf("cannot assign to a non-identifier expression")
	}

	// Look for "IDENT+ =" following the receiver.
	if isSelectorToken(p.peek()) {
		var names []string
		scan := p.pos
		for isSelectorToken(p.toks[scan]) {
			names = append(names, p.toks[scan].Text)
			scan++
		}
		if p.toks[scan].Kind == ASSIGN {
			p.pos = scan + 1 // consume the collected idents and '='
			name := names[0]
			params := names[1:]
			return p.finishMethodDefOrSlotAssign(receiver, name, params)
		}
	}

	// Not an assignment shape after all; reparse from scratch as a plain
	// arity-directed expression chain.
	p.pos = save
	return p.parseExpression()
}

// finishMethodDefOrSlotAssign decides, from the RHS shape, whether
// "receiver name params... =" is a method definition or (when params is
// empty) a slot assignment, per spec.md §4.2.
func (p *Parser) finishMethodDefOrSlotAssign(receiver Node, name string, params []string) (Node, *Error) {
	pos := receiver.Position()
	switch {
	case p.peek().Kind == RETURN:
		// Register this selector's arity in the shadow table before parsing
		// the body, so a recursive call to its own selector inside the body
		// resolves against its own arity instead of defaulting to 0.
		p.arity[name] = len(params)
		retPos := p.advance().Pos
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body := &Block{baseNode: baseNode{Pos: retPos}, Stmts: []Node{&Return{baseNode: baseNode{Pos: retPos}, Expr: expr}}}
		return &MethodDef{baseNode: baseNode{Pos: pos}, Receiver: receiver, Name: name, Params: params, Body: body}, nil
	case p.peekBlockStart():
		// Same ordering reason as the RETURN branch above.
		p.arity[name] = len(params)
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &MethodDef{baseNode: baseNode{Pos: pos}, Receiver: receiver, Name: name, Params: params, Body: body}, nil
	default:
		if len(params) != 0 {
			return nil, p.errf("method definition for %q requires a return expression or indented block body", name)
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Assignment{
			baseNode: baseNode{Pos: pos},
			Target:   LValue{Receiver: receiver, Selector: name},
			Value:    value,
		}, nil
	}
}

// parseExpression parses a full arity-directed message chain starting
// from a fresh primary expression.
func (p *Parser) parseExpression() (Node, *Error) {
	recv, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseMessageChain(recv)
}

// parseArgument parses one positional argument: a primary, extended by any
// immediately following zero-arity ("unary") selectors, so that
// "* self value" passes "self value" — not bare self — as the multiplier
// (spec.md §4.2's factorial example relies on this). A selector with
// declared arity 1 or more is never folded into an argument's own chain:
// it belongs to the enclosing message chain, the way binary operators bind
// looser than unary sends in a Smalltalk-family grammar. Two chain-shaped
// arguments placed back to back are still ambiguous under this rule;
// parentheses force re-grouping there, per §4.2's escape hatch (see
// DESIGN.md).
func (p *Parser) parseArgument() (Node, *Error) {
	recv, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if !isSelectorToken(tok) || p.arity[tok.Text] != 0 {
			return recv, nil
		}
		p.advance()
		selector := tok.Text
		if tok.Kind == CLONE {
			selector = "clone"
		}
		recv = &Message{baseNode: baseNode{Pos: tok.Pos}, Receiver: recv, Selector: selector}
	}
}

// parseMessageChain repeatedly sends the next selector to the current
// receiver, consuming as many following primaries as the selector's
// declared arity calls for (spec.md §4.2, steps 1-5).
func (p *Parser) parseMessageChain(recv Node) (Node, *Error) {
	for {
		tok := p.peek()
		switch tok.Kind {
		case IF_TRUE, IF_FALSE:
			msg, err := p.parseIfMessage(recv, tok.Kind == IF_TRUE)
			if err != nil {
				return nil, err
			}
			recv = msg
			continue
		case WHILE_TRUE:
			p.advance()
			block, err := p.maybeParseBlock()
			if err != nil {
				return nil, err
			}
			recv = &Message{baseNode: baseNode{Pos: tok.Pos}, Receiver: recv, Selector: "whileTrue", Block: block}
			continue
		}
		if !isSelectorToken(tok) {
			return recv, nil
		}
		p.advance()
		selector := tok.Text
		if tok.Kind == CLONE {
			selector = "clone"
		}
		n := p.arity[selector] // unknown selectors default to arity 0, spec.md §4.2 step 3
		args := make([]Node, 0, n)
		for i := 0; i < n; i++ {
			arg, err := p.parseArgument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		block, err := p.maybeParseBlock()
		if err != nil {
			return nil, err
		}
		recv = &Message{baseNode: baseNode{Pos: tok.Pos}, Receiver: recv, Selector: selector, Args: args, Block: block}
	}
}

// parseIfMessage parses ifTrue (or standalone ifFalse), then checks for an
// immediately following ifFalse to fold into a single two-block message,
// per SPEC_FULL.md Expansion 4 decision 2.
func (p *Parser) parseIfMessage(recv Node, isIfTrue bool) (Node, *Error) {
	tok := p.advance()
	selector := "ifFalse"
	if isIfTrue {
		selector = "ifTrue"
	}
	block, err := p.maybeParseBlock()
	if err != nil {
		return nil, err
	}
	msg := &Message{baseNode: baseNode{Pos: tok.Pos}, Receiver: recv, Selector: selector, Block: block}
	if isIfTrue && p.peek().Kind == IF_FALSE {
		p.advance()
		elseBlock, err := p.maybeParseBlock()
		if err != nil {
			return nil, err
		}
		msg.ElseBlock = elseBlock
	}
	return msg, nil
}

// parsePrimary parses a single atomic expression: a literal, an
// identifier, or a parenthesized sub-expression (spec.md §3's AST, §4.2's
// "parentheses force re-grouping").
func (p *Parser) parsePrimary() (Node, *Error) {
	tok := p.peek()
	switch tok.Kind {
	case NUMBER:
		p.advance()
		return &Literal{baseNode: baseNode{Pos: tok.Pos}, Kind: LitNumber, Num: tok.NumVal, IsFloat: tok.IsFloat}, nil
	case STRING:
		p.advance()
		return &Literal{baseNode: baseNode{Pos: tok.Pos}, Kind: LitString, Str: tok.Text}, nil
	case TRUE:
		p.advance()
		return &Literal{baseNode: baseNode{Pos: tok.Pos}, Kind: LitBool, Bool: true}, nil
	case FALSE:
		p.advance()
		return &Literal{baseNode: baseNode{Pos: tok.Pos}, Kind: LitBool, Bool: false}, nil
	case IDENT:
		p.advance()
		return &Identifier{baseNode: baseNode{Pos: tok.Pos}, Name: tok.Text}, nil
	case CLONE:
		// "clone" appearing where a primary is expected (e.g. as a method
		// parameter name collected from a generic identifier run) is
		// treated as a plain identifier reference.
		p.advance()
		return &Identifier{baseNode: baseNode{Pos: tok.Pos}, Name: "clone"}, nil
	case LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &Paren{baseNode: baseNode{Pos: tok.Pos}, Inner: inner}, nil
	}
	return nil, p.errf("unexpected token %s, expected an expression", tok)
}
