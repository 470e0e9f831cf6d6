package pike

// parser is a recursive descent parser for the regex surface syntax.
//
//	REGEX -> SUB (Pipe REGEX)?
//	SUB   -> EXPR (SUB)?
//	EXPR  -> TERM ((Plus|Star|Question) (Question)?)?
//	TERM  -> Char | Dot | Special
//	      -> LParen REGEX RParen
//	      -> LBracket (Caret)? CLASS RBracket
//	CLASS -> Char Minus Char CLASS?
//	      -> Char CLASS?
//	      -> Minus CLASS?
type parser struct {
	lex *lexer
}

// Parse turns a pattern into the parse tree consumed by the code
// generator.
func Parse(pattern string) (*Tree, error) {
	p := &parser{lex: newLexer(pattern)}
	tree, err := p.parseRegex()
	if err != nil {
		return nil, err
	}
	if err := p.expect(Sym_Eof); err != nil {
		return nil, err
	}
	return tree, nil
}

func (p *parser) accept(s Sym) bool {
	if p.lex.tok.Sym == s {
		p.lex.next()
		return true
	}
	return false
}

func (p *parser) expect(s Sym) error {
	if p.accept(s) {
		return nil
	}
	return syntaxErrorf(p.lex.index, "expected %s, got %s", s, p.lex.tok.Sym)
}

func (p *parser) parseRegex() (*Tree, error) {
	sub, err := p.parseSub()
	if err != nil {
		return nil, err
	}
	if p.lex.tok.Sym == Sym_Pipe {
		pipe := terminal(p.lex.tok)
		p.lex.next()
		rest, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		return nonTerminal(NT_Regex, sub, pipe, rest), nil
	}
	return nonTerminal(NT_Regex, sub), nil
}

// startsTerm reports whether a symbol can begin a TERM, which is how
// SUB decides whether concatenation continues.
func startsTerm(s Sym) bool {
	switch s {
	case Sym_Char, Sym_Special, Sym_Dot, Sym_LParen, Sym_LBracket:
		return true
	}
	return false
}

func (p *parser) parseSub() (*Tree, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if startsTerm(p.lex.tok.Sym) {
		rest, err := p.parseSub()
		if err != nil {
			return nil, err
		}
		return nonTerminal(NT_Sub, expr, rest), nil
	}
	return nonTerminal(NT_Sub, expr), nil
}

func (p *parser) parseExpr() (*Tree, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	switch p.lex.tok.Sym {
	case Sym_Plus, Sym_Star, Sym_Question:
		quant := terminal(p.lex.tok)
		p.lex.next()
		if p.lex.tok.Sym == Sym_Question {
			lazy := terminal(p.lex.tok)
			p.lex.next()
			return nonTerminal(NT_Expr, term, quant, lazy), nil
		}
		return nonTerminal(NT_Expr, term, quant), nil
	}
	return nonTerminal(NT_Expr, term), nil
}

func (p *parser) parseTerm() (*Tree, error) {
	tok := p.lex.tok
	switch tok.Sym {
	case Sym_Char, Sym_Dot:
		p.lex.next()
		return nonTerminal(NT_Term, terminal(tok)), nil

	case Sym_Special:
		if tok.Ch == 0 {
			return nil, syntaxErrorf(p.lex.index, "trailing backslash")
		}
		p.lex.next()
		return nonTerminal(NT_Term, terminal(tok)), nil

	case Sym_LParen:
		p.lex.next()
		inner, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		if err := p.expect(Sym_RParen); err != nil {
			return nil, err
		}
		return nonTerminal(NT_Term,
			terminal(tok), inner, terminal(Token{Sym_RParen, ')'})), nil

	case Sym_LBracket:
		p.lex.next()
		var caret *Tree
		if p.lex.tok.Sym == Sym_Caret {
			caret = terminal(p.lex.tok)
			p.lex.next()
		}
		class, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		if err := p.expect(Sym_RBracket); err != nil {
			return nil, err
		}
		rb := terminal(Token{Sym_RBracket, ']'})
		if caret != nil {
			return nonTerminal(NT_Term, terminal(tok), caret, class, rb), nil
		}
		return nonTerminal(NT_Term, terminal(tok), class, rb), nil
	}
	return nil, syntaxErrorf(p.lex.index, "unexpected %s", tok.Sym)
}

// parseClass builds the right-linear list of class items.  An empty
// class is rejected outright rather than compiled into an instruction
// that can never match.
func (p *parser) parseClass() (*Tree, error) {
	if p.lex.tok.Sym == Sym_RBracket {
		return nil, syntaxErrorf(p.lex.index, "empty character class")
	}

	var items []*Tree
	tok := p.lex.tok
	switch tok.Sym {
	case Sym_Char:
		p.lex.next()
		items = append(items, terminal(tok))
		if p.lex.tok.Sym == Sym_Minus {
			items = append(items, terminal(p.lex.tok))
			p.lex.next()
			hi := p.lex.tok
			if hi.Sym != Sym_Char {
				return nil, syntaxErrorf(p.lex.index, "expected range endpoint, got %s", hi.Sym)
			}
			p.lex.next()
			items = append(items, terminal(hi))
		}
	case Sym_Minus:
		p.lex.next()
		items = append(items, terminal(tok))
	default:
		return nil, syntaxErrorf(p.lex.index, "unexpected %s in character class", tok.Sym)
	}

	if p.lex.tok.Sym != Sym_RBracket {
		rest, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		items = append(items, rest)
	}
	return nonTerminal(NT_Class, items...), nil
}
