package pike

// fragment is one future instruction in a singly linked list.  Every
// fragment carries a unique symbolic ID; jump and split targets inside
// fragment instructions refer to those IDs rather than positions, so
// the list can be spliced freely and the targets stay valid until the
// final flatten pass turns them into indices.
type fragment struct {
	in   Instr
	id   int
	next *fragment
}

type genState struct {
	id     int
	groups int
}

func (s *genState) newFrag(op opcode) *fragment {
	f := &fragment{in: Instr{op: op}, id: s.id}
	s.id++
	return f
}

// noTarget is join's marker for a list that doesn't end in a match;
// no fragment ever carries it as an ID.
const noTarget = -1

func lastFrag(f *fragment) *fragment {
	for f.next != nil {
		f = f.next
	}
	return f
}

func fragLen(f *fragment) int {
	n := 0
	for ; f != nil; f = f.next {
		n++
	}
	return n
}

// join concatenates fragment list b after a.  A match instruction in
// the middle of a becomes a jump to b's head, and any jump or split
// aimed at a's trailing match is redirected there too.  If a ends in a
// match it is deleted, since control now falls through into b.
func join(a, b *fragment) {
	lastID := noTarget
	if l := lastFrag(a); l.in.op == opMatch {
		lastID = l.id
	}

	f := a
	var prev *fragment
	for f.next != nil {
		if f.in.op == opMatch {
			f.in.op = opJump
			f.in.x = b.id
		}
		if (f.in.op == opJump || f.in.op == opSplit) && f.in.x == lastID {
			f.in.x = b.id
		}
		if f.in.op == opSplit && f.in.y == lastID {
			f.in.y = b.id
		}
		prev = f
		f = f.next
	}

	if f.in.op == opMatch && prev != nil {
		prev.next = b
	} else {
		f.next = b
	}
}

// Codegen translates a parse tree into a resolved program.  The tree
// must be well formed; feeding it anything else is a caller bug and
// panics.
func Codegen(tree *Tree) *Program {
	s := &genState{}
	f := genRegex(tree, s)

	targets := make([]int, s.id)
	i := 0
	for cur := f; cur != nil; cur = cur.next {
		targets[cur.id] = i
		i++
	}

	code := make([]Instr, 0, i)
	for cur := f; cur != nil; cur = cur.next {
		in := cur.in
		if in.op == opJump || in.op == opSplit {
			in.x = targets[in.x]
		}
		if in.op == opSplit {
			in.y = targets[in.y]
		}
		code = append(code, in)
	}
	return &Program{code: code}
}

func assertNT(t *Tree, nt NonTerminal) {
	if t == nil || t.IsTerminal() || t.NT != nt {
		panic("pike: malformed parse tree: expected " + ntNames[nt] + " node")
	}
}

func genRegex(t *Tree, s *genState) *fragment {
	assertNT(t, NT_Regex)
	sub := genSub(t.Children[0], s)
	if len(t.Children) != 3 {
		return sub
	}

	right := genRegex(t.Children[2], s)

	split := s.newFrag(opSplit)
	split.in.x = sub.id
	split.in.y = right.id
	split.next = sub

	// Both arms exit into a shared trailing match: the left arm
	// through the jump placed between them, the right arm by
	// falling through.
	match := s.newFrag(opMatch)
	jump := s.newFrag(opJump)
	jump.in.x = match.id
	jump.next = right
	join(jump, match)
	join(split, jump)
	return split
}

func genSub(t *Tree, s *genState) *fragment {
	assertNT(t, NT_Sub)
	e := genExpr(t.Children[0], s)
	if len(t.Children) == 2 {
		join(e, genSub(t.Children[1], s))
	}
	return e
}

func genExpr(t *Tree, s *genState) *fragment {
	assertNT(t, NT_Expr)
	f := genTerm(t.Children[0], s)
	if len(t.Children) == 1 {
		return f
	}

	// The first split target gets execution priority, so the
	// greedy form keeps the repeat branch first and the lazy form
	// (trailing question mark in the tree) swaps the two.
	greedy := len(t.Children) == 2

	switch t.Children[1].Tok.Sym {
	case Sym_Star:
		split := s.newFrag(opSplit)
		jump := s.newFrag(opJump)
		match := s.newFrag(opMatch)
		split.in.x = f.id
		split.in.y = match.id
		if !greedy {
			split.in.x, split.in.y = split.in.y, split.in.x
		}
		jump.in.x = split.id
		split.next = f
		jump.next = match
		join(split, jump)
		return split

	case Sym_Plus:
		split := s.newFrag(opSplit)
		match := s.newFrag(opMatch)
		split.in.x = f.id
		split.in.y = match.id
		if !greedy {
			split.in.x, split.in.y = split.in.y, split.in.x
		}
		join(f, split)
		split.next = match
		return f

	case Sym_Question:
		split := s.newFrag(opSplit)
		match := s.newFrag(opMatch)
		split.in.x = f.id
		split.in.y = match.id
		if !greedy {
			split.in.x, split.in.y = split.in.y, split.in.x
		}
		split.next = f
		join(f, match)
		return split
	}
	panic("pike: malformed EXPR node")
}

func genTerm(t *Tree, s *genState) *fragment {
	assertNT(t, NT_Term)

	if len(t.Children) == 1 {
		tok := t.Children[0].Tok
		switch tok.Sym {
		case Sym_Char:
			f := s.newFrag(opChar)
			f.in.ch = tok.Ch
			f.next = s.newFrag(opMatch)
			return f
		case Sym_Dot:
			f := s.newFrag(opAny)
			f.next = s.newFrag(opMatch)
			return f
		case Sym_Special:
			panic("pike: special escapes have no code generation rule")
		}
		panic("pike: malformed TERM node")
	}

	if len(t.Children) == 3 && t.Children[0].Tok.Sym == Sym_LParen {
		k := s.groups
		s.groups++

		open := s.newFrag(opSave)
		open.in.slot = 2 * k
		open.next = genRegex(t.Children[1], s)

		closeFrag := s.newFrag(opSave)
		closeFrag.in.slot = 2*k + 1
		closeFrag.next = s.newFrag(opMatch)

		join(open, closeFrag)
		return open
	}

	if len(t.Children) == 3 || len(t.Children) == 4 {
		negated := len(t.Children) == 4
		class := t.Children[1]
		if negated {
			class = t.Children[2]
		}
		ranges := classRanges(class)

		op := opRange
		if negated {
			op = opNRange
		}
		f := s.newFrag(op)
		f.in.slot = len(ranges) / 2
		f.in.ranges = ranges
		f.next = s.newFrag(opMatch)
		return f
	}

	panic("pike: malformed TERM node")
}

// classRanges lowers the right-linear CLASS list into flattened
// inclusive endpoint pairs.  A bare character c contributes c..c, and
// so does a bare dash.
func classRanges(t *Tree) []rune {
	var out []rune
	for t != nil {
		assertNT(t, NT_Class)
		items := t.Children
		var rest *Tree
		if n := len(items); n > 0 && !items[n-1].IsTerminal() {
			rest = items[n-1]
			items = items[:n-1]
		}
		switch len(items) {
		case 1:
			c := items[0].Tok.Ch
			out = append(out, c, c)
		case 3:
			out = append(out, items[0].Tok.Ch, items[2].Tok.Ch)
		default:
			panic("pike: malformed CLASS node")
		}
		t = rest
	}
	return out
}
