package pike

// thread is one live state of the simulated NFA: a program counter
// plus the capture positions recorded so far.  The saved slice is
// uniquely owned by its thread; split clones it, match hands it to
// the caller.
type thread struct {
	pc    int
	saved []int
}

// threadList holds at most one thread per instruction, which is what
// the lastVisit check in addThread guarantees.
type threadList struct {
	threads []thread
}

func newThreadList(n int) *threadList {
	return &threadList{threads: make([]thread, 0, n)}
}

func (tl *threadList) add(pc int, saved []int) {
	tl.threads = append(tl.threads, thread{pc: pc, saved: saved})
}

func (tl *threadList) reset() {
	tl.threads = tl.threads[:0]
}

// machine executes one match.  The lastVisit scratch lives here
// rather than on the instructions, so the program stays read-only and
// any number of machines can share it.
type machine struct {
	prog  *Program
	input []rune

	// lastVisit[pc] is the input position at which instruction pc
	// was most recently entered, or -1 for never.
	lastVisit []int

	nsave int

	// entered counts instructions entered during the current
	// step; it can never exceed the program length.  maxEntered
	// keeps the high-water mark across the whole run.
	entered    int
	maxEntered int
}

func newMachine(prog *Program, input string) *machine {
	lastVisit := make([]int, prog.Len())
	for i := range lastVisit {
		lastVisit[i] = -1
	}
	return &machine{
		prog:      prog,
		input:     []rune(input),
		lastVisit: lastVisit,
		nsave:     prog.numSaves(),
	}
}

// addThread schedules pc onto list, resolving every instruction that
// doesn't consume input on the way: jumps are followed, splits fork
// (first target before second, which is what gives earlier
// alternatives and greedy branches their priority), and saves record
// sp.  The lastVisit check drops duplicate entries, bounding the work
// per input position by the program length.
func (m *machine) addThread(list *threadList, pc int, saved []int, sp int) {
	if m.lastVisit[pc] == sp {
		return
	}
	m.lastVisit[pc] = sp
	m.entered++

	in := &m.prog.code[pc]
	switch in.op {
	case opJump:
		m.addThread(list, in.x, saved, sp)
	case opSplit:
		clone := make([]int, len(saved))
		copy(clone, saved)
		m.addThread(list, in.x, saved, sp)
		m.addThread(list, in.y, clone, sp)
	case opSave:
		saved[in.slot] = sp
		m.addThread(list, pc+1, saved, sp)
	default:
		list.add(pc, saved)
	}
}

// member tests a rune against the instruction's inclusive endpoint
// pairs.
func member(in *Instr, c rune) bool {
	for i := 0; i+1 < len(in.ranges); i += 2 {
		if c >= in.ranges[i] && c <= in.ranges[i+1] {
			return true
		}
	}
	return false
}

func (m *machine) run() (int, []int) {
	var (
		curr  = newThreadList(m.prog.Len())
		next  = newThreadList(m.prog.Len())
		match = -1

		saved []int
	)

	m.addThread(curr, 0, make([]int, m.nsave), 0)

	for sp := 0; len(curr.threads) > 0; sp++ {
		m.entered = 0

		for _, t := range curr.threads {
			in := &m.prog.code[t.pc]

			switch in.op {
			case opChar:
				if sp < len(m.input) && m.input[sp] == in.ch {
					m.addThread(next, t.pc+1, t.saved, sp+1)
				}
			case opAny:
				if sp < len(m.input) {
					m.addThread(next, t.pc+1, t.saved, sp+1)
				}
			case opRange:
				if sp < len(m.input) && member(in, m.input[sp]) {
					m.addThread(next, t.pc+1, t.saved, sp+1)
				}
			case opNRange:
				if sp < len(m.input) && !member(in, m.input[sp]) {
					m.addThread(next, t.pc+1, t.saved, sp+1)
				}
			case opMatch:
				// Threads after this one have lower
				// priority and must not run this step.
				match = sp
				saved = t.saved
			default:
				panic("pike: undefined opcode reached the step loop")
			}

			if in.op == opMatch {
				break
			}
		}

		if m.entered > m.maxEntered {
			m.maxEntered = m.entered
		}

		curr, next = next, curr
		next.reset()
	}

	return match, saved
}

// Execute runs a program against input and returns the rune position
// at which the match completed, along with the capture slots recorded
// by the winning thread.  A result of -1 means the input didn't
// match; that is a normal outcome, not an error.
func Execute(prog *Program, input string) (int, []int) {
	m := newMachine(prog, input)
	return m.run()
}
