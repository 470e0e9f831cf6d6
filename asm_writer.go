package pike

import (
	"fmt"
	"io"
	"strings"
)

// WriteProgram emits a program in its assembly text form.  Only the
// instructions that some jump or split lands on get labels, numbered
// L1, L2, ... in instruction order, each on its own line before the
// instruction it names.
func WriteProgram(p *Program, w io.Writer) error {
	_, err := io.WriteString(w, writeProgram(p))
	return err
}

func writeProgram(p *Program) string {
	labels := make([]int, len(p.code))
	for _, in := range p.code {
		switch in.op {
		case opJump:
			labels[in.x] = 1
		case opSplit:
			labels[in.x] = 1
			labels[in.y] = 1
		}
	}

	n := 1
	for i, flagged := range labels {
		if flagged > 0 {
			labels[i] = n
			n++
		}
	}

	var s strings.Builder
	for i, in := range p.code {
		if labels[i] > 0 {
			fmt.Fprintf(&s, "L%d:\n", labels[i])
		}
		switch in.op {
		case opChar:
			fmt.Fprintf(&s, "    char %c\n", in.ch)
		case opAny:
			s.WriteString("    any\n")
		case opMatch:
			s.WriteString("    match\n")
		case opJump:
			fmt.Fprintf(&s, "    jump L%d\n", labels[in.x])
		case opSplit:
			fmt.Fprintf(&s, "    split L%d L%d\n", labels[in.x], labels[in.y])
		case opSave:
			fmt.Fprintf(&s, "    save %d\n", in.slot)
		case opRange, opNRange:
			s.WriteString("    ")
			s.WriteString(in.op.String())
			for j := 0; j+1 < len(in.ranges); j += 2 {
				fmt.Fprintf(&s, " %c-%c", in.ranges[j], in.ranges[j+1])
			}
			s.WriteString("\n")
		}
	}
	return s.String()
}
