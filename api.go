package pike

import "fmt"

// Compile parses a pattern and generates its bytecode program.
func Compile(pattern string) (*Program, error) {
	tree, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Codegen(tree), nil
}

// MustCompile is Compile for patterns known to be valid; it panics on
// a syntax error.
func MustCompile(pattern string) *Program {
	prog, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("pike: Compile(%q): %s", pattern, err))
	}
	return prog
}
