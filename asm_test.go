package pike

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProgramHandwritten(t *testing.T) {
	listing := `
; a+ by hand
start:
    char a
    split start end ; loop while the input cooperates
end:
    match
`
	prog, err := ReadProgram(listing)
	require.NoError(t, err)
	require.Equal(t, 3, prog.Len())

	length, _ := Execute(prog, "aaa")
	assert.Equal(t, 3, length)

	length, _ = Execute(prog, "b")
	assert.Equal(t, -1, length)
}

func TestReadProgramStackedLabels(t *testing.T) {
	listing := `
one:
two:
    char x
    jump one
`
	prog, err := ReadProgram(listing)
	require.NoError(t, err)
	require.Equal(t, 2, prog.Len())
	assert.Equal(t, 0, prog.code[1].x)
}

func TestReadProgramSaveAndRanges(t *testing.T) {
	listing := `
    save 0
    range a-z 0-9 ---
    nrange x-x
    save 1
    match
`
	prog, err := ReadProgram(listing)
	require.NoError(t, err)

	assert.Equal(t, 1, prog.NumCaptures())

	length, saved := Execute(prog, "7q")
	assert.Equal(t, 2, length)
	assert.Equal(t, []int{0, 2}, saved)

	length, _ = Execute(prog, "7x")
	assert.Equal(t, -1, length)
}

func TestReadProgramErrors(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		message string
	}{
		{"unknown opcode", "    frob x", `unknown opcode "frob"`},
		{"undefined label", "    jump nowhere", `label "nowhere" not found`},
		{"char arity", "    char", "char requires 1 operands"},
		{"match arity", "    match now", "match requires 0 operands"},
		{"split arity", "L1:\n    split L1", "split requires 2 operands"},
		{"negative save", "    save -1", "nonnegative"},
		{"garbled save", "    save x", "nonnegative"},
		{"malformed label", "    two words:", "malformed label"},
		{"malformed range pair", "    range az", "malformed range pair"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prog, err := ReadProgram(test.listing)
			require.Error(t, err)
			assert.Nil(t, prog)
			assert.Contains(t, err.Error(), test.message)
			assert.IsType(t, SyntaxError{}, err)
		})
	}
}

func TestReadProgramErrorLineNumbers(t *testing.T) {
	listing := "    match\n    match\n    bogus\n"
	_, err := ReadProgram(listing)
	require.Error(t, err)

	serr, ok := err.(SyntaxError)
	require.True(t, ok)
	assert.Equal(t, 3, serr.Pos)
}

func TestWriteProgramLabelsOnlyTargets(t *testing.T) {
	prog := MustCompile("a*bc")
	text := prog.String()

	// exactly the three jump/split targets get labels
	assert.Equal(t, 3, strings.Count(text, ":\n"))
	for _, line := range strings.Split(text, "\n") {
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "    "), "code line %q must be indented", line)
	}
}

func TestRoundTrip(t *testing.T) {
	patterns := []string{
		"a",
		"abc",
		"a*",
		"a*?",
		"a+b?",
		"(a+)(b+)",
		"(ab)+|c*",
		"[a-z0-9-]+",
		"[^x-z]?.",
		"((a|b)*c)?d",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			prog, err := Compile(pattern)
			require.NoError(t, err)

			text := prog.String()
			reread, err := ReadProgram(text)
			require.NoError(t, err)

			// identical instruction streams, and a fixed
			// point of the text form
			assert.Equal(t, prog.code, reread.code)
			assert.Equal(t, text, reread.String())
		})
	}
}

func TestWriteProgramToWriter(t *testing.T) {
	var sb strings.Builder
	prog := MustCompile("ab")
	require.NoError(t, WriteProgram(prog, &sb))
	assert.Equal(t, "    char a\n    char b\n    match\n", sb.String())
}
