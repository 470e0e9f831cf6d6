package pike

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("valid pattern", func(t *testing.T) {
		prog, err := Compile("(a|b)*c")
		require.NoError(t, err)
		require.NotNil(t, prog)
		assert.Equal(t, 1, prog.NumCaptures())
	})

	t.Run("syntax error", func(t *testing.T) {
		prog, err := Compile("(ab")
		require.Error(t, err)
		assert.Nil(t, prog)
		assert.IsType(t, SyntaxError{}, err)
	})
}

func TestMustCompile(t *testing.T) {
	assert.NotPanics(t, func() { MustCompile("a+b") })
	assert.Panics(t, func() { MustCompile("a)") })
}

func TestNumCaptures(t *testing.T) {
	tests := []struct {
		pattern string
		groups  int
	}{
		{"abc", 0},
		{"(a)", 1},
		{"(a)(b)", 2},
		{"((a)b)", 2},
		{"(a(b(c)))d", 3},
	}
	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			prog := MustCompile(test.pattern)
			assert.Equal(t, test.groups, prog.NumCaptures())
		})
	}
}

func TestCompileAndExecute(t *testing.T) {
	t.Run("escapes match literally", func(t *testing.T) {
		length, _ := Execute(MustCompile(`\(\[\*\\`), `([*\`)
		assert.Equal(t, 4, length)
	})

	t.Run("newline escape", func(t *testing.T) {
		length, _ := Execute(MustCompile(`a\nb`), "a\nb")
		assert.Equal(t, 3, length)
	})

	t.Run("alternation binds looser than concatenation", func(t *testing.T) {
		prog := MustCompile("ab|cd")
		length, _ := Execute(prog, "cd")
		assert.Equal(t, 2, length)
		length, _ = Execute(prog, "ad")
		assert.Equal(t, -1, length)
	})

	t.Run("quantifier binds tighter than concatenation", func(t *testing.T) {
		length, _ := Execute(MustCompile("ab*"), "abbb")
		assert.Equal(t, 4, length)
	})
}
