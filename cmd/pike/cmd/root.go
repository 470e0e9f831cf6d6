package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krelba/pike"
)

var (
	asmOnly  bool
	treeOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "pike PROGRAM [input...]",
	Short: "Pike VM regex engine",
	Long: `Compiles a regular expression into bytecode and runs it against each
input with a Pike-style virtual machine.  PROGRAM is tried as a path
first: if a file exists there it is read as an assembly listing,
otherwise it is compiled as a pattern.  All diagnostics are prefixed
with ";;" so every dump stays a valid assembly listing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,

	SilenceUsage: true,
}

func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, ";; error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&asmOnly, "asm-only", false, "dump the program and exit")
	rootCmd.Flags().BoolVar(&treeOnly, "tree-only", false, "dump the parse tree and exit")
}

func run(cmd *cobra.Command, args []string) error {
	prog, err := load(args[0])
	if err != nil {
		return err
	}
	if treeOnly || asmOnly {
		return nil
	}

	fmt.Println(";; BEGIN TEST RUNS:")
	for _, input := range args[1:] {
		length, saved := pike.Execute(prog, input)
		if length < 0 {
			fmt.Printf(";; %q: no match\n", input)
			continue
		}
		fmt.Printf(";; %q: match(%d)", input, length)
		for i := 0; i+1 < len(saved); i += 2 {
			fmt.Printf(" (%d, %d)", saved[i], saved[i+1])
		}
		fmt.Println()
	}
	return nil
}

// load reads args[0] as an assembly file when one exists at that
// path, and compiles it as a pattern otherwise.
func load(arg string) (*pike.Program, error) {
	if text, err := os.ReadFile(arg); err == nil {
		prog, err := pike.ReadProgram(string(text))
		if err != nil {
			return nil, err
		}
		fmt.Println(";; BEGIN READ CODE:")
		fmt.Print(prog)
		return prog, nil
	}

	fmt.Printf(";; Regex: %q\n", arg)
	if treeOnly {
		tree, err := pike.Parse(arg)
		if err != nil {
			return nil, err
		}
		fmt.Print(tree.PrettyString())
		return nil, nil
	}

	prog, err := pike.Compile(arg)
	if err != nil {
		return nil, err
	}
	fmt.Println(";; BEGIN GENERATED CODE:")
	fmt.Print(prog)
	return prog, nil
}
