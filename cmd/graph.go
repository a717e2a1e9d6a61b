package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	revflow "github.com/gnoverse/revflow"
	"github.com/gnoverse/revflow/flow"
	"github.com/gnoverse/revflow/internal/program"
)

// variable for flags
var (
	graphContract string
	graphCallable string
	graphOutput   string
	graphRaw      bool
)

var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Render a callable's flow graph",
	Long: `Outputs the flow graph of one callable in GraphViz DOT format, after
pruning unless --raw is given.
Example) revflow graph --contract A --callable f program.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one program description path")
			os.Exit(1)
		}
		runGraph(logger, args[0], graphContract, graphCallable, graphOutput, graphRaw)
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphContract, "contract", "", "Contract context of the callable (empty for free functions)")
	graphCmd.Flags().StringVar(&graphCallable, "callable", "", "Function or modifier name")
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "Output path for the DOT file")
	graphCmd.Flags().BoolVar(&graphRaw, "raw", false, "Render the graph before pruning")
}

func runGraph(logger *zap.Logger, path, contractName, callableName, output string, raw bool) {
	prog, err := program.LoadFile(path)
	if err != nil {
		logger.Error("Failed to load program", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}

	arena := flow.NewArena()
	reg := flow.Build(arena, program.NewBuilder(), prog)
	if !raw {
		revflow.Run(logger, reg)
	}

	for _, key := range reg.Keys() {
		if key.Callable.Name() != callableName {
			continue
		}
		if contractName == "" && key.Contract != nil {
			continue
		}
		if contractName != "" && (key.Contract == nil || key.Contract.Name() != contractName) {
			continue
		}

		var buf strings.Builder
		reg.Flow(key).WriteDot(&buf, key.String())
		if output == "" {
			fmt.Print(buf.String())
			return
		}
		if err := os.WriteFile(output, []byte(buf.String()), 0o644); err != nil {
			logger.Error("Failed to write DOT file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("DOT file created: %s\n", output)
		return
	}

	fmt.Printf("Callable not found: %s\n", callableName)
	os.Exit(1)
}
