package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	revflow "github.com/gnoverse/revflow"
	"github.com/gnoverse/revflow/flow"
	"github.com/gnoverse/revflow/internal/program"
	"github.com/gnoverse/revflow/revert"
)

// variable for flags
var (
	jsonOutput bool
	outPath    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Classify revert behaviour and prune the flow graphs",
	Long: `Loads program descriptions, classifies every function and modifier body by
its revert behaviour and prunes call sites into always-reverting targets.
Example) revflow analyze program.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide program description paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		runAnalyze(ctx, logger, args, jsonOutput, outPath)
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output states in JSON format")
	analyzeCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	keyStyle     = color.New(color.FgYellow)
	revertStyle  = color.New(color.FgRed, color.Bold)
	exitStyle    = color.New(color.FgGreen)
	passStyle    = color.New(color.FgYellow, color.Bold)
	unknownStyle = color.New(color.FgMagenta, color.Bold)
)

func runAnalyze(ctx context.Context, logger *zap.Logger, paths []string, isJSON bool, jsonPath string) {
	var bar *progressbar.ProgressBar
	if len(paths) > 1 && !isJSON {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("analyzing"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
	}

	byFile := make(map[string]map[string]string)
	failed := false
	for _, path := range paths {
		if ctx.Err() != nil {
			fmt.Println("Analysis timed out")
			os.Exit(1)
		}

		result, err := analyzePath(path)
		if err != nil {
			logger.Error("Error analyzing program", zap.String("path", path), zap.Error(err))
			failed = true
			continue
		}
		if isJSON {
			states := make(map[string]string, len(result.States))
			for _, key := range result.Registry.Keys() {
				states[key.String()] = result.States[key].String()
			}
			byFile[path] = states
		} else {
			printStates(path, result)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Println()
	}

	if isJSON {
		writeJSON(logger, byFile, jsonPath)
	}
	if failed {
		os.Exit(1)
	}
}

func analyzePath(path string) (*revflow.Result, error) {
	prog, err := program.LoadFile(path)
	if err != nil {
		return nil, err
	}
	arena := flow.NewArena()
	reg := flow.Build(arena, program.NewBuilder(), prog)
	return revflow.Run(logger, reg), nil
}

func printStates(path string, result *revflow.Result) {
	fmt.Println(fileStyle.Sprint(path))
	for _, key := range result.Registry.Keys() {
		state := result.States[key]
		fmt.Printf("  %s %s\n",
			keyStyle.Sprintf("%-32s", key.String()),
			stateStyle(state).Sprint(state.String()))
	}
}

func stateStyle(state revert.State) *color.Color {
	switch state {
	case revert.AllPathsRevert:
		return revertStyle
	case revert.HasNonRevertingPath:
		return exitStyle
	case revert.ModifierRevertPassthrough:
		return passStyle
	default:
		return unknownStyle
	}
}

func writeJSON(logger *zap.Logger, byFile map[string]map[string]string, jsonPath string) {
	d, err := json.Marshal(byFile)
	if err != nil {
		logger.Error("Error marshalling states to JSON", zap.Error(err))
		return
	}
	if jsonPath == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(jsonPath, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
