// Package main is the entry point for the env2cc CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harlanmb/env2cc/internal/logger"
	"github.com/harlanmb/env2cc/pkg/api"
	"github.com/harlanmb/env2cc/pkg/config"
	"github.com/harlanmb/env2cc/pkg/engine"
	"github.com/harlanmb/env2cc/pkg/project"
	"github.com/harlanmb/env2cc/pkg/smfio"
	"github.com/harlanmb/env2cc/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile  string
	baseCC      int
	targetTrack string
	saveProject bool
	serverPort  int
	debug       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "env2cc",
	Short: "Convert project automation envelopes to MIDI CC events",
	Long: `env2cc reads a YAML project description (tracks, automation envelopes,
MIDI items), converts every selected track's envelope breakpoints into
MIDI CC events on a "Target" track, merges the resulting items into one,
and exports the result as a Standard MIDI File.

Examples:
  env2cc process song.yaml -o song.mid
  env2cc process song.yaml --base-cc 32 --save-project
  env2cc tracks song.yaml
  env2cc merge song.yaml
  env2cc export song.yaml Target -o target.mid
  env2cc tui
  env2cc serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var processCmd = &cobra.Command{
	Use:   "process <project.yaml>",
	Short: "Map envelopes to CC events, merge, and export a .mid file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

var tracksCmd = &cobra.Command{
	Use:   "tracks <project.yaml>",
	Short: "List the project's tracks with envelope and item counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracks,
}

var mergeCmd = &cobra.Command{
	Use:   "merge <project.yaml>",
	Short: "Merge the target track's MIDI items without mapping",
	Args:  cobra.ExactArgs(1),
	RunE:  runMerge,
}

var exportCmd = &cobra.Command{
	Use:   "export <project.yaml> <track>",
	Short: "Export a track's MIDI items as a .mid file",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Verbose logging")

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")
	processCmd.Flags().IntVar(&baseCC, "base-cc", engine.DefaultBaseCC, "First CC controller number")
	processCmd.Flags().StringVar(&targetTrack, "target", engine.DefaultTargetTrack, "Destination track name")
	processCmd.Flags().BoolVar(&saveProject, "save-project", false, "Write the mutated project back to the input file")

	mergeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output project file path (default: in place)")
	mergeCmd.Flags().StringVar(&targetTrack, "target", engine.DefaultTargetTrack, "Destination track name")

	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

// runOptions folds the config file defaults under any explicitly set
// flags.
func runOptions(cmd *cobra.Command) engine.Options {
	opts := engine.DefaultOptions()
	if cfg, err := config.Load(); err == nil {
		opts = cfg.Options()
	}
	if cmd.Flags().Changed("base-cc") {
		opts.BaseCC = uint8(baseCC)
	}
	if cmd.Flags().Changed("target") {
		opts.TargetTrack = targetTrack
	}
	return opts
}

func getOutputPath(input, defaultExt string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + defaultExt
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]
	log := logger.Must(debug)
	defer func() { _ = log.Sync() }()

	if baseCC < 0 || baseCC > 127 {
		return fmt.Errorf("base CC %d out of range [0,127]", baseCC)
	}

	p, err := project.LoadFile(input)
	if err != nil {
		return err
	}

	opts := runOptions(cmd)
	report, err := engine.Run(p, opts)
	if err != nil {
		return err
	}

	for _, skip := range report.Skips {
		log.Warn("track skipped",
			zap.String("track", skip.Track),
			zap.String("reason", skip.Reason))
	}
	log.Info("envelopes mapped",
		zap.Int("items", report.ItemsCreated),
		zap.Int("events", report.EventsInserted),
		zap.Uint8s("controllers", report.Controllers))

	data, err := smfio.ExportTrack(p, opts.TargetTrack)
	if err != nil {
		return err
	}

	output := getOutputPath(input, ".mid")
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	if saveProject {
		if err := p.SaveFile(input); err != nil {
			return err
		}
	}

	fmt.Printf("Processed %s -> %s\n", input, output)
	return nil
}

func runTracks(cmd *cobra.Command, args []string) error {
	p, err := project.LoadFile(args[0])
	if err != nil {
		return err
	}

	for i, tr := range p.Tracks {
		marker := " "
		if tr.Selected {
			marker = "*"
		}
		fmt.Printf("%s %2d  %-24s envelopes: %d  items: %d\n",
			marker, i, tr.Name, len(tr.Envelopes), len(tr.Items))
	}
	fmt.Printf("project length: %.2fs, tempo: %.1f bpm\n", p.Length(), p.Tempo)
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	input := args[0]

	p, err := project.LoadFile(input)
	if err != nil {
		return err
	}

	target := engine.DefaultTargetTrack
	if cmd.Flags().Changed("target") {
		target = targetTrack
	}

	merged, err := engine.Merge(p, target)
	if err != nil {
		return err
	}

	output := input
	if outputFile != "" {
		output = outputFile
	}
	if err := p.SaveFile(output); err != nil {
		return err
	}

	fmt.Printf("Merged %q items into [%.2fs, %.2fs) -> %s\n",
		target, merged.Position, merged.End(), output)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	input, track := args[0], args[1]

	p, err := project.LoadFile(input)
	if err != nil {
		return err
	}

	data, err := smfio.ExportTrack(p, track)
	if err != nil {
		return err
	}

	output := getOutputPath(input, ".mid")
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	fmt.Printf("Exported %s:%s -> %s\n", input, track, output)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer func() { _ = log.Sync() }()

	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort, log)
}
