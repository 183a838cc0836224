package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"comicpack/internal/packer"
	"comicpack/internal/tui"
)

var (
	flagNoRename  bool
	flagDelete    bool
	flagVerify    bool
	flagOverwrite bool
)

var rootCmd = &cobra.Command{
	Use:   "comicpack [flags] <directory>...",
	Short: "comicpack - bundle image directories into cbz archives",
	Long: "comicpack bundles directories of images into stored cbz archives,\n" +
		"renaming pages into zero-padded reading order and optionally verifying\n" +
		"that every image decodes cleanly before it is archived.",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := packer.Options{
			NoRename:  flagNoRename,
			Delete:    flagDelete,
			Verify:    flagVerify,
			Overwrite: flagOverwrite,
		}

		failed := 0
		for _, dir := range args {
			fmt.Fprintf(os.Stdout, "Processing %s...\n", pathStyle.Render(dir))
			if err := packDir(dir, opts); err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("ERROR:"), err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d directories failed", failed, len(args))
		}
		return nil
	},
}

// packDir runs the pipeline for one directory and reports the outcome.
// With --verify a progress UI consumes the updates channel; its input is
// disabled so the overwrite prompt can read stdin.
func packDir(dir string, opts packer.Options) error {
	var updates chan packer.ProgressUpdate
	uiDone := make(chan struct{})
	if opts.Verify {
		updates = make(chan packer.ProgressUpdate, 64)
		program := tea.NewProgram(tui.NewModel(updates), tea.WithInput(nil))
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()
	} else {
		close(uiDone)
	}

	outcome, err := packer.Pack(dir, opts, promptOverwrite, updates)
	if updates != nil {
		close(updates)
	}
	<-uiDone
	if err != nil {
		return err
	}

	switch outcome.Status {
	case packer.StatusSkippedExisting:
		fmt.Fprintln(os.Stdout, dimStyle.Render("Not creating archive."))
	case packer.StatusBlocked:
		fmt.Fprintf(os.Stdout, "Found %d non-image or unsupported files, not creating archive:\n",
			len(outcome.NonImages))
		for _, ni := range outcome.NonImages {
			line := "\t" + ni.Path
			if ni.Corrupt {
				line += " (corrupt)"
			}
			fmt.Fprintln(os.Stdout, warnStyle.Render(line))
		}
	case packer.StatusBuilt:
		rows := []tui.SummaryRow{
			{Label: "Images archived", Value: fmt.Sprintf("%d", outcome.ImageCount)},
			{Label: "Sidecar files", Value: fmt.Sprintf("%d", outcome.SidecarCount)},
			{Label: "Archive size (bytes)", Value: fmt.Sprintf("%d", outcome.ArchiveSize)},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		fmt.Fprintf(os.Stdout, "Created %s\n", pathStyle.Render(outcome.ArchivePath))
		if outcome.Deleted {
			fmt.Fprintln(os.Stdout, dimStyle.Render("Deleted source directory."))
		}
	}
	return nil
}

// promptInput is shared across prompts so piped answers for later
// directories are not lost to an earlier reader's buffer.
var promptInput = bufio.NewReader(os.Stdin)

// promptOverwrite blocks on stdin until the operator answers. Anything
// other than y or yes keeps the existing archive.
func promptOverwrite(path string) (bool, error) {
	fmt.Fprintf(os.Stdout, "%s %s already exists. Overwrite? [y/N] ",
		warnStyle.Bold(true).Render("WARNING:"), path)

	line, err := promptInput.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&flagNoRename, "no-rename", "n", false, "keep original file names inside the archive")
	rootCmd.Flags().BoolVarP(&flagDelete, "delete", "d", false, "delete the source directory after a successful archive")
	rootCmd.Flags().BoolVarP(&flagVerify, "verify", "v", false, "decode every image to detect corruption before archiving")
	rootCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "overwrite an existing archive without prompting")
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

var (
	pathStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	warnStyle  = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorError)
	dimStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)
