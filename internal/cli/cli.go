package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/asynkron/applypatch/internal/logging"
	"github.com/asynkron/applypatch/internal/plan"
	"github.com/asynkron/applypatch/internal/render"
	"github.com/asynkron/applypatch/internal/source"
	"github.com/asynkron/applypatch/internal/tui"
	"github.com/asynkron/applypatch/pkg/patch"
)

// Run executes the apply-patch CLI using the provided arguments and streams.
// It returns a POSIX-style exit code indicating whether execution succeeded.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	defaultDir := os.Getenv("APPLY_PATCH_DIR")
	defaultLogLevel := os.Getenv("APPLY_PATCH_LOG_LEVEL")
	if defaultLogLevel == "" {
		defaultLogLevel = "info"
	}

	flagSet := flag.NewFlagSet("apply-patch", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	workingDir := flagSet.String("C", defaultDir, "apply the patch relative to this directory")
	dryRun := flagSet.Bool("dry-run", false, "show the resulting changes without touching the filesystem")
	jsonInput := flagSet.Bool("json", false, "treat the input as a JSON operations document instead of patch text")
	interactive := flagSet.Bool("interactive", false, "review the pending changes before applying them")
	quiet := flagSet.Bool("quiet", false, "suppress the success summary")
	logLevel := flagSet.String("log-level", defaultLogLevel, "minimum log level (debug, info, warn, error)")

	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	var logger logging.Logger = logging.NewStdLogger(logging.ParseLevel(*logLevel), stderr)
	if *quiet {
		logger = &logging.NoOpLogger{}
	}
	renderer := render.New(stdout)

	text, err := source.Read(flagSet.Args(), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "apply-patch: %s\n", patch.FormatError(err))
		return 1
	}

	var operations []patch.Operation
	if *jsonInput {
		operations, err = plan.Decode(text)
	} else {
		operations, err = patch.Parse(text)
	}
	if err != nil {
		logger.Error("failed to decode patch input", err)
		fmt.Fprintf(stderr, "apply-patch: %s\n", patch.FormatError(err))
		return 1
	}
	logger.Debug("decoded patch input", logging.Field("operations", len(operations)))

	if *dryRun {
		before := snapshot(*workingDir, operations)
		after, _, err := patch.ApplyToMemory(ctx, operations, before)
		if err != nil {
			fmt.Fprintf(stderr, "apply-patch: %s\n", patch.FormatError(err))
			return 1
		}
		renderer.Preview(before, after)
		fmt.Fprintln(stdout, "Dry run; no files were modified.")
		return 0
	}

	if *interactive {
		before := snapshot(*workingDir, operations)
		after, _, err := patch.ApplyToMemory(ctx, operations, before)
		if err != nil {
			fmt.Fprintf(stderr, "apply-patch: %s\n", patch.FormatError(err))
			return 1
		}
		approved, err := tui.Review("Review pending patch", render.PreviewText(before, after))
		if err != nil {
			fmt.Fprintf(stderr, "apply-patch: %s\n", patch.FormatError(err))
			return 1
		}
		if !approved {
			fmt.Fprintln(stdout, "Aborted; no files were modified.")
			return 1
		}
	}

	results, err := patch.ApplyFilesystem(ctx, operations, patch.FilesystemOptions{WorkingDir: *workingDir})
	if err != nil {
		logger.Error("failed to apply patch", err)
		fmt.Fprintf(stderr, "apply-patch: %s\n", patch.FormatError(err))
		return 1
	}

	if *quiet {
		return 0
	}
	if len(results) == 0 {
		fmt.Fprintln(stdout, "No changes applied.")
		return 0
	}
	fmt.Fprintln(stdout, "Success. Updated the following files:")
	renderer.Results(results)
	return 0
}

// snapshot reads the current content of every file the operations touch so
// dry runs and previews can diff against the real state on disk. Missing
// files simply stay absent from the map.
func snapshot(workingDir string, operations []patch.Operation) map[string]string {
	files := make(map[string]string)
	for _, op := range operations {
		path := op.TargetPath()
		resolved := path
		if !filepath.IsAbs(resolved) && workingDir != "" {
			resolved = filepath.Join(workingDir, resolved)
		}
		content, err := os.ReadFile(resolved)
		if err != nil {
			continue
		}
		files[filepath.Clean(path)] = string(content)
	}
	return files
}
