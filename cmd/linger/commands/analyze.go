package commands

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/linger/internal/adapters/fs"
	"go.trai.ch/linger/internal/app"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/ui/output"
	"go.trai.ch/linger/internal/ui/render"
	"go.trai.ch/zerr"
)

const missingExecutableHint = "golangci-lint is not installed or not on PATH; " +
	"install it or set executable in " + domain.ConfigFileName

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE [-- TOOL_ARGS...]",
		Short: "Report golangci-lint issues for a Go file",
		Long: "Report golangci-lint issues for a Go file.\n\n" +
			"Results are cached per working directory and reused until the file or the\n" +
			"golangci-lint configuration is saved again. With --buffer, issues are placed\n" +
			"against the given contents instead of the saved file.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, _ := cmd.Flags().GetString("workdir")
			bufferPath, _ := cmd.Flags().GetString("buffer")
			asJSON, _ := cmd.Flags().GetBool("json")

			req := app.AnalyzeRequest{
				FilePath:   args[0],
				WorkingDir: workDir,
				Args:       args[1:],
			}
			if bufferPath != "" {
				buffer, err := c.readBuffer(bufferPath)
				if err != nil {
					return err
				}
				req.Buffer = buffer
			}

			analysis, err := c.app.Analyze(cmd.Context(), req)
			if app.IsExecutableMissing(err) {
				return zerr.Wrap(err, missingExecutableHint)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			view := render.NewAnalysisView(args[0], analysis)
			if asJSON {
				return render.JSON(out, view)
			}
			return render.Text(out, view, output.ColorProfile(out))
		},
	}
	cmd.Flags().StringP("workdir", "C", "", "Directory to run golangci-lint in (default: the file's directory)")
	cmd.Flags().String("buffer", "", "Read the current contents of FILE from this path, or - for stdin")
	cmd.Flags().Bool("json", false, "Print the analysis as JSON")
	return cmd
}

func (c *CLI) readBuffer(path string) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // Path comes from the user's own flag.
	}
	if err != nil {
		return nil, errors.Join(domain.ErrFileReadFailed, zerr.With(err, "path", path))
	}
	return fs.SplitLines(data), nil
}
