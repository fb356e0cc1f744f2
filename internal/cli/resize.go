package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/phambaophuc/resize-studio/internal/client"
	"github.com/phambaophuc/resize-studio/internal/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type resizeOptions struct {
	server  string
	width   int
	height  int
	quality int
	format  string
	link    bool
	out     string
}

// consoleNotifier reports session state on a terminal.
type consoleNotifier struct {
	w      io.Writer
	logger *zap.Logger
}

func (n consoleNotifier) Alert(msg string) {
	fmt.Fprintln(n.w, msg)
}

func (n consoleNotifier) Busy(on bool) {
	if on {
		n.logger.Debug("Uploading")
	}
}

// NewResizeCommand creates the 'resize' command.
func NewResizeCommand(fs afero.Fs, logger *zap.Logger) *cobra.Command {
	opts := resizeOptions{}

	cmd := &cobra.Command{
		Use:     "resize [file]",
		Example: "$ resizectl resize photo.jpg --width 800 --format webp --out small.webp",
		Short:   "Upload an image and print the resized result",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResize(cmd.Context(), fs, args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.server, "server", "s", "http://localhost:8080", "Base URL of the resize service")
	flags.IntVarP(&opts.width, "width", "W", 0, "Target width, defaults to the native width")
	flags.IntVarP(&opts.height, "height", "H", 0, "Target height, defaults to the native height")
	flags.IntVarP(&opts.quality, "quality", "q", 80, "Output quality from 1 to 100")
	flags.StringVarP(&opts.format, "format", "f", string(models.FormatOriginal), "Output format: original, jpeg, png, gif or webp")
	flags.BoolVar(&opts.link, "link", true, "Keep the aspect ratio when only one dimension is given")
	flags.StringVarP(&opts.out, "out", "o", "", "Write the resized image to this path")

	return cmd
}

func runResize(ctx context.Context, fs afero.Fs, path string, opts resizeOptions, stdout, stderr io.Writer, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := models.ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	api := client.NewAPI(opts.server, nil, logger)
	session := client.NewSession(api, consoleNotifier{w: stderr, logger: logger}, logger)

	if err := session.Acquire(client.File{Name: filepath.Base(path), Data: data}); err != nil {
		return err
	}
	if preview, ok := session.Preview(); ok {
		fmt.Fprintf(stdout, "Original: %s, %s, %s\n", preview.Name, preview.Dimensions, preview.Size)
	}

	// Both dimensions given means both are taken as is.
	session.SetLinked(opts.link && (opts.width <= 0 || opts.height <= 0))
	if opts.width > 0 {
		session.SetWidth(opts.width)
	}
	if opts.height > 0 {
		session.SetHeight(opts.height)
	}
	session.SetQuality(opts.quality)
	session.SetFormat(format)

	result, err := session.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Resized:  %s, %s, %s\n", result.DimensionsLabel(), result.SizeLabel(), result.ReductionLabel())
	fmt.Fprintf(stdout, "URL:      %s\n", result.ImageURL)

	if opts.out == "" {
		return nil
	}

	out := opts.out
	if isDir, _ := afero.IsDir(fs, out); isDir {
		out = filepath.Join(out, result.DownloadName())
	}

	f, err := fs.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if _, err := api.Download(ctx, result, f); err != nil {
		f.Close()
		_ = fs.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(stdout, "Saved:    %s\n", out)
	return nil
}
