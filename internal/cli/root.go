package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/imgmode/internal/imaging"
)

// BuildInfo identifies the binary. main fills it from ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// App holds the state shared by the command tree for one invocation.
type App struct {
	build  BuildInfo
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v   *viper.Viper
	log *logrus.Logger
	cfg *Config
}

// New creates an App reading MCP requests from stdin, writing results to
// stdout and diagnostics to stderr.
func New(build BuildInfo, stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		build:  build,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		v:      newViper(),
		log:    newLogger(stderr),
	}
}

// Execute runs imgmode with the process arguments and returns the exit code.
func Execute(build BuildInfo) int {
	return New(build, os.Stdin, os.Stdout, os.Stderr).Run(os.Args[1:])
}

// Run executes the command tree with args and returns the exit code. Any
// error is reported as a single "imgmode: ..." line on stderr.
func (a *App) Run(args []string) int {
	root := a.newRootCommand()
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		fmt.Fprintf(a.stderr, "imgmode: %v\n", err)
	}
	return exitCode(err)
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "imgmode <input_image> <output_image> <mode>",
		Short: "Convert an image file to another pixel mode",
		Long: `imgmode reads an image, converts its pixels to the requested mode and
writes the result. The input format is detected from the file contents; the
output format follows the output file's extension (.png, .jpg, .gif, .tif,
.bmp).

Modes: 1, L, I;16, P, RGB, RGBA, CMYK. Run "imgmode modes" to see which
output formats can store each mode, or "imgmode serve" to expose the same
operations as MCP tools on stdin/stdout.

Exit codes: 0 success, 1 usage error, 2 unreadable input, 3 unsupported
mode, 4 output could not be written.`,
		Example: `  imgmode photo.jpg photo-gray.png L
  imgmode logo.png logo.gif P --dither none`,
		Args:              cobra.ExactArgs(3),
		Version:           a.build.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runConvert,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate(a.versionText())

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (default: ./imgmode.yaml or ~/.config/imgmode/imgmode.yaml)")
	flags.String(keyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.String(keyDither, imaging.DitherFloydSteinberg.String(), "dithering for modes 1 and P: floyd-steinberg or none")
	flags.Int(keyJPEGQuality, 95, "JPEG output quality (1-100)")
	flags.String(keyPNGCompression, "default", "PNG compression: default, none, fast or best")

	root.AddCommand(a.newInfoCommand(), a.newModesCommand(), a.newServeCommand(), a.newVersionCommand())
	return root
}

// setup resolves configuration from flags, environment and config file,
// then configures logging. It runs before every command.
func (a *App) setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(a.v, cmd.Root()); err != nil {
		return err
	}

	cfgFile, err := readConfigFile(a.v)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	configureLogger(a.log, cfg.LogLevel)

	if cfgFile != "" {
		a.log.WithField("file", cfgFile).Debug("using config file")
	}
	return nil
}

func (a *App) runConvert(cmd *cobra.Command, args []string) error {
	input, output, mode := args[0], args[1], args[2]

	a.log.WithFields(logrus.Fields{
		"input":  input,
		"output": output,
		"mode":   mode,
	}).Info("converting image")

	if err := imaging.Convert(input, output, mode, a.cfg.convertOptions(a.log)...); err != nil {
		return err
	}

	a.log.WithField("output", output).Info("conversion complete")
	return nil
}
