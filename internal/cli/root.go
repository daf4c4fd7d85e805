package cli

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Settings are the resolved global options of a run.
type Settings struct {
	Verbose   bool
	LogFormat string
	Format    string
}

type app struct {
	v        *viper.Viper
	settings Settings
	log      *zap.Logger
}

// NewRootCommand builds the concoll command tree. Global options come from
// flags or CONCOLL_* environment variables.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "concoll",
		Short:         "Check and describe connected type declarations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolP("verbose", "v", false, "log schema resolution and registration at debug level")
	flags.String("log-format", "console", "log format: console or json")
	flags.StringP("format", "f", FormatText, "output format: text or yaml")

	for _, name := range []string{"verbose", "log-format", "format"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	a.v.SetEnvPrefix("CONCOLL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(newCheckCommand(a), newDescribeCommand(a))

	return root
}

func (a *app) configure(logOut io.Writer) error {
	a.settings = Settings{
		Verbose:   a.v.GetBool("verbose"),
		LogFormat: a.v.GetString("log-format"),
		Format:    a.v.GetString("format"),
	}

	switch a.settings.Format {
	case FormatText, FormatYAML:
	default:
		return errors.WithHint(errors.Newf("unknown output format %q", a.settings.Format), "use text or yaml")
	}

	log, err := newLogger(a.settings, logOut)
	if err != nil {
		return err
	}

	a.log = log

	return nil
}

// newLogger writes info and above, or everything when verbose.
func newLogger(s Settings, w io.Writer) (*zap.Logger, error) {
	level := zap.InfoLevel
	if s.Verbose {
		level = zap.DebugLevel
	}

	var enc zapcore.Encoder

	switch s.LogFormat {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console", "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, errors.WithHint(errors.Newf("unknown log format %q", s.LogFormat), "use console or json")
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
}

// Execute runs concoll with the process arguments and returns the exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)

		for _, hint := range errors.GetAllHints(err) {
			root.PrintErrln("Hint:", hint)
		}

		return 1
	}

	return 0
}
