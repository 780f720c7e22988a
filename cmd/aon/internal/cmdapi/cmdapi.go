// Package cmdapi holds the aon commands.
package cmdapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Neumenon/aon/aon"
	"github.com/Neumenon/aon/docfmt"
)

// version is set at build time with
// "-X 'github.com/Neumenon/aon/cmd/aon/internal/cmdapi.version=${version}'".
var version = "0.1.0"

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagOutput   = "output"
	flagRoot     = "root"
	flagFrom     = "from"
	flagTo       = "to"
	flagOrder    = "order"
	flagQualify  = "qualify"
	flagIndent   = "indent"

	defaultConfigFile = ".aon.yaml"
)

// errRoundTrip is returned by the roundtrip command when the decoded
// document differs from the source.
var errRoundTrip = errors.New("round trip mismatch")

// state is shared by the commands of one root.
type state struct {
	configFile string
	logLevel   string
	output     string

	root    string
	from    string
	to      string
	order   string
	qualify bool
	indent  bool

	logger *slog.Logger
}

// NewRoot builds the aon command tree.
func NewRoot() *cobra.Command {
	s := &state{}
	root := &cobra.Command{
		Use:           "aon",
		Short:         "Convert JSON documents to and from AON, a schema-once row format.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&s.configFile, flagConfig, "", "config file (default "+defaultConfigFile+" if present)")
	pf.StringVar(&s.logLevel, flagLogLevel, "warn", "log level: debug, info, warn, error")
	pf.StringVarP(&s.output, flagOutput, "o", "", "write output to a file instead of stdout")

	root.AddCommand(
		encodeCmd(s),
		decodeCmd(s),
		schemaCmd(s),
		roundtripCmd(s),
		versionCmd(),
	)
	return root
}

// setup merges the config file under the parsed flags and builds the logger.
func (s *state) setup(cmd *cobra.Command) error {
	path, explicit := s.configFile, s.configFile != ""
	if !explicit {
		path = defaultConfigFile
	}
	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		return err
	}
	if err := cfg.Apply(cmd.Flags()); err != nil {
		return err
	}

	s.logger, err = newLogger(cmd.ErrOrStderr(), s.logLevel)
	if err != nil {
		return err
	}
	if cfg != nil {
		s.logger.Debug("config loaded", "path", path)
	}
	return nil
}

func (s *state) inferOptions() ([]aon.Option, error) {
	order, err := aon.ParseOrder(s.order)
	if err != nil {
		return nil, err
	}
	opts := []aon.Option{aon.WithOrder(order), aon.WithLogger(s.logger)}
	if s.qualify {
		opts = append(opts, aon.WithQualifiedCollisions())
	}
	return opts, nil
}

// loadSource reads and parses the source document named by args.
func (s *state) loadSource(cmd *cobra.Command, args []string) (*aon.Value, error) {
	data, name, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	f, err := s.sourceFormat(name)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("input read", "source", name, "format", f, "bytes", len(data))
	return docfmt.Load(data, f)
}

func (s *state) sourceFormat(name string) (docfmt.Format, error) {
	if s.from != "" {
		return docfmt.ParseFormat(s.from)
	}
	if f, ok := docfmt.FormatFromPath(name); ok {
		return f, nil
	}
	return docfmt.JSON, nil
}

func (s *state) requireRoot() error {
	if s.root == "" {
		return fmt.Errorf("root schema name required (--%s or %q in the config file)", flagRoot, "root")
	}
	return nil
}

// readInput reads the file named by args[0], or stdin when it is absent or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "-", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", err
	}
	return data, args[0], nil
}

// writeOutput writes to the --output file, or to the command output.
func (s *state) writeOutput(cmd *cobra.Command, data []byte) error {
	if s.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(s.output, data, 0o644); err != nil {
		return err
	}
	s.logger.Info("output written", "path", s.output, "bytes", len(data))
	return nil
}

// PrintError prints err in red.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgHiRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the aon version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("aon version %s (header %s)\n", version, aon.Marker)
		},
	}
}
