package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephlewis42/seqsh/core"
	"github.com/josephlewis42/seqsh/core/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string

	// osExit is replaced in tests.
	osExit = os.Exit
)

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".seqsh"
	}
	return filepath.Join(home, ".seqsh")
}

// loadConfig reads the configuration, falling back to the built-in defaults
// if init hasn't been run.
func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seqsh [flags] [script]",
	Short: "A small sequential command interpreter",
	Long: `seqsh reads one line at a time and runs the commands on it.

Commands are separated by ';' which always runs the next command, or '&&'
which only runs the next command if the previous one succeeded. The output of
a command is shown once it exits: standard output if it succeeded, standard
error if it failed.

With no script, lines are read from the terminal. Type exit to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if commandLine != "" && len(args) > 0 {
			return errors.New("can't use -c with a script")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		code, err := runShell(cmd, cfg, args)
		if err != nil {
			return err
		}
		if code != 0 {
			osExit(code)
		}
		return nil
	},
}

func runShell(cmd *cobra.Command, cfg *config.Configuration, args []string) (int, error) {
	opts := core.Options{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	switch {
	case commandLine != "":
		opts.Stdin = strings.NewReader(commandLine)
		opts.Source = "-c"

	case len(args) == 1:
		fd, err := os.Open(args[0])
		if err != nil {
			return 0, err
		}
		defer fd.Close()
		opts.Stdin = fd
		opts.Source = args[0]

	default:
		opts.Interactive = isTerminal(opts.Stdin)
		opts.Source = "stdin"
	}

	s, err := core.NewShell(cfg, opts)
	if err != nil {
		return 0, fmt.Errorf("starting shell: %w", err)
	}

	code := s.Run()
	if err := s.Close(); err != nil {
		return 0, err
	}
	return code, nil
}

func isTerminal(r io.Reader) bool {
	fd, ok := r.(*os.File)
	return ok && isatty.IsTerminal(fd.Fd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigDir(), "config path")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single line and exit")
}
