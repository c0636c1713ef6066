package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/josephlewis42/sdshell/commands"
	"github.com/josephlewis42/sdshell/core/config"
	"github.com/josephlewis42/sdshell/core/logger"
	"github.com/josephlewis42/sdshell/core/ttylog"
	"github.com/josephlewis42/sdshell/core/vos"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	commandLine string
	noBanner    bool
	colorMode   string
	logLevel    string
)

// sessionLogTimeFormat names recordings so they sort chronologically.
const sessionLogTimeFormat = "20060102T150405.000000Z"

func runShell(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return err
	}
	log.Debug("loaded configuration", "dir", cfg.Dir())

	var vio vos.VIO = vos.NewStdIO()
	if cfg.RecordSessions {
		name := time.Now().UTC().Format(sessionLogTimeFormat) + "." + ttylog.AsciicastFileExt
		recording, err := cfg.CreateSessionLog(name)
		if err != nil {
			return errors.Wrap(err, "creating session recording")
		}
		defer recording.Close()

		recorder := ttylog.NewRecorder(vio, ttylog.NewAsciicastLogSink(recording, commands.DefaultName), log.Named("ttylog"))
		defer recorder.Close()
		vio = recorder
	}

	var events logger.EventRecorder = logger.NopRecorder{}
	if cfg.EventLog {
		eventLog, err := cfg.OpenEventLog()
		if err != nil {
			return errors.Wrap(err, "opening event log")
		}
		defer eventLog.Close()

		session := logger.NewJsonLinesLogRecorder(eventLog).NewSession()
		log.Debug("recording events", "session", session.SessionID())
		events = session
	}

	runOnce := cmd.Flags().Changed("command")
	interactive := !runOnce && commands.IsTerminal(os.Stdin)

	var reader commands.LineReader
	if interactive {
		rl, err := commands.NewReadlineLineReader(vio, cfg.HistoryPath())
		if err != nil {
			return errors.Wrap(err, "setting up terminal")
		}
		defer rl.Close()
		reader = rl
	} else {
		reader = commands.NewBufferedLineReader(vio.Stdin(), vio.Stdout())
	}

	sh := commands.NewShell(vos.NewHostOS(vio), reader)
	sh.Prompt = cfg.Prompt
	sh.Interactive = interactive
	sh.Color = commands.NewColorPrinter(cfg.Color, os.Stdout, os.Stderr)
	sh.Log = log
	sh.Events = events

	if runOnce {
		sh.RunCommand(commandLine)
		return nil
	}

	if cfg.Banner {
		sh.PrintBanner()
	}
	return sh.Run()
}

// applyFlags overrides the loaded configuration with flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	if cmd.Flags().Changed("no-banner") {
		cfg.Banner = !noBanner
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = colorMode
	}
	return cfg.Validate()
}

// newLogger creates the diagnostic logger, "off" disables it.
func newLogger(w io.Writer, level string) (hclog.Logger, error) {
	if strings.EqualFold(level, "off") {
		return hclog.NewNullLogger(), nil
	}

	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   commands.DefaultName,
		Level:  parsed,
		Output: w,
	}), nil
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
	flags.BoolVar(&noBanner, "no-banner", false, "don't print the welcome banner")
	flags.StringVar(&colorMode, "color", config.ColorAuto, "color diagnostics: always, auto or never")
	flags.StringVar(&logLevel, "log-level", "off", "diagnostic log level: off, error, warn, info, debug or trace")
}
