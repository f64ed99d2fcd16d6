package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root command has
// loaded the configuration.
type app struct {
	config *Config
	logger *slog.Logger
}

func main() {
	if err := newRootCommand(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "jdy40ctl",
		Short: "Configure and talk to a JDY-40 radio module",
		Long: `jdy40ctl drives a JDY-40 2.4GHz serial transceiver attached through a
USB serial adapter. The module's CS and SET pins are expected on the
adapter's RTS and DTR outputs (see --cs-line and --set-line).

Settings come from flags, then environment variables (SERIAL_PORT,
BAUD_RATE, LOG_LEVEL, READ_TIMEOUT, CS_LINE, SET_LINE, SIMULATE,
BIND_ADDRESS, MQTT_BROKER, MQTT_CLIENT_ID, MQTT_TOPIC), then defaults.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(cmd.Flags()))
			if err != nil {
				slog.Error("Failed to load configuration", "error", err)
				return err
			}
			a.config = config
			a.logger = newLogger(config.LogLevel)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("port", "p", "/dev/ttyUSB0", "Serial port the module is attached to")
	flags.IntP("baud", "b", 9600, "Baud rate for serial communication")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Duration("read-timeout", time.Second, "Give up waiting for a byte from the module after this long")
	flags.String("cs-line", "rts", "Serial adapter output wired to CS (rts or dtr)")
	flags.String("set-line", "dtr", "Serial adapter output wired to SET (rts or dtr)")
	flags.Bool("simulate", false, "Use an in-memory module instead of a serial port")

	root.AddCommand(
		newConfigureCommand(a),
		newSendCommand(a),
		newListenCommand(a),
		newServeCommand(a),
	)
	return root
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
