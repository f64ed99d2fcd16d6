package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"i4.energy/across/jdy40gw/at"
	"i4.energy/across/jdy40gw/jdy40"
)

func newConfigureCommand(a *app) *cobra.Command {
	var (
		speed   int
		power   int
		mode    string
		network string
		device  string
		channel string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Push a configuration into the module",
		Long: `Enter config mode, send power, speed, mode, network, device and channel,
and leave config mode. Parameters not given keep their factory defaults.

Example:
  jdy40ctl configure --power 12 --channel 0,0,9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc configDocument
			flags := cmd.Flags()
			if flags.Changed("speed") {
				doc.Speed = &speed
			}
			if flags.Changed("power") {
				doc.Power = &power
			}
			if flags.Changed("mode") {
				doc.Mode = &mode
			}
			for _, f := range []struct {
				name  string
				value string
				dst   *[]int
			}{
				{"network", network, &doc.Network},
				{"device", device, &doc.Device},
				{"channel", channel, &doc.Channel},
			} {
				if !flags.Changed(f.name) {
					continue
				}
				v, err := parseByteList(f.value)
				if err != nil {
					return fmt.Errorf("--%s: %w", f.name, err)
				}
				*f.dst = v
			}

			cfg, err := doc.apply(jdy40.DefaultConfig())
			if err != nil {
				return err
			}

			d, closer, err := openDriver(cmd.Context(), a.config, a.logger)
			if err != nil {
				a.logger.Error("Failed to open module", "error", err)
				return err
			}
			defer closer.Close()

			if err := d.ApplyConfig(cfg); err != nil {
				a.logger.Error("Failed to configure module", "error", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}

	def := jdy40.DefaultConfig()
	cmd.Flags().IntVar(&speed, "speed", def.Speed.BitsPerSecond(), "Module baud rate (1200, 2400, 4800, 9600, 14400, 19200)")
	cmd.Flags().IntVar(&power, "power", def.Power.DBm(), "Transmit power in dBm (-25, -15, -5, 0, 3, 6, 9, 10, 12)")
	cmd.Flags().StringVar(&mode, "mode", def.Mode.String(), "Operating class (A0, C0..C5)")
	cmd.Flags().StringVar(&network, "network", "6,5,4,3", "Network id, 4 bytes")
	cmd.Flags().StringVar(&device, "device", "0,0,1,0", "Device id, 4 bytes")
	cmd.Flags().StringVar(&channel, "channel", "0,0,7", "Channel, 3 bytes")
	return cmd
}

func newSendCommand(a *app) *cobra.Command {
	var isHex bool

	cmd := &cobra.Command{
		Use:   "send <payload>",
		Short: "Transmit a payload through the module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodePayload(args[0], isHex)
			if err != nil {
				return err
			}

			d, closer, err := openDriver(cmd.Context(), a.config, a.logger)
			if err != nil {
				a.logger.Error("Failed to open module", "error", err)
				return err
			}
			defer closer.Close()

			if err := d.WriteBuffer(payload); err != nil {
				a.logger.Error("Failed to send payload", "error", err)
				return err
			}
			a.logger.Info("Payload sent", "bytes", len(payload))
			return nil
		},
	}

	cmd.Flags().BoolVar(&isHex, "hex", false, "Payload is hex encoded")
	return cmd
}

func newListenCommand(a *app) *cobra.Command {
	var (
		count int
		lines bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print bytes received by the module",
		Long: `Print every byte received by the module, or every CRLF terminated line
with --lines. Stops after --count bytes or lines, or on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, closer, err := openDriver(ctx, a.config, a.logger)
			if err != nil {
				a.logger.Error("Failed to open module", "error", err)
				return err
			}
			defer closer.Close()

			r := &radioReader{ctx: ctx, radio: jdy40.NewShared(d)}
			if err := listen(r, cmd.OutOrStdout(), count, lines); err != nil {
				a.logger.Error("Listen failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Stop after this many bytes or lines (0 = no limit)")
	cmd.Flags().BoolVar(&lines, "lines", false, "Print CRLF terminated lines instead of bytes")
	return cmd
}

func listen(r io.Reader, w io.Writer, count int, lines bool) error {
	if lines {
		scanner := bufio.NewScanner(r)
		scanner.Split(at.Splitter)
		for n := 0; (count == 0 || n < count) && scanner.Scan(); n++ {
			fmt.Fprintln(w, scanner.Text())
		}
		return scanner.Err()
	}

	var b [1]byte
	for n := 0; count == 0 || n < count; n++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		fmt.Fprintf(w, "receive 0x%02x %q\n", b[0], b[0])
	}
	return nil
}

func newServeCommand(a *app) *cobra.Command {
	var initModule bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP, WebSocket and MQTT payload gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), a, initModule)
		},
	}

	cmd.Flags().String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	cmd.Flags().String("mqtt-broker", "", "MQTT broker URL, empty disables the MQTT bridge")
	cmd.Flags().String("mqtt-client-id", "jdy40-gw", "MQTT client id")
	cmd.Flags().String("mqtt-topic", "jdy40", "MQTT topic prefix")
	cmd.Flags().BoolVar(&initModule, "init", false, "Apply the default configuration before serving")
	return cmd
}

func serve(parent context.Context, a *app, initModule bool) error {
	logger := a.logger
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	d, closer, err := openDriver(ctx, a.config, logger)
	if err != nil {
		logger.Error("Failed to open module", "error", err)
		return err
	}
	defer closer.Close()

	radio := jdy40.NewShared(d)
	if initModule {
		if err := radio.Init(); err != nil {
			logger.Error("Failed to initialize module", "error", err)
			return err
		}
	}

	server := NewServer(radio, logger.With("component", "server"))

	if a.config.MQTTBroker != "" {
		bridge := NewBridge(a.config, radio, logger.With("component", "mqtt"))
		if err := bridge.Connect(); err != nil {
			logger.Error("Failed to connect MQTT bridge", "error", err)
			return err
		}
		defer bridge.Close()
		server.OnReceive(bridge.Publish)
	}

	receiveDone := make(chan struct{})
	go func() {
		defer close(receiveDone)
		server.Receive(ctx)
	}()

	httpServer := &http.Server{
		Addr:    a.config.BindAddress,
		Handler: server,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig)
	case err := <-serveErr:
		logger.Error("HTTP server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	// Stop the receive loop before the transport is closed
	cancel()
	<-receiveDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		return err
	}
	return nil
}
