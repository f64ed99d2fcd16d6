package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the gateway listens on (e.g. "0.0.0.0:8080")
	BindAddress string
	// SerialPort is the path to the module's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string
	// BaudRate is the host side UART speed; it must match the module's
	// configured speed (factory default 9600)
	BaudRate int
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string
	// ReadTimeout bounds the wait for a single byte from the module,
	// including command acknowledgments
	ReadTimeout time.Duration
	// CSLine and SetLine name the serial adapter outputs ("rts" or "dtr")
	// wired to the module's CS and SET pins
	CSLine  string
	SetLine string
	// Simulate replaces the serial port with an in-memory module that
	// acknowledges every command
	Simulate bool
	// MQTTBroker enables the MQTT bridge when set (e.g. "tcp://localhost:1883")
	MQTTBroker   string
	MQTTClientID string
	// MQTTTopic is the topic prefix; payloads are received on <topic>/send
	// and published on <topic>/recv
	MQTTTopic string
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 9600
		c.LogLevel = "info"
		c.ReadTimeout = time.Second
		c.CSLine = "rts"
		c.SetLine = "dtr"
		c.MQTTClientID = "jdy40-gw"
		c.MQTTTopic = "jdy40"
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			b, err := strconv.Atoi(baud)
			if err != nil {
				return fmt.Errorf("BAUD_RATE: %w", err)
			}
			c.BaudRate = b
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if timeout := os.Getenv("READ_TIMEOUT"); timeout != "" {
			d, err := time.ParseDuration(timeout)
			if err != nil {
				return fmt.Errorf("READ_TIMEOUT: %w", err)
			}
			c.ReadTimeout = d
		}

		if line := os.Getenv("CS_LINE"); line != "" {
			c.CSLine = line
		}

		if line := os.Getenv("SET_LINE"); line != "" {
			c.SetLine = line
		}

		if sim := os.Getenv("SIMULATE"); sim != "" {
			s, err := strconv.ParseBool(sim)
			if err != nil {
				return fmt.Errorf("SIMULATE: %w", err)
			}
			c.Simulate = s
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTTBroker = broker
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MQTTClientID = id
		}

		if topic := os.Getenv("MQTT_TOPIC"); topic != "" {
			c.MQTTTopic = topic
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags that were set
// explicitly, so they win over environment variables
func WithFlags(fSet *pflag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *pflag.Flag) {
			if err != nil {
				return
			}
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "port":
				c.SerialPort = f.Value.String()
			case "baud":
				c.BaudRate, err = strconv.Atoi(f.Value.String())
			case "log-level":
				c.LogLevel = f.Value.String()
			case "read-timeout":
				c.ReadTimeout, err = time.ParseDuration(f.Value.String())
			case "cs-line":
				c.CSLine = f.Value.String()
			case "set-line":
				c.SetLine = f.Value.String()
			case "simulate":
				c.Simulate, err = strconv.ParseBool(f.Value.String())
			case "mqtt-broker":
				c.MQTTBroker = f.Value.String()
			case "mqtt-client-id":
				c.MQTTClientID = f.Value.String()
			case "mqtt-topic":
				c.MQTTTopic = f.Value.String()
			}
			if err != nil {
				err = fmt.Errorf("--%s: %w", f.Name, err)
			}
		})
		return err
	}
}
