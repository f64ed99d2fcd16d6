package main

import (
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Bridge relays payload between an MQTT broker and the radio: messages
// on <topic>/send are transmitted, received payload is published on
// <topic>/recv.
type Bridge struct {
	logger  *slog.Logger
	radio   Radio
	topic   string
	options *paho.ClientOptions
	client  paho.Client
}

func NewBridge(config *Config, radio Radio, logger *slog.Logger) *Bridge {
	b := &Bridge{
		logger: logger,
		radio:  radio,
		topic:  config.MQTTTopic,
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(config.MQTTBroker)
	opts.SetClientID(config.MQTTClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("MQTT connection lost", "error", err)
	})
	// Subscriptions are not kept across reconnects, so subscribe on
	// every connect
	opts.SetOnConnectHandler(func(c paho.Client) {
		logger.Info("MQTT connected", "topic", b.sendTopic())
		token := c.Subscribe(b.sendTopic(), 0, func(_ paho.Client, m paho.Message) {
			b.forward(m.Payload())
		})
		if token.Wait() && token.Error() != nil {
			logger.Error("MQTT subscribe failed", "topic", b.sendTopic(), "error", token.Error())
		}
	})
	b.options = opts
	return b
}

func (b *Bridge) sendTopic() string { return b.topic + "/send" }
func (b *Bridge) recvTopic() string { return b.topic + "/recv" }

// Connect blocks until the broker accepted the connection.
func (b *Bridge) Connect() error {
	b.client = paho.NewClient(b.options)
	token := b.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

// Publish sends received payload to <topic>/recv without waiting for the
// broker.
func (b *Bridge) Publish(p []byte) {
	if b.client == nil {
		return
	}
	b.client.Publish(b.recvTopic(), 0, false, p)
}

func (b *Bridge) forward(payload []byte) {
	if len(payload) == 0 {
		return
	}
	if err := b.radio.WriteBuffer(payload); err != nil {
		b.logger.Error("Failed to send MQTT payload", "error", err)
		return
	}
	b.logger.Debug("MQTT payload sent", "bytes", len(payload))
}

func (b *Bridge) Close() {
	if b.client != nil {
		b.client.Disconnect(250)
	}
}
