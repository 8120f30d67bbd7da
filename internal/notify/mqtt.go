package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 3 * time.Second

// publisher is the subset of mqtt.Client used here.
type publisher interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT publishes notifications at QoS 0 to a single topic.
type MQTT struct {
	client publisher
	topic  string
}

// DialMQTT connects to broker and returns a notifier publishing to topic.
func DialMQTT(broker, clientID, topic string) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTT{client: client, topic: topic}, nil
}

func (m *MQTT) Available() bool { return m.client != nil && m.client.IsConnected() }

func (m *MQTT) Notify(_ context.Context, n Notification) {
	if !m.Available() {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		slog.Warn("notification encode failed", "action", "notify_mqtt", "error", err)
		return
	}
	token := m.client.Publish(m.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		slog.Warn("notification publish timed out", "action", "notify_mqtt", "key", m.topic)
		return
	}
	if err := token.Error(); err != nil {
		slog.Warn("notification publish failed", "action", "notify_mqtt", "key", m.topic, "error", err)
	}
}

// Close disconnects from the broker.
func (m *MQTT) Close() {
	if c, ok := m.client.(mqtt.Client); ok {
		c.Disconnect(250)
	}
}
