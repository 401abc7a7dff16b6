package notify

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig holds connection settings for the MQTT mirror.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

const (
	mqttConnectTimeout = 30 * time.Second
	mqttPublishTimeout = 10 * time.Second
)

// MQTTPublisher mirrors dispatched messages onto an MQTT topic. Publish
// failures never affect the notification gate; the push provider is the only
// acknowledgment source.
type MQTTPublisher struct {
	config         MQTTConfig
	internalClient mqtt.Client
	mu             sync.Mutex
}

// NewMQTTPublisher creates an MQTT publisher with the provided configuration.
func NewMQTTPublisher(config MQTTConfig) *MQTTPublisher {
	return &MQTTPublisher{config: config}
}

// Connect attempts to establish a connection to the MQTT broker.
// It first resolves the broker's hostname and then attempts to connect.
func (p *MQTTPublisher) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, err := url.Parse(p.config.Broker)
	if err != nil {
		return fmt.Errorf("invalid broker URL: %w", err)
	}

	host := u.Hostname()
	if net.ParseIP(host) == nil {
		// Not an IP address, resolve it so DNS failures surface cleanly
		if _, err := net.DefaultResolver.LookupHost(ctx, host); err != nil {
			if dnsErr, ok := err.(*net.DNSError); ok {
				return dnsErr
			}
			return fmt.Errorf("failed to resolve hostname %s: %w", host, err)
		}
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(p.config.Broker)
	opts.SetClientID(p.config.ClientID)
	opts.SetUsername(p.config.Username)
	opts.SetPassword(p.config.Password)
	opts.SetCleanSession(true)

	p.internalClient = mqtt.NewClient(opts)

	token := p.internalClient.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	return nil
}

// Publish sends a message to the given subtopic under the configured topic
// prefix.
func (p *MQTTPublisher) Publish(ctx context.Context, subtopic, payload string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isConnected() {
		return fmt.Errorf("not connected to MQTT broker")
	}

	topic := p.config.Topic
	if subtopic != "" {
		topic = topic + "/" + subtopic
	}

	token := p.internalClient.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	return token.Error()
}

// IsConnected returns true if the publisher is currently connected to the broker.
func (p *MQTTPublisher) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isConnected()
}

func (p *MQTTPublisher) isConnected() bool {
	return p.internalClient != nil && p.internalClient.IsConnected()
}

// Disconnect closes the connection to the MQTT broker.
func (p *MQTTPublisher) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.internalClient != nil && p.internalClient.IsConnected() {
		p.internalClient.Disconnect(250)
	}
}
