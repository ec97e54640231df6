package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/config"
)

// Connect builds a paho client from the configuration and connects it.
func Connect(cfg config.MQTTConfig, logger logrus.FieldLogger) (paho.Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(60 * time.Second)

	opts.SetOnConnectHandler(func(paho.Client) {
		logger.WithField("broker", cfg.Broker).Info("connected to MQTT broker")
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.WithError(err).Warn("MQTT connection lost")
	})

	client := paho.NewClient(opts)
	logger.WithField("broker", cfg.Broker).Info("connecting to MQTT broker...")
	if err := waitConnected(client.Connect(), connectTimeout, logger.WithField("broker", cfg.Broker)); err != nil {
		return nil, err
	}
	return client, nil
}

const connectTimeout = 10 * time.Second

// waitConnected waits for the first connection attempt. A timeout is not an
// error: with connect retry enabled paho keeps trying in the background.
func waitConnected(token paho.Token, timeout time.Duration, logger logrus.FieldLogger) error {
	if !token.WaitTimeout(timeout) {
		logger.WithField("timeout", timeout).Warn("MQTT broker not reachable yet, still retrying in the background")
		return nil
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}
