package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// MQTTNotifier publishes assignment changes on the per-device command topic
// the TV clients subscribe to.
type MQTTNotifier struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTNotifier connects to the broker and returns a notifier publishing
// on tv/<device>/commands.
func NewMQTTNotifier(brokerURL, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	return &MQTTNotifier{client: client}, nil
}

type playlistChangedMessage struct {
	Command    string     `json:"command"`
	PlaylistID *string    `json:"playlist_id"`
	StartedAt  *time.Time `json:"started_at"`
}

// PlaylistChanged publishes the new assignment to the device topic. A nil
// playlistID tells the device to stop playback.
func (n *MQTTNotifier) PlaylistChanged(deviceID string, playlistID *string, startedAt *time.Time) error {
	payload, err := json.Marshal(playlistChangedMessage{
		Command:    "playlist_changed",
		PlaylistID: playlistID,
		StartedAt:  startedAt,
	})
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("tv/%s/commands", deviceID)
	token := n.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to device %s: %v", deviceID, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
