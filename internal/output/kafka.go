package output

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/chrisdamba/foodash/internal/logging"
	"github.com/chrisdamba/foodash/internal/models"
)

// KafkaOutput publishes each snapshot as one JSON message keyed by its id,
// so all tables of a snapshot land on the same partition.
type KafkaOutput struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

func newSaramaConfig(cfg *models.Config) *sarama.Config {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5
	sc.Producer.Retry.Backoff = 100 * time.Millisecond
	sc.Producer.Return.Successes = true // required by SyncProducer
	sc.Producer.Compression = sarama.CompressionSnappy
	sc.Net.DialTimeout = 30 * time.Second
	sc.Net.ReadTimeout = 30 * time.Second
	sc.Net.WriteTimeout = 30 * time.Second
	if cfg.SessionTimeoutMs > 0 {
		sc.Consumer.Group.Session.Timeout = time.Duration(cfg.SessionTimeoutMs) * time.Millisecond
	}
	return sc
}

func NewKafkaOutput(cfg *models.Config) (*KafkaOutput, error) {
	brokerList := strings.Split(cfg.KafkaBrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	out := NewKafkaOutputWithProducer(producer, cfg.KafkaTopic)
	out.logger.Info().Strs("brokers", brokerList).Msg("kafka producer created")
	return out, nil
}

func NewKafkaOutputWithProducer(producer sarama.SyncProducer, topic string) *KafkaOutput {
	return &KafkaOutput{
		producer: producer,
		topic:    topic,
		logger:   logging.With().Str("component", "kafka_output").Str("topic", topic).Logger(),
	}
}

func (k *KafkaOutput) WriteSnapshot(_ context.Context, snap *Snapshot) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}
	msg, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.ID, err)
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(snap.ID),
		Value: sarama.ByteEncoder(msg),
		Headers: []sarama.RecordHeader{
			{Key: []byte("view"), Value: []byte(snap.topic())},
		},
	})
	if err != nil {
		k.logger.Error().Err(err).Str("snapshot_id", snap.ID).Msg("failed to publish snapshot")
		return fmt.Errorf("publish snapshot %s: %w", snap.ID, err)
	}
	k.logger.Debug().
		Str("snapshot_id", snap.ID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("snapshot published")
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
