package services

import (
	"context"
	"encoding/json"
	"hash/fnv"

	kafkautils "github.com/bluewud/rate-engine/pkg/kafka"
	"github.com/bluewud/rate-engine/pkg/views"
	"github.com/bluewud/rate-engine/services/rate-api/configs"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// OutcomePublisher streams delivery outcomes to Kafka for the analytics
// pipeline. A nil brokers config yields a disabled publisher so local
// setups run without a cluster.
type OutcomePublisher interface {
	PublishOutcome(outcome views.DeliveryOutcome) error
	Close()
}

type OutcomePublisherImpl struct {
	logger   *zap.Logger
	producer *kafka.Producer
	cnf      *configs.Config
}

// NewOutcomePublisher initializes the outcome topic and producer. Returns
// nil when Kafka is not configured; callers treat a nil publisher as off.
func NewOutcomePublisher(logger *zap.Logger, ctx context.Context, cnf *configs.Config) OutcomePublisher {
	if cnf.KafkaBrokers == "" {
		logger.Warn("kafka brokers not configured, outcome publishing disabled")
		return nil
	}

	topicConfig := kafkautils.KafkaConfig{
		BootstrapServers: cnf.KafkaBrokers,
		Topics: []kafkautils.TopicConfig{
			{
				Topic:             cnf.KafkaOutcomeTopic,
				NumPartitions:     int(cnf.KafkaPartition),
				ReplicationFactor: 1,
				Config: map[string]string{
					"cleanup.policy": "delete",
				},
			},
		},
	}
	if err := kafkautils.InitKafkaTopics(logger, ctx, topicConfig); err != nil {
		logger.Fatal("failed to initialize kafka topics", zap.Error(err))
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cnf.KafkaBrokers,
		"acks":               "all",
		"enable.idempotence": "true",
		"retries":            "1",
	})
	if err != nil {
		logger.Fatal("failed to create kafka producer", zap.Error(err))
	}
	logger.Info("kafka producer created successfully", zap.String("brokers", cnf.KafkaBrokers))
	go handleDeliveryReports(logger, p)
	return &OutcomePublisherImpl{
		logger:   logger,
		producer: p,
		cnf:      cnf,
	}
}

func (o *OutcomePublisherImpl) PublishOutcome(outcome views.DeliveryOutcome) error {
	msgBytes, err := json.Marshal(outcome)
	if err != nil {
		return err
	}

	// Partition by carrier so one carrier's outcomes stay ordered.
	h := fnv.New32a()
	h.Write([]byte(outcome.CarrierID))
	partition := int32(h.Sum32() % o.cnf.KafkaPartition)

	return o.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &o.cnf.KafkaOutcomeTopic,
			Partition: partition,
		},
		Key:   []byte(outcome.CarrierID),
		Value: msgBytes,
	}, nil)
}

func (o *OutcomePublisherImpl) Close() {
	o.producer.Close()
}

func handleDeliveryReports(logger *zap.Logger, p *kafka.Producer) {
	for e := range p.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				logger.Error("failed to publish message", zap.Error(ev.TopicPartition.Error))
			}
		}
	}
}
