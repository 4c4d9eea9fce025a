package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// KafkaPublisher encapsula o writer Kafka e o logger.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher cria um publisher para o tópico de odds raspadas.
// Em ambiente local/dev garante a existência do tópico via controller do
// cluster antes de inicializar o writer.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	if len(brokers) == 0 {
		log.Fatal("kafka brokers not provided")
	}

	if env := os.Getenv("ENV"); env == "" || env == "local" || env == "dev" {
		ensureTopic(brokers, topic, log)
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		log:    log,
	}
}

// ensureTopic emite CreateTopics via controller do cluster.
// Particionamento e replicação compatíveis com single-broker.
func ensureTopic(brokers []string, topic string, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		log.Fatal("failed to connect to kafka", zap.Error(err))
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		log.Fatal("failed to get kafka controller", zap.Error(err))
	}

	controllerAddr := fmt.Sprintf("%s:%d", controller.Host, controller.Port)
	cconn, err := kafka.DialContext(ctx, "tcp", controllerAddr)
	if err != nil {
		log.Fatal("failed to dial controller", zap.Error(err))
	}
	defer cconn.Close()

	cfg := kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}

	if err := cconn.CreateTopics(cfg); err != nil && !strings.Contains(err.Error(), "already exists") {
		log.Warn("failed to create kafka topic", zap.String("topic", topic), zap.Error(err))
	} else if err == nil {
		log.Info("kafka topic created", zap.String("topic", topic))
	}
}

// Publish serializa o registro em JSON e envia para o tópico configurado.
// A chave usa o MarketID: registros do mesmo mercado caem na mesma partição.
func (p *KafkaPublisher) Publish(ctx context.Context, rec events.LayOddsRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(rec.MarketID),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish lay odds record", zap.Error(err))
		return err
	}

	p.log.Debug("published lay odds record",
		zap.String("market_id", rec.MarketID),
		zap.String("selection", rec.Selection),
	)
	return nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
