package kafka

import (
	"WikiStars/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	votesConsumer sarama.ConsumerGroup
	votesHandler  sarama.ConsumerGroupHandler

	commentsConsumer sarama.ConsumerGroup
	commentsHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	votesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaVoteConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	votesHandler := NewVotesHandler()

	commentsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCommentConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	commentsHandler := NewCommentsHandler()

	return &ConsumerManager{
		votesConsumer:    votesConsumer,
		votesHandler:     votesHandler,
		commentsConsumer: commentsConsumer,
		commentsHandler:  commentsHandler,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaVoteConsumer.Topic
		log.Info("Vote consumer started", "topic", topic)
		for {
			if err := m.votesConsumer.Consume(ctx, []string{topic}, m.votesHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaCommentConsumer.Topic
		log.Info("Comment consumer started", "topic", topic)
		for {
			if err := m.commentsConsumer.Consume(ctx, []string{topic}, m.commentsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.votesConsumer.Close(); err != nil {
		log.Error("Failed to close vote consumer", "err", err)
	}
	if err := m.commentsConsumer.Close(); err != nil {
		log.Error("Failed to close comment consumer", "err", err)
	}

	return nil
}
