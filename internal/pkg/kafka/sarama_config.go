package kafka

import (
	"WikiStars/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 统一初始化 sarama.Config
// canal 变更流驱动计数器，漏消费会造成计数偏差，新消费组从最早位点追起
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()
	c.ClientID = "wikistars-api"

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetOldest

	c.Consumer.Group.Session.Timeout = time.Duration(kafkaCfg.Consumer.SessionTimeout) * time.Second
	c.Consumer.Group.Heartbeat.Interval = time.Duration(kafkaCfg.Consumer.HeartbeatInterval) * time.Second
	c.Consumer.Group.Rebalance.Timeout = time.Duration(kafkaCfg.Consumer.RebalanceTimeout) * time.Second
	c.Consumer.Offsets.AutoCommit.Enable = false
	c.Consumer.MaxProcessingTime = time.Duration(kafkaCfg.Consumer.MaxProcessingTime) * time.Second

	return c
}
