package kafka

import (
	"WikiStars/internal/pkg/consts"
	"WikiStars/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
)

// VotesHandler 消费 votes 表的 Canal 变更，维护 Redis 里的人物票数与缓存失效
type VotesHandler struct{}

func NewVotesHandler() *VotesHandler {
	return &VotesHandler{}
}

func (s *VotesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("vote consumer setup")
	return nil
}

func (s *VotesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("vote consumer cleanup")
	return nil
}

func (s *VotesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-vote consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-vote process batch error", "err", err)
		return err
	}
	return nil
}

func (s *VotesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "votes")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case UPDATE:
		return s.handleUpdate(ctx, canalMsg)
	default:
		// 票不支持物理删除
		return nil
	}
}

// handleInsert 新票：INCR + DIRTY
func (s *VotesHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	figureID := StrToUint64(row["figure_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       figureID,
		CountKeyPrefix: consts.FigureVoteKey,
		DirtyKey:       consts.FigureDirtyKey,
		IsIncrement:    true,
	})

	log.InfoContext(ctx, "vote inserted", "figureID", figureID)
	return nil
}

// handleUpdate 改票不改变票数，只需要失效态度分布缓存
func (s *VotesHandler) handleUpdate(ctx context.Context, msg *CanalMessage) error {
	figureID := StrToUint64(msg.Data[0]["figure_id"])
	if figureID == 0 {
		return nil
	}

	invalidateVoteSummary(ctx, figureID)

	log.InfoContext(ctx, "vote updated", "figureID", figureID)
	return nil
}

func invalidateVoteSummary(ctx context.Context, figureID uint64) {
	key := consts.FigureVoteSummaryKey + strconv.FormatUint(figureID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "vote summary invalidate error", "figureID", figureID, "err", err)
	}
}
