package kafka

import (
	"WikiStars/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// CommentsHandler 消费 comments 表的 Canal 变更，维护 Redis 里的人物评论数
type CommentsHandler struct{}

func NewCommentsHandler() *CommentsHandler {
	return &CommentsHandler{}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case UPDATE:
		return s.handleUpdate(ctx, canalMsg)
	default:
		return nil
	}
}

func (s *CommentsHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	figureID := StrToUint64(row["figure_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       figureID,
		CountKeyPrefix: consts.FigureCommentKey,
		DirtyKey:       consts.FigureDirtyKey,
		IsIncrement:    true,
	})

	log.InfoContext(ctx, "comment inserted", "figureID", figureID)
	return nil
}

// handleUpdate 软删除表现为 is_delete 从 0 翻转为 1
func (s *CommentsHandler) handleUpdate(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	if StrToUint64(row["is_delete"]) != 1 {
		return nil
	}
	// Old 里只包含发生变更的列，没有 is_delete 说明这次更新与删除无关
	if len(msg.Old) == 0 {
		return nil
	}
	oldVal, changed := msg.Old[0]["is_delete"]
	if !changed || StrToUint64(oldVal) == 1 {
		return nil
	}

	figureID := StrToUint64(row["figure_id"])
	ExecAction(ctx, ActionParams{
		TargetID:       figureID,
		CountKeyPrefix: consts.FigureCommentKey,
		DirtyKey:       consts.FigureDirtyKey,
		IsIncrement:    false,
	})

	log.InfoContext(ctx, "comment soft deleted", "figureID", figureID)
	return nil
}
