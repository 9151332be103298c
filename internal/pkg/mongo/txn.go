package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const txnTimeout = 10 * time.Second

// TxnRunner 将多文档写入包进一个原子事务
// fn 内部所有仓储调用必须使用传入的 ctx，驱动会把 Session 挂在上面
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type txnRunnerImpl struct {
	client *mongo.Client
}

func NewTxnRunner(client *mongo.Client) TxnRunner {
	return &txnRunnerImpl{client: client}
}

// Run 开启 Session 执行事务
// 驱动对 TransientTransactionError 自动重试，超时上限由 ctx 控制，不会无限重试
func (s *txnRunnerImpl) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, txnTimeout)
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOpts)

	return err
}
