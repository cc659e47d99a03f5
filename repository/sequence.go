package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 业务编号前缀
const (
	QuoteNoPrefix   = "QUO"
	ProjectNoPrefix = "PRJ"
	OrderNoPrefix   = "PO"
	LeadNoPrefix    = "LEAD"
)

// NextSequenceCode 生成形如 PO-00001 的业务编号
// 通过 counters 集合上的原子自增实现，文档删除不会导致编号重复
func NextSequenceCode(ctx context.Context, prefix string) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := Collection(CountersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": prefix},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("生成业务编号失败 [%s]: %w", prefix, err)
	}

	return fmt.Sprintf("%s-%05d", prefix, counter.Seq), nil
}
