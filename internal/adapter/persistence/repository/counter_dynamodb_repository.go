package repository

import (
	"context"
	"fmt"
	"strconv"

	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CounterDynamoRepository keeps one sequence document per key ("PTF-25", "ACR-25", ...).
//
// Table requirements:
//   - PK: id (string)
//   - seq (number)
type CounterDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ISequenceCounter = (*CounterDynamoRepository)(nil)

func NewCounterDynamoRepository(ddb dynamoAPI, tables config.Tables) *CounterDynamoRepository {
	return &CounterDynamoRepository{ddb: ddb, tableName: tables.Counters}
}

// Next increments the counter and returns the new value in one UpdateItem.
// A missing document starts at 1.
func (r *CounterDynamoRepository) Next(ctx context.Context, key string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      stringKey("id", key),
		UpdateExpression:         aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}

	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: missing seq in update result", key)
	}
	seq, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", key, err)
	}
	return seq, nil
}

// SeedAtLeast raises the counter to value. A counter already at or above value is left alone.
func (r *CounterDynamoRepository) SeedAtLeast(ctx context.Context, key string, value int64) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      stringKey("id", key),
		UpdateExpression:         aws.String("SET #seq = :v"),
		ConditionExpression:      aws.String("attribute_not_exists(#seq) OR #seq < :v"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)},
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		return err
	}
	return nil
}
