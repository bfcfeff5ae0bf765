package repository

import (
	"context"
	"sort"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/infrastructure/database"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type notificationItem struct {
	ID        string `dynamodbav:"id"`
	OrderID   string `dynamodbav:"order_id"`
	Message   string `dynamodbav:"message"`
	Read      bool   `dynamodbav:"read"`
	CreatedAt string `dynamodbav:"created_at"`
}

// NotificationDynamoRepository persists Notification in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
type NotificationDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.INotificationRepository = (*NotificationDynamoRepository)(nil)

func NewNotificationDynamoRepository(ddb dynamoAPI, tables config.Tables) *NotificationDynamoRepository {
	return &NotificationDynamoRepository{ddb: ddb, tableName: tables.Notifications}
}

func (r *NotificationDynamoRepository) Create(ctx context.Context, n entities.Notification) (entities.Notification, error) {
	av, err := attributevalue.MarshalMap(toNotificationItem(n))
	if err != nil {
		return entities.Notification{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Notification{}, err
	}
	return n, nil
}

// List returns every notification, newest first.
func (r *NotificationDynamoRepository) List(ctx context.Context) ([]entities.Notification, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})

	var out []entities.Notification
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			n, err := decodeNotification(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *NotificationDynamoRepository) MarkRead(ctx context.Context, id string) (entities.Notification, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #read = :true"),
		ExpressionAttributeNames: map[string]string{
			"#id":   "id",
			"#read": "read",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Notification{}, nil
		}
		return entities.Notification{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Notification{}, nil
	}
	return decodeNotification(out.Attributes)
}

func (r *NotificationDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          stringKey("id", id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

// DeleteAll removes every notification with BatchWriteItem and returns how many were removed.
func (r *NotificationDynamoRepository) DeleteAll(ctx context.Context) (int, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ProjectionExpression:     aws.String("#id"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})

	var ids []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		for _, raw := range page.Items {
			if s, ok := raw["id"].(*types.AttributeValueMemberS); ok {
				ids = append(ids, s.Value)
			}
		}
	}

	deleted := 0
	for _, chunk := range chunkStrings(ids, maxBatchWrites) {
		writes := make([]types.WriteRequest, 0, len(chunk))
		for _, id := range chunk {
			writes = append(writes, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: stringKey("id", id)}})
		}
		request := map[string][]types.WriteRequest{r.tableName: writes}

		for attempt := 0; len(request) > 0; attempt++ {
			if attempt > maxBatchRetries {
				return deleted, errUnprocessedItems
			}
			out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: request})
			if err != nil {
				return deleted, err
			}
			deleted += len(request[r.tableName]) - len(out.UnprocessedItems[r.tableName])
			request = out.UnprocessedItems
		}
	}
	return deleted, nil
}

// ExistsForOrder reports whether any notification of orderID has a message containing
// fragment. Only a count is read back from the order_id index.
func (r *NotificationDynamoRepository) ExistsForOrder(ctx context.Context, orderID, fragment string) (bool, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.NotificationsOrderIDIndex),
		KeyConditionExpression: aws.String("#order_id = :oid"),
		FilterExpression:       aws.String("contains(#message, :fragment)"),
		ExpressionAttributeNames: mergeNames(
			map[string]string{"#order_id": "order_id"},
			map[string]string{"#message": "message"},
		),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid":      &types.AttributeValueMemberS{Value: orderID},
			":fragment": &types.AttributeValueMemberS{Value: fragment},
		},
		Select: types.SelectCount,
	})

	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return false, err
		}
		if page.Count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func decodeNotification(raw map[string]types.AttributeValue) (entities.Notification, error) {
	var it notificationItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Notification{}, err
	}
	return entities.Notification{
		ID:        it.ID,
		OrderID:   it.OrderID,
		Message:   it.Message,
		Read:      it.Read,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}

func toNotificationItem(n entities.Notification) notificationItem {
	return notificationItem{
		ID:        n.ID,
		OrderID:   n.OrderID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: formatTime(n.CreatedAt),
	}
}
