package repository

import (
	"context"
	"slices"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type doctorItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Clinic    string `dynamodbav:"clinic"`
	Phone     string `dynamodbav:"phone"`
	Email     string `dynamodbav:"email"`
	Address   string `dynamodbav:"address"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// DoctorDynamoRepository persists Doctor in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The orders table is only touched by DeleteWithOrders.
type DoctorDynamoRepository struct {
	ddb         dynamoAPI
	tableName   string
	ordersTable string
}

var _ interfaces.IDoctorRepository = (*DoctorDynamoRepository)(nil)

func NewDoctorDynamoRepository(ddb dynamoAPI, tables config.Tables) *DoctorDynamoRepository {
	return &DoctorDynamoRepository{ddb: ddb, tableName: tables.Doctors, ordersTable: tables.Orders}
}

func (r *DoctorDynamoRepository) Create(ctx context.Context, d entities.Doctor) (entities.Doctor, error) {
	av, err := attributevalue.MarshalMap(toDoctorItem(d))
	if err != nil {
		return entities.Doctor{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Doctor{}, err
	}
	return d, nil
}

func (r *DoctorDynamoRepository) GetByID(ctx context.Context, id string) (entities.Doctor, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("id", id),
	})
	if err != nil {
		return entities.Doctor{}, err
	}
	if len(out.Item) == 0 {
		return entities.Doctor{}, nil
	}
	return decodeDoctor(out.Item)
}

// GetByIDs resolves many doctors with BatchGetItem. Unknown ids are absent from the map.
func (r *DoctorDynamoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]entities.Doctor, error) {
	found := make(map[string]entities.Doctor, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	for _, chunk := range chunkStrings(unique, maxBatchGetKeys) {
		keys := make([]map[string]types.AttributeValue, 0, len(chunk))
		for _, id := range chunk {
			keys = append(keys, stringKey("id", id))
		}
		request := map[string]types.KeysAndAttributes{r.tableName: {Keys: keys}}

		for attempt := 0; len(request) > 0; attempt++ {
			if attempt > maxBatchRetries {
				return nil, errUnprocessedItems
			}
			out, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, err
			}
			for _, raw := range out.Responses[r.tableName] {
				d, err := decodeDoctor(raw)
				if err != nil {
					return nil, err
				}
				found[d.ID] = d
			}
			request = out.UnprocessedKeys
		}
	}
	return found, nil
}

func (r *DoctorDynamoRepository) List(ctx context.Context) ([]entities.Doctor, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})

	var doctors []entities.Doctor
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			d, err := decodeDoctor(raw)
			if err != nil {
				return nil, err
			}
			doctors = append(doctors, d)
		}
	}
	return doctors, nil
}

// Update overwrites an existing doctor. A missing doctor returns a zero Doctor.
func (r *DoctorDynamoRepository) Update(ctx context.Context, d entities.Doctor) (entities.Doctor, error) {
	av, err := attributevalue.MarshalMap(toDoctorItem(d))
	if err != nil {
		return entities.Doctor{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Doctor{}, nil
		}
		return entities.Doctor{}, err
	}
	return d, nil
}

// DeleteWithOrders deletes the doctor and orderIDs in a single TransactWriteItems call.
// The doctor delete is conditioned on existence, so a missing doctor cancels the whole
// transaction and nothing is removed. Each order delete is conditioned on the order
// still belonging to doctorID; a failure there yields interfaces.ErrCascadeStale.
func (r *DoctorDynamoRepository) DeleteWithOrders(ctx context.Context, doctorID string, orderIDs []string) (bool, error) {
	if len(orderIDs)+1 > maxTransactItems {
		return false, interfaces.ErrCascadeTooLarge
	}

	items := make([]types.TransactWriteItem, 0, len(orderIDs)+1)
	items = append(items, types.TransactWriteItem{Delete: &types.Delete{
		TableName:                aws.String(r.tableName),
		Key:                      stringKey("id", doctorID),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}})
	for _, id := range orderIDs {
		items = append(items, types.TransactWriteItem{Delete: &types.Delete{
			TableName:                aws.String(r.ordersTable),
			Key:                      stringKey("id", id),
			ConditionExpression:      aws.String("#did = :did"),
			ExpressionAttributeNames: map[string]string{"#did": "doctor_id"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":did": &types.AttributeValueMemberS{Value: doctorID},
			},
		}})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		codes, ok := cancellationCodes(err)
		if !ok || len(codes) == 0 {
			return false, err
		}
		if codes[0] == conditionalCheckFailedCode {
			return false, nil
		}
		if slices.Contains(codes[1:], conditionalCheckFailedCode) {
			return false, interfaces.ErrCascadeStale
		}
		return false, err
	}
	return true, nil
}

func decodeDoctor(raw map[string]types.AttributeValue) (entities.Doctor, error) {
	var it doctorItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Doctor{}, err
	}
	return entities.Doctor{
		ID:        it.ID,
		Name:      it.Name,
		Clinic:    it.Clinic,
		Phone:     it.Phone,
		Email:     it.Email,
		Address:   it.Address,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}, nil
}

func toDoctorItem(d entities.Doctor) doctorItem {
	return doctorItem{
		ID:        d.ID,
		Name:      d.Name,
		Clinic:    d.Clinic,
		Phone:     d.Phone,
		Email:     d.Email,
		Address:   d.Address,
		CreatedAt: formatTime(d.CreatedAt),
		UpdatedAt: formatTime(d.UpdatedAt),
	}
}
