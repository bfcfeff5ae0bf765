package repository

import (
	"context"
	"strconv"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/infrastructure/database"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// orderNumberGuardPrefix prefixes the guard items that make order numbers unique.
// Guards live in the counters table next to the sequence documents.
const orderNumberGuardPrefix = "order_number#"

type jobItemItem struct {
	Category string `dynamodbav:"category"`
	Type     string `dynamodbav:"type"`
	Units    int    `dynamodbav:"units"`
	UnitCost string `dynamodbav:"unit_cost"`
}

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	Amount            string `dynamodbav:"amount"`
	Date              string `dynamodbav:"date"`
	Description       string `dynamodbav:"description,omitempty"`
	ProviderPaymentID string `dynamodbav:"provider_payment_id,omitempty"`
}

type noteItem struct {
	ID        string `dynamodbav:"id"`
	Text      string `dynamodbav:"text"`
	Author    string `dynamodbav:"author"`
	Timestamp string `dynamodbav:"timestamp"`
}

type orderItem struct {
	ID              string        `dynamodbav:"id"`
	OrderNumber     string        `dynamodbav:"order_number"`
	DoctorID        string        `dynamodbav:"doctor_id"`
	PatientName     string        `dynamodbav:"patient_name"`
	JobItems        []jobItemItem `dynamodbav:"job_items"`
	CaseDescription string        `dynamodbav:"case_description"`
	Priority        string        `dynamodbav:"priority"`
	Cost            string        `dynamodbav:"cost"`
	Payments        []paymentItem `dynamodbav:"payments"`
	Notes           []noteItem    `dynamodbav:"notes"`
	Status          string        `dynamodbav:"status"`
	CreationDate    string        `dynamodbav:"creation_date"`
	CompletionDate  string        `dynamodbav:"completion_date,omitempty"`
	Version         int64         `dynamodbav:"version"`
	UpdatedAt       string        `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: doctor_id-index (PK: doctor_id)
//
// Create also reads the doctors table inside its transaction.
// Payments and notes are embedded lists on the order document.
type OrderDynamoRepository struct {
	ddb          dynamoAPI
	tableName    string
	guardTable   string
	doctorsTable string
	now          func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb dynamoAPI, tables config.Tables) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:          ddb,
		tableName:    tables.Orders,
		guardTable:   tables.Counters,
		doctorsTable: tables.Doctors,
		now:          time.Now,
	}
}

// Create writes the order and its order-number guard in one transaction that also
// checks the doctor still exists. A taken order number yields
// interfaces.ErrOrderNumberTaken and a missing doctor interfaces.ErrDoctorMissing.
func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	guard := map[string]types.AttributeValue{
		"id":       &types.AttributeValueMemberS{Value: orderNumberGuardPrefix + o.OrderNumber},
		"order_id": &types.AttributeValueMemberS{Value: o.ID},
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.guardTable),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{ConditionCheck: &types.ConditionCheck{
				TableName:                aws.String(r.doctorsTable),
				Key:                      stringKey("id", o.DoctorID),
				ConditionExpression:      aws.String("attribute_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if codes, ok := cancellationCodes(err); ok {
			if len(codes) > 2 && codes[2] == conditionalCheckFailedCode {
				return entities.Order{}, interfaces.ErrDoctorMissing
			}
			if len(codes) > 1 && codes[1] == conditionalCheckFailedCode {
				return entities.Order{}, interfaces.ErrOrderNumberTaken
			}
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}
	return decodeOrder(out.Item)
}

func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
}

func (r *OrderDynamoRepository) ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		FilterExpression:         aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
}

func (r *OrderDynamoRepository) ListByDoctorID(ctx context.Context, doctorID string) ([]entities.Order, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.OrdersDoctorIDIndex),
		KeyConditionExpression: aws.String("doctor_id = :did"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":did": &types.AttributeValueMemberS{Value: doctorID},
		},
	})

	var orders []entities.Order
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			o, err := decodeOrder(raw)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// ListIDsByDoctorID scans the base table with ConsistentRead, so orders written just
// before the call are included.
func (r *OrderDynamoRepository) ListIDsByDoctorID(ctx context.Context, doctorID string) ([]string, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ConsistentRead:           aws.Bool(true),
		FilterExpression:         aws.String("#did = :did"),
		ProjectionExpression:     aws.String("#id"),
		ExpressionAttributeNames: map[string]string{"#id": "id", "#did": "doctor_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":did": &types.AttributeValueMemberS{Value: doctorID},
		},
	})

	var ids []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			if s, ok := raw["id"].(*types.AttributeValueMemberS); ok && s.Value != "" {
				ids = append(ids, s.Value)
			}
		}
	}
	return ids, nil
}

func (r *OrderDynamoRepository) ListOrderNumbers(ctx context.Context) ([]string, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ProjectionExpression:     aws.String("#n"),
		ExpressionAttributeNames: map[string]string{"#n": "order_number"},
	})

	var numbers []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			if s, ok := raw["order_number"].(*types.AttributeValueMemberS); ok && s.Value != "" {
				numbers = append(numbers, s.Value)
			}
		}
	}
	return numbers, nil
}

// Save replaces the order if the stored version still equals o.Version.
// The stored and returned version is o.Version+1.
func (r *OrderDynamoRepository) Save(ctx context.Context, o entities.Order) (entities.Order, error) {
	expected := o.Version
	o.Version = expected + 1
	o.UpdatedAt = r.now().UTC()

	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, interfaces.ErrVersionConflict
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) AppendPayment(ctx context.Context, orderID string, p entities.Payment) (entities.Order, error) {
	return r.appendToList(ctx, orderID, "payments", toPaymentItem(p))
}

func (r *OrderDynamoRepository) AppendNote(ctx context.Context, orderID string, n entities.Note) (entities.Order, error) {
	return r.appendToList(ctx, orderID, "notes", toNoteItem(n))
}

// appendToList appends element to a list attribute in a single UpdateItem, so concurrent
// appends never overwrite each other. A missing order returns a zero Order.
func (r *OrderDynamoRepository) appendToList(ctx context.Context, orderID, field string, element interface{}) (entities.Order, error) {
	elem, err := attributevalue.MarshalMap(element)
	if err != nil {
		return entities.Order{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", orderID),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression: aws.String(
			"SET #list = list_append(if_not_exists(#list, :empty), :elem), " +
				"#version = if_not_exists(#version, :zero) + :one, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#list":       field,
			"#version":    "version",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":elem":  &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberM{Value: elem}}},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":zero":  &types.AttributeValueMemberN{Value: "0"},
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":now":   &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	return decodeOrder(out.Attributes)
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
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

func (r *OrderDynamoRepository) scan(ctx context.Context, in *dynamodb.ScanInput) ([]entities.Order, error) {
	p := dynamodb.NewScanPaginator(r.ddb, in)

	var orders []entities.Order
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			o, err := decodeOrder(raw)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func decodeOrder(raw map[string]types.AttributeValue) (entities.Order, error) {
	var it orderItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	// Lists are always written as (possibly empty) L values so list_append works on them.
	jobs := make([]jobItemItem, 0, len(o.JobItems))
	for _, j := range o.JobItems {
		jobs = append(jobs, jobItemItem{Category: j.Category, Type: j.Type, Units: j.Units, UnitCost: j.UnitCost.String()})
	}
	payments := make([]paymentItem, 0, len(o.Payments))
	for _, p := range o.Payments {
		payments = append(payments, toPaymentItem(p))
	}
	notes := make([]noteItem, 0, len(o.Notes))
	for _, n := range o.Notes {
		notes = append(notes, toNoteItem(n))
	}

	return orderItem{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		DoctorID:        o.DoctorID,
		PatientName:     o.PatientName,
		JobItems:        jobs,
		CaseDescription: o.CaseDescription,
		Priority:        string(o.Priority),
		Cost:            o.Cost.String(),
		Payments:        payments,
		Notes:           notes,
		Status:          string(o.Status),
		CreationDate:    formatTime(o.CreationDate),
		CompletionDate:  formatTimePtr(o.CompletionDate),
		Version:         o.Version,
		UpdatedAt:       formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	jobs := make([]entities.JobItem, 0, len(it.JobItems))
	for _, j := range it.JobItems {
		jobs = append(jobs, entities.JobItem{Category: j.Category, Type: j.Type, Units: j.Units, UnitCost: parseDecimal(j.UnitCost)})
	}
	payments := make([]entities.Payment, 0, len(it.Payments))
	for _, p := range it.Payments {
		payments = append(payments, fromPaymentItem(p))
	}
	notes := make([]entities.Note, 0, len(it.Notes))
	for _, n := range it.Notes {
		notes = append(notes, fromNoteItem(n))
	}

	return entities.Order{
		ID:              it.ID,
		OrderNumber:     it.OrderNumber,
		DoctorID:        it.DoctorID,
		PatientName:     it.PatientName,
		JobItems:        jobs,
		CaseDescription: it.CaseDescription,
		Priority:        entities.Priority(it.Priority),
		Cost:            parseDecimal(it.Cost),
		Payments:        payments,
		Notes:           notes,
		Status:          entities.OrderStatus(it.Status),
		CreationDate:    parseTime(it.CreationDate),
		CompletionDate:  parseTimePtr(it.CompletionDate),
		Version:         it.Version,
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		Amount:            p.Amount.String(),
		Date:              formatTime(p.Date),
		Description:       p.Description,
		ProviderPaymentID: p.ProviderPaymentID,
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:                it.ID,
		Amount:            parseDecimal(it.Amount),
		Date:              parseTime(it.Date),
		Description:       it.Description,
		ProviderPaymentID: it.ProviderPaymentID,
	}
}

func toNoteItem(n entities.Note) noteItem {
	return noteItem{ID: n.ID, Text: n.Text, Author: n.Author, Timestamp: formatTime(n.Timestamp)}
}

func fromNoteItem(it noteItem) entities.Note {
	return entities.Note{ID: it.ID, Text: it.Text, Author: it.Author, Timestamp: parseTime(it.Timestamp)}
}
