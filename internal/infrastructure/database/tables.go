package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"laboratorio_dental/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Index names shared with the repositories.
const (
	OrdersDoctorIDIndex       = "doctor_id-index"
	NotificationsOrderIDIndex = "order_id-index"
)

type tableSpec struct {
	name       string
	hashKey    string
	indexes    map[string]string // index name -> hash key
	attributes []string
}

func tableSpecs(t config.Tables) []tableSpec {
	return []tableSpec{
		{name: t.Orders, hashKey: "id", indexes: map[string]string{OrdersDoctorIDIndex: "doctor_id"}, attributes: []string{"id", "doctor_id"}},
		{name: t.Doctors, hashKey: "id", attributes: []string{"id"}},
		{name: t.Notifications, hashKey: "id", indexes: map[string]string{NotificationsOrderIDIndex: "order_id"}, attributes: []string{"id", "order_id"}},
		{name: t.Counters, hashKey: "id", attributes: []string{"id"}},
		{name: t.Users, hashKey: "username", attributes: []string{"username"}},
	}
}

// EnsureTables creates any missing table (pay-per-request, string keys) and waits until
// it is active. Meant for DynamoDB Local; production tables are provisioned outside the app.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client, tables config.Tables, logger *slog.Logger) error {
	for _, spec := range tableSpecs(tables) {
		created, err := createTable(ctx, ddb, spec)
		if err != nil {
			return fmt.Errorf("create table %s: %w", spec.name, err)
		}
		if !created {
			continue
		}
		logger.Info("dynamodb table created", slog.String("table", spec.name))
		waiter := dynamodb.NewTableExistsWaiter(ddb)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.name)}, 2*time.Minute); err != nil {
			return fmt.Errorf("wait table %s: %w", spec.name, err)
		}
	}
	return nil
}

func createTable(ctx context.Context, ddb *dynamodb.Client, spec tableSpec) (bool, error) {
	_, err := ddb.CreateTable(ctx, createTableInput(spec))
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func createTableInput(spec tableSpec) *dynamodb.CreateTableInput {
	attrs := make([]types.AttributeDefinition, 0, len(spec.attributes))
	for _, a := range spec.attributes {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(a), AttributeType: types.ScalarAttributeTypeS})
	}

	in := &dynamodb.CreateTableInput{
		TableName:            aws.String(spec.name),
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(spec.hashKey), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
	for name, key := range spec.indexes {
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName: aws.String(name),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String(key), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	return in
}
