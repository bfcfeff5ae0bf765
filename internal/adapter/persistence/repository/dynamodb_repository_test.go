package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTables = config.Tables{
	Orders:        "orders",
	Doctors:       "doctors",
	Notifications: "notifications",
	Counters:      "counters",
	Users:         "users",
}

func sampleOrder() entities.Order {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:          "o-1",
		OrderNumber: "ACR-25-0001",
		DoctorID:    "d-1",
		PatientName: "Ana",
		JobItems: []entities.JobItem{
			{Category: "ACRÍLICO", Type: "Placa", Units: 2, UnitCost: decimal.NewFromInt(150)},
		},
		Priority:     entities.PriorityNormal,
		Cost:         decimal.NewFromInt(300),
		Status:       entities.OrderStatusPendiente,
		CreationDate: created,
		UpdatedAt:    created,
	}
}

func TestOrderRepository_Create_WritesOrderAndGuardInOneTransaction(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewOrderDynamoRepository(ddb, testTables)

	_, err := repo.Create(context.Background(), sampleOrder())
	require.NoError(t, err)
	require.Len(t, ddb.transactions, 1)

	items := ddb.transactions[0].TransactItems
	require.Len(t, items, 3)
	assert.Equal(t, "orders", aws.ToString(items[0].Put.TableName))
	assert.Equal(t, "counters", aws.ToString(items[1].Put.TableName))
	guardID := items[1].Put.Item["id"].(*types.AttributeValueMemberS).Value
	assert.Equal(t, "order_number#ACR-25-0001", guardID)

	check := items[2].ConditionCheck
	require.NotNil(t, check)
	assert.Equal(t, "doctors", aws.ToString(check.TableName))
	assert.Equal(t, "d-1", check.Key["id"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "attribute_exists(#id)", aws.ToString(check.ConditionExpression))
}

func TestOrderRepository_Create_MissingDoctor(t *testing.T) {
	ddb := &fakeDynamo{
		transactWriteItems: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, canceled("None", "None", "ConditionalCheckFailed")
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	_, err := repo.Create(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, interfaces.ErrDoctorMissing)
}

func TestOrderRepository_ListIDsByDoctorID_ReadsConsistently(t *testing.T) {
	var got *dynamodb.ScanInput
	ddb := &fakeDynamo{
		scan: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			got = in
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{
				stringKey("id", "o-1"),
				stringKey("id", "o-2"),
			}}, nil
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	ids, err := repo.ListIDsByDoctorID(context.Background(), "d-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1", "o-2"}, ids)

	require.NotNil(t, got)
	assert.Nil(t, got.IndexName)
	assert.True(t, aws.ToBool(got.ConsistentRead))
	assert.Equal(t, "d-1", got.ExpressionAttributeValues[":did"].(*types.AttributeValueMemberS).Value)
}

func TestOrderRepository_Create_TakenNumber(t *testing.T) {
	ddb := &fakeDynamo{
		transactWriteItems: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, canceled("None", "ConditionalCheckFailed")
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	_, err := repo.Create(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, interfaces.ErrOrderNumberTaken)
}

func TestOrderRepository_Create_DuplicateIDIsNotANumberConflict(t *testing.T) {
	ddb := &fakeDynamo{
		transactWriteItems: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, canceled("ConditionalCheckFailed", "None")
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	_, err := repo.Create(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.False(t, errors.Is(err, interfaces.ErrOrderNumberTaken))
}

func TestOrderRepository_Save(t *testing.T) {
	t.Run("bumps version under condition", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewOrderDynamoRepository(ddb, testTables)
		o := sampleOrder()
		o.Version = 4

		saved, err := repo.Save(context.Background(), o)
		require.NoError(t, err)
		assert.Equal(t, int64(5), saved.Version)

		require.Len(t, ddb.puts, 1)
		put := ddb.puts[0]
		assert.Equal(t, "4", put.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
		assert.Equal(t, "5", put.Item["version"].(*types.AttributeValueMemberN).Value)
	})

	t.Run("stale version", func(t *testing.T) {
		ddb := &fakeDynamo{
			putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
				return nil, conditionFailed()
			},
		}
		repo := NewOrderDynamoRepository(ddb, testTables)

		_, err := repo.Save(context.Background(), sampleOrder())
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})
}

func TestOrderRepository_AppendPayment(t *testing.T) {
	stored := sampleOrder()
	stored.Payments = []entities.Payment{{ID: "p-1", Amount: decimal.NewFromInt(100), Date: stored.CreationDate}}
	stored.Version = 1
	attrs, err := attributevalue.MarshalMap(toOrderItem(stored))
	require.NoError(t, err)

	ddb := &fakeDynamo{
		updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return &dynamodb.UpdateItemOutput{Attributes: attrs}, nil
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	got, err := repo.AppendPayment(context.Background(), "o-1", stored.Payments[0])
	require.NoError(t, err)
	assert.Equal(t, "o-1", got.ID)
	assert.True(t, got.Balance().Equal(decimal.NewFromInt(200)))

	require.Len(t, ddb.updates, 1)
	assert.Equal(t, "payments", ddb.updates[0].ExpressionAttributeNames["#list"])
	assert.Contains(t, aws.ToString(ddb.updates[0].UpdateExpression), "list_append")
}

func TestOrderRepository_AppendNote_MissingOrder(t *testing.T) {
	ddb := &fakeDynamo{
		updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionFailed()
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	got, err := repo.AppendNote(context.Background(), "missing", entities.Note{ID: "n-1", Text: "x"})
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestOrderRepository_ListOrderNumbers_FollowsPages(t *testing.T) {
	calls := 0
	ddb := &fakeDynamo{
		scan: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			calls++
			if in.ExclusiveStartKey == nil {
				return &dynamodb.ScanOutput{
					Items:            []map[string]types.AttributeValue{{"order_number": &types.AttributeValueMemberS{Value: "PTF-25-0003"}}},
					LastEvaluatedKey: stringKey("id", "o-1"),
				}, nil
			}
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{{"order_number": &types.AttributeValueMemberS{Value: "ACR-25-0001"}}},
			}, nil
		},
	}
	repo := NewOrderDynamoRepository(ddb, testTables)

	numbers, err := repo.ListOrderNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PTF-25-0003", "ACR-25-0001"}, numbers)
	assert.Equal(t, 2, calls)
}

func TestDoctorRepository_DeleteWithOrders(t *testing.T) {
	t.Run("single transaction with doctor and orders", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewDoctorDynamoRepository(ddb, testTables)

		deleted, err := repo.DeleteWithOrders(context.Background(), "d-1", []string{"o-1", "o-2"})
		require.NoError(t, err)
		assert.True(t, deleted)

		require.Len(t, ddb.transactions, 1)
		items := ddb.transactions[0].TransactItems
		require.Len(t, items, 3)
		assert.Equal(t, "doctors", aws.ToString(items[0].Delete.TableName))
		for _, it := range items[1:] {
			del := it.Delete
			assert.Equal(t, "orders", aws.ToString(del.TableName))
			assert.Equal(t, "#did = :did", aws.ToString(del.ConditionExpression))
			assert.Equal(t, "doctor_id", del.ExpressionAttributeNames["#did"])
			assert.Equal(t, "d-1", del.ExpressionAttributeValues[":did"].(*types.AttributeValueMemberS).Value)
		}
	})

	t.Run("reassigned order cancels the cascade", func(t *testing.T) {
		ddb := &fakeDynamo{
			transactWriteItems: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
				return nil, canceled("None", "None", "ConditionalCheckFailed")
			},
		}
		repo := NewDoctorDynamoRepository(ddb, testTables)

		deleted, err := repo.DeleteWithOrders(context.Background(), "d-1", []string{"o-1", "o-2"})
		assert.ErrorIs(t, err, interfaces.ErrCascadeStale)
		assert.False(t, deleted)
	})

	t.Run("missing doctor deletes nothing", func(t *testing.T) {
		ddb := &fakeDynamo{
			transactWriteItems: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
				return nil, canceled("ConditionalCheckFailed", "None")
			},
		}
		repo := NewDoctorDynamoRepository(ddb, testTables)

		deleted, err := repo.DeleteWithOrders(context.Background(), "d-1", []string{"o-1"})
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		ddb := &fakeDynamo{
			transactWriteItems: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
				return nil, errors.New("throttled")
			},
		}
		repo := NewDoctorDynamoRepository(ddb, testTables)

		_, err := repo.DeleteWithOrders(context.Background(), "d-1", []string{"o-1"})
		assert.Error(t, err)
	})

	t.Run("too many orders is rejected before writing", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewDoctorDynamoRepository(ddb, testTables)
		ids := make([]string, maxTransactItems)
		for i := range ids {
			ids[i] = "o"
		}

		_, err := repo.DeleteWithOrders(context.Background(), "d-1", ids)
		assert.ErrorIs(t, err, interfaces.ErrCascadeTooLarge)
		assert.Empty(t, ddb.transactions)
	})
}

func TestDoctorRepository_GetByIDs_RetriesUnprocessedKeys(t *testing.T) {
	doc := func(id string) map[string]types.AttributeValue {
		av, _ := attributevalue.MarshalMap(doctorItem{ID: id, Name: "Dr " + id})
		return av
	}
	calls := 0
	ddb := &fakeDynamo{
		batchGetItem: func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.BatchGetItemOutput{
					Responses: map[string][]map[string]types.AttributeValue{"doctors": {doc("d-1")}},
					UnprocessedKeys: map[string]types.KeysAndAttributes{
						"doctors": {Keys: []map[string]types.AttributeValue{stringKey("id", "d-2")}},
					},
				}, nil
			}
			return &dynamodb.BatchGetItemOutput{
				Responses: map[string][]map[string]types.AttributeValue{"doctors": {doc("d-2")}},
			}, nil
		},
	}
	repo := NewDoctorDynamoRepository(ddb, testTables)

	found, err := repo.GetByIDs(context.Background(), []string{"d-1", "d-2", "d-1"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "Dr d-2", found["d-2"].Name)
	assert.Equal(t, 2, calls)
}

func TestCounterRepository_Next(t *testing.T) {
	ddb := &fakeDynamo{
		updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
				"seq": &types.AttributeValueMemberN{Value: "7"},
			}}, nil
		},
	}
	repo := NewCounterDynamoRepository(ddb, testTables)

	seq, err := repo.Next(context.Background(), "PTF-25")
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
	assert.Equal(t, "ADD #seq :one", aws.ToString(ddb.updates[0].UpdateExpression))
}

func TestCounterRepository_SeedAtLeast_IgnoresHigherCounter(t *testing.T) {
	ddb := &fakeDynamo{
		updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionFailed()
		},
	}
	repo := NewCounterDynamoRepository(ddb, testTables)

	assert.NoError(t, repo.SeedAtLeast(context.Background(), "PTF-25", 3))
}

func TestNotificationRepository_ExistsForOrder(t *testing.T) {
	ddb := &fakeDynamo{
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if in.ExpressionAttributeValues[":oid"].(*types.AttributeValueMemberS).Value == "o-1" {
				return &dynamodb.QueryOutput{Count: 1}, nil
			}
			return &dynamodb.QueryOutput{}, nil
		},
	}
	repo := NewNotificationDynamoRepository(ddb, testTables)

	ok, err := repo.ExistsForOrder(context.Background(), "o-1", "saldo pendiente")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForOrder(context.Background(), "o-2", "saldo pendiente")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotificationRepository_DeleteAll_Chunks(t *testing.T) {
	items := make([]map[string]types.AttributeValue, 30)
	for i := range items {
		items[i] = stringKey("id", "n")
	}
	ddb := &fakeDynamo{
		scan: func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			return &dynamodb.ScanOutput{Items: items}, nil
		},
	}
	repo := NewNotificationDynamoRepository(ddb, testTables)

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Len(t, ddb.batchWrites, 2)
}

func TestUserRepository_Create_Taken(t *testing.T) {
	ddb := &fakeDynamo{
		putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, conditionFailed()
		},
	}
	repo := NewUserDynamoRepository(ddb, testTables)

	_, err := repo.Create(context.Background(), entities.User{Username: "admin"})
	assert.ErrorIs(t, err, interfaces.ErrUsernameTaken)
}
