package repository

import (
	"context"

	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type userItem struct {
	Username     string `dynamodbav:"username"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"password_hash"`
	Role         string `dynamodbav:"role"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// UserDynamoRepository persists User in DynamoDB keyed by username.
type UserDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb dynamoAPI, tables config.Tables) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tables.Users}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(userItem{
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    formatTime(u.CreatedAt),
	})
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#username)"),
		ExpressionAttributeNames: map[string]string{"#username": "username"},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.User{}, interfaces.ErrUsernameTaken
		}
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByUsername(ctx context.Context, username string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       stringKey("username", username),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return entities.User{
		Username:     it.Username,
		Name:         it.Name,
		PasswordHash: it.PasswordHash,
		Role:         entities.Role(it.Role),
		CreatedAt:    parseTime(it.CreatedAt),
	}, nil
}
