package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-xray-sdk-go/xray"

	"dashboard-rbac/internal/domain"
)

type RoleRepository struct{ client *Client }

func NewRoleRepository(client *Client) *RoleRepository {
	return &RoleRepository{client: client}
}

type roleItem struct {
	PK              string               `dynamodbav:"PK"`
	SK              string               `dynamodbav:"SK"`
	EntityType      string               `dynamodbav:"EntityType"`
	ID              string               `dynamodbav:"ID"`
	Name            string               `dynamodbav:"Name"`
	Email           string               `dynamodbav:"Email"`
	Note            string               `dynamodbav:"Note"`
	Description     string               `dynamodbav:"Description"`
	DashboardAccess []domain.AccessEntry `dynamodbav:"DashboardAccess"`
	CreatedAt       string               `dynamodbav:"CreatedAt"`
	UpdatedAt       string               `dynamodbav:"UpdatedAt"`
}

func (it roleItem) toDomain() domain.Role {
	createdAt, _ := time.Parse(time.RFC3339, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, it.UpdatedAt)
	access := it.DashboardAccess
	if access == nil {
		access = []domain.AccessEntry{}
	}
	return domain.Role{
		ID:              it.ID,
		Name:            it.Name,
		Email:           it.Email,
		Note:            it.Note,
		Description:     it.Description,
		DashboardAccess: access,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

func (r *RoleRepository) Create(ctx context.Context, role domain.Role) error {
	item := roleItem{
		PK:              rolePK(role.ID),
		SK:              metaSK,
		EntityType:      "ROLE",
		ID:              role.ID,
		Name:            role.Name,
		Email:           role.Email,
		Note:            role.Note,
		Description:     role.Description,
		DashboardAccess: role.DashboardAccess,
		CreatedAt:       role.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       role.UpdatedAt.Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.PutRole", func(ctx context.Context) error {
		_, err = r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrDuplicate
		}
		return err
	})
}

func (r *RoleRepository) Update(ctx context.Context, role domain.Role) error {
	accessAV, err := attributevalue.Marshal(role.DashboardAccess)
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.UpdateRole", func(ctx context.Context) error {
		_, err := r.client.db.UpdateItem(ctx, &awsv2dynamodb.UpdateItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: rolePK(role.ID)},
				"SK": &awsv2types.AttributeValueMemberS{Value: metaSK},
			},
			UpdateExpression: aws.String("SET #n = :n, Email = :e, Note = :o, Description = :d, DashboardAccess = :a, UpdatedAt = :u"),
			ExpressionAttributeNames: map[string]string{
				"#n": "Name",
			},
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":n": &awsv2types.AttributeValueMemberS{Value: role.Name},
				":e": &awsv2types.AttributeValueMemberS{Value: role.Email},
				":o": &awsv2types.AttributeValueMemberS{Value: role.Note},
				":d": &awsv2types.AttributeValueMemberS{Value: role.Description},
				":a": accessAV,
				":u": &awsv2types.AttributeValueMemberS{Value: role.UpdatedAt.Format(time.RFC3339)},
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (domain.Role, error) {
	var out *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, "DynamoDB.GetRole", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: rolePK(id)},
				"SK": &awsv2types.AttributeValueMemberS{Value: metaSK},
			},
		})
		return e
	})
	if err != nil {
		return domain.Role{}, err
	}
	if out.Item == nil {
		return domain.Role{}, domain.ErrNotFound
	}
	var raw roleItem
	if err := attributevalue.UnmarshalMap(out.Item, &raw); err != nil {
		return domain.Role{}, err
	}
	return raw.toDomain(), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	roles := []domain.Role{}
	var startKey map[string]awsv2types.AttributeValue
	for {
		var out *awsv2dynamodb.ScanOutput
		err := xray.Capture(ctx, "DynamoDB.ScanRoles", func(ctx context.Context) error {
			var e error
			out, e = r.client.db.Scan(ctx, &awsv2dynamodb.ScanInput{
				TableName:        aws.String(r.client.tableName),
				FilterExpression: aws.String("EntityType = :t"),
				ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
					":t": &awsv2types.AttributeValueMemberS{Value: "ROLE"},
				},
				ExclusiveStartKey: startKey,
			})
			return e
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			var raw roleItem
			if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
				return nil, err
			}
			roles = append(roles, raw.toDomain())
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return roles, nil
}

func (r *RoleRepository) Delete(ctx context.Context, ids ...string) error {
	return xray.Capture(ctx, "DynamoDB.DeleteRoles", func(ctx context.Context) error {
		for _, id := range ids {
			_, err := r.client.db.DeleteItem(ctx, &awsv2dynamodb.DeleteItemInput{
				TableName: aws.String(r.client.tableName),
				Key: map[string]awsv2types.AttributeValue{
					"PK": &awsv2types.AttributeValueMemberS{Value: rolePK(id)},
					"SK": &awsv2types.AttributeValueMemberS{Value: metaSK},
				},
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
