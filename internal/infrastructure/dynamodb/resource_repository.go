package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-xray-sdk-go/xray"

	"dashboard-rbac/internal/domain"
)

// ResourceRepository stores every admin collection in the shared table,
// one partition per collection so a list is a single Query.
type ResourceRepository struct{ client *Client }

func NewResourceRepository(client *Client) *ResourceRepository {
	return &ResourceRepository{client: client}
}

func (r *ResourceRepository) Create(ctx context.Context, resource string, doc domain.Document) error {
	body, err := attributevalue.Marshal(map[string]any(doc))
	if err != nil {
		return err
	}
	item := map[string]awsv2types.AttributeValue{
		"PK":         &awsv2types.AttributeValueMemberS{Value: resourcePK(resource)},
		"SK":         &awsv2types.AttributeValueMemberS{Value: docSK(doc.ID())},
		"EntityType": &awsv2types.AttributeValueMemberS{Value: "DOCUMENT"},
		"Body":       body,
	}
	return xray.Capture(ctx, "DynamoDB.PutDocument", func(ctx context.Context) error {
		_, err := r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName:           aws.String(r.client.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrDuplicate
		}
		return err
	})
}

// Update merges the update body into the stored document; the id is
// routing only and never part of the body.
func (r *ResourceRepository) Update(ctx context.Context, resource, id string, data domain.Document) error {
	current, err := r.GetByID(ctx, resource, id)
	if err != nil {
		return err
	}
	for k, v := range data {
		current[k] = v
	}
	body, err := attributevalue.Marshal(map[string]any(current))
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.UpdateDocument", func(ctx context.Context) error {
		_, err := r.client.db.UpdateItem(ctx, &awsv2dynamodb.UpdateItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: resourcePK(resource)},
				"SK": &awsv2types.AttributeValueMemberS{Value: docSK(id)},
			},
			UpdateExpression: aws.String("SET Body = :b"),
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":b": body,
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}

func (r *ResourceRepository) GetByID(ctx context.Context, resource, id string) (domain.Document, error) {
	var out *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, "DynamoDB.GetDocument", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: resourcePK(resource)},
				"SK": &awsv2types.AttributeValueMemberS{Value: docSK(id)},
			},
		})
		return e
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	return unmarshalDocument(out.Item)
}

func (r *ResourceRepository) List(ctx context.Context, resource string) ([]domain.Document, error) {
	docs := []domain.Document{}
	var startKey map[string]awsv2types.AttributeValue
	for {
		var out *awsv2dynamodb.QueryOutput
		err := xray.Capture(ctx, "DynamoDB.QueryDocuments", func(ctx context.Context) error {
			var e error
			out, e = r.client.db.Query(ctx, &awsv2dynamodb.QueryInput{
				TableName:              aws.String(r.client.tableName),
				KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
				ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
					":pk": &awsv2types.AttributeValueMemberS{Value: resourcePK(resource)},
					":sk": &awsv2types.AttributeValueMemberS{Value: "DOC#"},
				},
				ExclusiveStartKey: startKey,
			})
			return e
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			doc, err := unmarshalDocument(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return docs, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, resource string, ids ...string) error {
	return xray.Capture(ctx, "DynamoDB.DeleteDocuments", func(ctx context.Context) error {
		for _, id := range ids {
			_, err := r.client.db.DeleteItem(ctx, &awsv2dynamodb.DeleteItemInput{
				TableName: aws.String(r.client.tableName),
				Key: map[string]awsv2types.AttributeValue{
					"PK": &awsv2types.AttributeValueMemberS{Value: resourcePK(resource)},
					"SK": &awsv2types.AttributeValueMemberS{Value: docSK(id)},
				},
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func unmarshalDocument(item map[string]awsv2types.AttributeValue) (domain.Document, error) {
	body, ok := item["Body"]
	if !ok {
		return nil, domain.ErrNotFound
	}
	var doc map[string]any
	if err := attributevalue.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return domain.Document(doc), nil
}
