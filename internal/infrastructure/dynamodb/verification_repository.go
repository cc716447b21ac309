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

// VerificationRepository keys records by email, so a PutItem is an
// atomic replace of the previous record and at most one active record
// per email can exist. TTL on the table's TTLEpoch attribute reaps
// expired records; TTL reaping is lazy, so expiry is still checked on
// read.
type VerificationRepository struct{ client *Client }

func NewVerificationRepository(client *Client) *VerificationRepository {
	return &VerificationRepository{client: client}
}

type verificationItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Email      string `dynamodbav:"Email"`
	Code       string `dynamodbav:"Code"`
	Verified   bool   `dynamodbav:"Verified"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	ExpiresAt  string `dynamodbav:"ExpiresAt"`
	TTLEpoch   int64  `dynamodbav:"TTLEpoch"`
}

func (r *VerificationRepository) Replace(ctx context.Context, rec domain.VerificationRecord) error {
	item := verificationItem{
		PK:         verificationPK(rec.Email),
		SK:         metaSK,
		EntityType: "VERIFICATION",
		Email:      rec.Email,
		Code:       rec.Code,
		Verified:   rec.Verified,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		ExpiresAt:  rec.ExpiresAt.Format(time.RFC3339),
		TTLEpoch:   rec.ExpiresAt.Unix(),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.PutVerification", func(ctx context.Context) error {
		_, err = r.client.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName: aws.String(r.client.tableName),
			Item:      av,
		})
		return err
	})
}

func (r *VerificationRepository) GetByEmail(ctx context.Context, email string) (domain.VerificationRecord, error) {
	var out *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, "DynamoDB.GetVerification", func(ctx context.Context) error {
		var e error
		out, e = r.client.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: verificationPK(email)},
				"SK": &awsv2types.AttributeValueMemberS{Value: metaSK},
			},
		})
		return e
	})
	if err != nil {
		return domain.VerificationRecord{}, err
	}
	if out.Item == nil {
		return domain.VerificationRecord{}, domain.ErrNotFound
	}
	var raw verificationItem
	if err := attributevalue.UnmarshalMap(out.Item, &raw); err != nil {
		return domain.VerificationRecord{}, err
	}
	createdAt, _ := time.Parse(time.RFC3339, raw.CreatedAt)
	expiresAt, _ := time.Parse(time.RFC3339, raw.ExpiresAt)
	return domain.VerificationRecord{
		Email:     raw.Email,
		Code:      raw.Code,
		Verified:  raw.Verified,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (r *VerificationRepository) MarkVerified(ctx context.Context, email string) error {
	return xray.Capture(ctx, "DynamoDB.MarkVerified", func(ctx context.Context) error {
		_, err := r.client.db.UpdateItem(ctx, &awsv2dynamodb.UpdateItemInput{
			TableName: aws.String(r.client.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: verificationPK(email)},
				"SK": &awsv2types.AttributeValueMemberS{Value: metaSK},
			},
			UpdateExpression: aws.String("SET Verified = :v"),
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":v": &awsv2types.AttributeValueMemberBOOL{Value: true},
			},
			ConditionExpression: aws.String("attribute_exists(PK)"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrNotFound
		}
		return err
	})
}
