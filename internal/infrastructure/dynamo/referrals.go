package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/frental-api/internal/domain"
)

// ReferralRepo provides typed DynamoDB operations for the referrals table.
type ReferralRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReferralRepo(client *dynamodb.Client, tableName string) *ReferralRepo {
	return &ReferralRepo{client: client, tableName: tableName}
}

func (r *ReferralRepo) Put(ctx context.Context, ref *domain.Referral) error {
	item, err := attributevalue.MarshalMap(ref)
	if err != nil {
		return fmt.Errorf("marshal referral: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ReferralRepo) Get(ctx context.Context, referralID string) (*domain.Referral, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("referral_id", referralID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("referral not found: %w", domain.ErrNotFound)
	}
	var ref domain.Referral
	if err := attributevalue.UnmarshalMap(out.Item, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// List returns referrals ordered most-recent first, optionally filtered by status.
func (r *ReferralRepo) List(ctx context.Context, status string) ([]domain.Referral, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if status != "" {
		input.FilterExpression = aws.String("#s = :v")
		input.ExpressionAttributeNames = map[string]string{"#s": "status"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: status},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var refs []domain.Referral
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &refs); err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].CreatedAt.After(refs[j].CreatedAt) })
	return refs, nil
}

func (r *ReferralRepo) Update(ctx context.Context, referralID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("referral_id", referralID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
