package dynamo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/frental-api/internal/domain"
)

// LandlordRepo provides typed DynamoDB operations for the landlords table.
type LandlordRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLandlordRepo(client *dynamodb.Client, tableName string) *LandlordRepo {
	return &LandlordRepo{client: client, tableName: tableName}
}

func (r *LandlordRepo) Put(ctx context.Context, l *domain.Landlord) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal landlord: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LandlordRepo) Get(ctx context.Context, landlordID string) (*domain.Landlord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("landlord_id", landlordID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("landlord not found: %w", domain.ErrNotFound)
	}
	var l domain.Landlord
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LandlordRepo) GetByPhone(ctx context.Context, phone string) (*domain.Landlord, error) {
	return r.queryGSI(ctx, "phone_number-index", "phone_number", phone)
}

func (r *LandlordRepo) GetByEmail(ctx context.Context, email string) (*domain.Landlord, error) {
	return r.queryGSI(ctx, "email-index", "email", email)
}

func (r *LandlordRepo) Update(ctx context.Context, landlordID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("landlord_id", landlordID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// Scan returns every enabled landlord. The platform's landlord population is
// small enough that the admin directory reads the whole table.
func (r *LandlordRepo) Scan(ctx context.Context) ([]domain.Landlord, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("enable = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var landlords []domain.Landlord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &landlords); err != nil {
		return nil, err
	}
	return landlords, nil
}

// Search filters enabled landlords by a case-insensitive substring of name,
// phone, or email. Matching is done client-side after the scan.
func (r *LandlordRepo) Search(ctx context.Context, query string) ([]domain.Landlord, error) {
	landlords, err := r.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return landlords, nil
	}
	q := strings.ToLower(query)
	matched := landlords[:0]
	for _, l := range landlords {
		if strings.Contains(strings.ToLower(l.FullName), q) ||
			strings.Contains(strings.ToLower(l.PhoneNumber), q) ||
			strings.Contains(strings.ToLower(l.Email), q) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (r *LandlordRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Landlord, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("landlord not found: %w", domain.ErrNotFound)
	}
	var l domain.Landlord
	if err := attributevalue.UnmarshalMap(out.Items[0], &l); err != nil {
		return nil, err
	}
	return &l, nil
}
