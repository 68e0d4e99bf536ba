package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/frental-api/internal/domain"
)

// UnitRepo provides typed DynamoDB operations for the units table.
type UnitRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUnitRepo(client *dynamodb.Client, tableName string) *UnitRepo {
	return &UnitRepo{client: client, tableName: tableName}
}

func (r *UnitRepo) Put(ctx context.Context, u *domain.Unit) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal unit: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *UnitRepo) Get(ctx context.Context, unitID string) (*domain.Unit, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("unit_id", unitID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("unit not found: %w", domain.ErrNotFound)
	}
	var u domain.Unit
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UnitRepo) ListByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("property_id-index"),
		KeyConditionExpression:    aws.String("property_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: propertyID}},
	})
	if err != nil {
		return nil, err
	}
	var units []domain.Unit
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListByStatus returns all units with the given status via the status GSI.
func (r *UnitRepo) ListByStatus(ctx context.Context, status string) ([]domain.Unit, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("status-index"),
		KeyConditionExpression:    aws.String("#s = :v"),
		ExpressionAttributeNames:  map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: status}},
	})
	if err != nil {
		return nil, err
	}
	var units []domain.Unit
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *UnitRepo) Scan(ctx context.Context) ([]domain.Unit, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var units []domain.Unit
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *UnitRepo) Update(ctx context.Context, unitID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("unit_id", unitID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *UnitRepo) Delete(ctx context.Context, unitID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("unit_id", unitID),
	})
	return err
}
