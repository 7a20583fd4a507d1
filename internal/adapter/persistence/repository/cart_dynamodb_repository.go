package repository

import (
	"context"
	"errors"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const cartItemsCartIDIndex = "cart_id-index"

type cartLineItem struct {
	ID              string   `dynamodbav:"id"`
	CartID          string   `dynamodbav:"cart_id"`
	ProductID       string   `dynamodbav:"product_id"`
	Quantity        int      `dynamodbav:"quantity"`
	BundleSize      int      `dynamodbav:"bundle_size"`
	SelectedItemIDs []string `dynamodbav:"selected_item_ids"`
	CreatedAt       string   `dynamodbav:"created_at"`
	UpdatedAt       string   `dynamodbav:"updated_at"`
}

// CartDynamoRepository persists cart lines in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: cart_id-index (PK: cart_id)
//
// selected_item_ids is stored as a list, not a string set, so the customer's
// selection order survives the round trip.
type CartDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ICartRepository = (*CartDynamoRepository)(nil)

func NewCartDynamoRepository(ddb dynamoAPI, tableName string) *CartDynamoRepository {
	return &CartDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CartDynamoRepository) Create(ctx context.Context, line entities.CartLineItem) (entities.CartLineItem, error) {
	av, err := attributevalue.MarshalMap(toCartLineItem(line))
	if err != nil {
		return entities.CartLineItem{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.CartLineItem{}, err
	}
	return line, nil
}

func (r *CartDynamoRepository) GetByID(ctx context.Context, id string) (entities.CartLineItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CartLineItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.CartLineItem{}, nil
	}

	var it cartLineItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CartLineItem{}, err
	}
	return fromCartLineItem(it), nil
}

func (r *CartDynamoRepository) ListByCartID(ctx context.Context, cartID string) ([]entities.CartLineItem, error) {
	var (
		lines    []entities.CartLineItem
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(cartItemsCartIDIndex),
			KeyConditionExpression: aws.String("cart_id = :cid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cid": &types.AttributeValueMemberS{Value: cartID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it cartLineItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			lines = append(lines, fromCartLineItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return lines, nil
}

func (r *CartDynamoRepository) UpdateSelection(ctx context.Context, id string, itemIDs []string) (entities.CartLineItem, error) {
	ids, err := attributevalue.Marshal(nonNil(itemIDs))
	if err != nil {
		return entities.CartLineItem{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #selected = :selected, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":selected":   ids,
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(nowUTC())},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#selected":   "selected_item_ids",
			"#updated_at": "updated_at",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.CartLineItem{}, nil
		}
		return entities.CartLineItem{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.CartLineItem{}, nil
	}
	var it cartLineItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.CartLineItem{}, err
	}
	return fromCartLineItem(it), nil
}

func (r *CartDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toCartLineItem(l entities.CartLineItem) cartLineItem {
	return cartLineItem{
		ID:              l.ID,
		CartID:          l.CartID,
		ProductID:       l.ProductID,
		Quantity:        l.Quantity,
		BundleSize:      l.BundleSize,
		SelectedItemIDs: nonNil(l.SelectedItemIDs),
		CreatedAt:       formatTime(l.CreatedAt),
		UpdatedAt:       formatTime(l.UpdatedAt),
	}
}

func fromCartLineItem(it cartLineItem) entities.CartLineItem {
	return entities.CartLineItem{
		ID:              it.ID,
		CartID:          it.CartID,
		ProductID:       it.ProductID,
		Quantity:        it.Quantity,
		BundleSize:      it.BundleSize,
		SelectedItemIDs: it.SelectedItemIDs,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
