package repository

import (
	"context"
	"strconv"

	"storefront_bundles/internal/domain/entities"
	"storefront_bundles/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const paymentsCartIDIndex = "cart_id-index"

type checkoutPaymentItem struct {
	ID                 string   `dynamodbav:"id"`
	CartID             string   `dynamodbav:"cart_id"`
	Amount             string   `dynamodbav:"amount"`
	Currency           string   `dynamodbav:"currency"`
	LineIDs            []string `dynamodbav:"line_ids"`
	Date               string   `dynamodbav:"date"`
	Status             string   `dynamodbav:"status"`
	ProviderPayloadRaw string   `dynamodbav:"provider_payload_raw,omitempty"`
}

// CheckoutPaymentDynamoRepository persists CheckoutPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: cart_id-index (PK: cart_id)
type CheckoutPaymentDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ICheckoutPaymentRepository = (*CheckoutPaymentDynamoRepository)(nil)

func NewCheckoutPaymentDynamoRepository(ddb dynamoAPI, tableName string) *CheckoutPaymentDynamoRepository {
	return &CheckoutPaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CheckoutPaymentDynamoRepository) Create(ctx context.Context, p entities.CheckoutPayment) (entities.CheckoutPayment, error) {
	av, err := attributevalue.MarshalMap(toCheckoutPaymentItem(p))
	if err != nil {
		return entities.CheckoutPayment{}, err
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
		return entities.CheckoutPayment{}, err
	}
	return p, nil
}

func (r *CheckoutPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.CheckoutPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CheckoutPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.CheckoutPayment{}, nil
	}

	var it checkoutPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CheckoutPayment{}, err
	}
	return fromCheckoutPaymentItem(it), nil
}

func (r *CheckoutPaymentDynamoRepository) ListByCartID(ctx context.Context, cartID string) ([]entities.CheckoutPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsCartIDIndex),
		KeyConditionExpression: aws.String("cart_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: cartID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.CheckoutPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it checkoutPaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromCheckoutPaymentItem(it))
	}
	return items, nil
}

func toCheckoutPaymentItem(p entities.CheckoutPayment) checkoutPaymentItem {
	return checkoutPaymentItem{
		ID:                 p.ID,
		CartID:             p.CartID,
		Amount:             strconv.FormatFloat(p.Amount, 'f', -1, 64),
		Currency:           p.Currency,
		LineIDs:            nonNil(p.LineIDs),
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromCheckoutPaymentItem(it checkoutPaymentItem) entities.CheckoutPayment {
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	var raw []byte
	if it.ProviderPayloadRaw != "" {
		raw = []byte(it.ProviderPayloadRaw)
	}
	return entities.CheckoutPayment{
		ID:                 it.ID,
		CartID:             it.CartID,
		Amount:             amount,
		Currency:           it.Currency,
		LineIDs:            it.LineIDs,
		Date:               parseTime(it.Date),
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayloadRaw: raw,
	}
}
