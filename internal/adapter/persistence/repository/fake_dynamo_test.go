package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo keeps a single table in memory and understands the expressions the
// repositories issue.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func keyOf(m map[string]types.AttributeValue, name string) string {
	if v, ok := m[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := keyOf(in.Item, "id")
	if _, exists := f.items[id]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key, "id")]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := keyOf(in.ExpressionAttributeValues, ":cid")
	var ids []string
	for id, it := range f.items {
		if keyOf(it, "cart_id") == want {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := &dynamodb.QueryOutput{}
	for _, id := range ids {
		out.Items = append(out.Items, f.items[id])
	}
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := keyOf(in.Key, "id")
	it, ok := f.items[id]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	for placeholder, attr := range in.ExpressionAttributeNames {
		if placeholder == "#id" {
			continue
		}
		if v, ok := in.ExpressionAttributeValues[":"+placeholder[1:]]; ok {
			it[attr] = v
		}
	}
	return &dynamodb.UpdateItemOutput{Attributes: it}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, keyOf(in.Key, "id"))
	return &dynamodb.DeleteItemOutput{}, nil
}
