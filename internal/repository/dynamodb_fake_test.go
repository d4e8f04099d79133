package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoDB understands exactly the key shapes, conditions and queries the
// repository issues.
type fakeDynamoDB struct {
	mu   sync.Mutex
	rows map[string]map[string]types.AttributeValue
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{rows: make(map[string]map[string]types.AttributeValue)}
}

func attrS(av map[string]types.AttributeValue, name string) string {
	if s, ok := av[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func rowKey(key map[string]types.AttributeValue) string {
	return attrS(key, "PK") + "|" + attrS(key, "SK")
}

func (f *fakeDynamoDB) checkCondition(cond *string, exists bool) error {
	switch aws.ToString(cond) {
	case "attribute_exists(PK)":
		if !exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	case "attribute_not_exists(PK)":
		if exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}
	return nil
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := rowKey(in.Item)
	_, exists := f.rows[k]
	if err := f.checkCondition(in.ConditionExpression, exists); err != nil {
		return nil, err
	}
	f.rows[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.rows[rowKey(in.Key)]}, nil
}

func (f *fakeDynamoDB) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := rowKey(in.Key)
	row, ok := f.rows[k]
	if !ok {
		row = map[string]types.AttributeValue{"PK": in.Key["PK"], "SK": in.Key["SK"]}
	}
	n := 0
	if v, ok := row["Value"].(*types.AttributeValueMemberN); ok {
		n, _ = strconv.Atoi(v.Value)
	}
	n++
	row["Value"] = &types.AttributeValueMemberN{Value: strconv.Itoa(n)}
	f.rows[k] = row
	return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{"Value": row["Value"]}}, nil
}

func (f *fakeDynamoDB) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := rowKey(in.Key)
	_, exists := f.rows[k]
	if err := f.checkCondition(in.ConditionExpression, exists); err != nil {
		return nil, err
	}
	delete(f.rows, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoDB) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pk := attrS(in.ExpressionAttributeValues, ":pk")
	prefix := attrS(in.ExpressionAttributeValues, ":prefix")

	var out []map[string]types.AttributeValue
	for _, row := range f.rows {
		if aws.ToString(in.IndexName) == gsi1Index {
			if attrS(row, "GSI1PK") == pk {
				out = append(out, row)
			}
			continue
		}
		if attrS(row, "PK") == pk && strings.HasPrefix(attrS(row, "SK"), prefix) {
			out = append(out, row)
		}
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}
