package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	pkgconfig "github.com/cloud-wave-best-zizon/order-console/pkg/config"
)

const (
	skMetadata   = "METADATA"
	skItemPrefix = "ITEM#"
	pkCounter    = "COUNTER"
	gsi1Index    = "GSI1"
)

// DynamoDBAPI is the part of *dynamodb.Client the repository uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoDBRepository uses a single table: orders under PK ORDER#<id>/SK METADATA,
// their items under SK ITEM#<item_id>, and a GSI1 keyed by USER#<user_id>.
type DynamoDBRepository struct {
	client    DynamoDBAPI
	tableName string
}

func NewDynamoDBClient(ctx context.Context, cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func NewDynamoDBRepository(client DynamoDBAPI, tableName string) *DynamoDBRepository {
	return &DynamoDBRepository{
		client:    client,
		tableName: tableName,
	}
}

func orderPK(id int) string {
	return fmt.Sprintf("ORDER#%d", id)
}

func itemSK(itemID int) string {
	return skItemPrefix + strconv.Itoa(itemID)
}

func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func orderKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": stringAttr(orderPK(id)),
		"SK": stringAttr(skMetadata),
	}
}

func itemKeyAttrs(orderID, itemID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": stringAttr(orderPK(orderID)),
		"SK": stringAttr(itemSK(itemID)),
	}
}

// marshalOrder converts an order into a table row with its key attributes.
func marshalOrder(order *domain.Order) (map[string]types.AttributeValue, error) {
	if order.Items == nil {
		order.Items = []int{}
	}
	av, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	for k, v := range orderKey(order.ID) {
		av[k] = v
	}
	av["GSI1PK"] = stringAttr(fmt.Sprintf("USER#%d", order.UserID))
	av["GSI1SK"] = stringAttr(fmt.Sprintf("ORDER#%010d", order.ID))
	return av, nil
}

func marshalItem(item *domain.Item) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	for k, v := range itemKeyAttrs(item.OrderID, item.ItemID) {
		av[k] = v
	}
	return av, nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// nextID increments an atomic counter row and returns the new value.
func (r *DynamoDBRepository) nextID(ctx context.Context, name string) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": stringAttr(pkCounter),
			"SK": stringAttr(name),
		},
		UpdateExpression:          aws.String("ADD #v :one"),
		ExpressionAttributeNames:  map[string]string{"#v": "Value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}
	n, ok := out.Attributes["Value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s has no numeric value", name)
	}
	return strconv.Atoi(n.Value)
}

func (r *DynamoDBRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	id, err := r.nextID(ctx, "ORDER")
	if err != nil {
		return err
	}
	order.ID = id

	av, err := marshalOrder(order)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            orderKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrOrderNotFound
	}

	var order domain.Order
	if err := attributevalue.UnmarshalMap(out.Item, &order); err != nil {
		return nil, err
	}
	if order.Items == nil {
		order.Items = []int{}
	}
	return &order, nil
}

func (r *DynamoDBRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	av, err := marshalOrder(order)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if isConditionFailed(err) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) DeleteOrder(ctx context.Context, id int) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 orderKey(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if isConditionFailed(err) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := r.DeleteItem(ctx, id, it.ItemID); err != nil && !errors.Is(err, ErrItemNotFound) {
			return err
		}
	}
	return nil
}

func (r *DynamoDBRepository) query(ctx context.Context, in *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var rows []map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", r.tableName, err)
		}
		rows = append(rows, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return rows, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (r *DynamoDBRepository) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	rows, err := r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(gsi1Index),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAttr(fmt.Sprintf("USER#%d", userID)),
		},
	})
	if err != nil {
		return nil, err
	}

	orders := []domain.Order{}
	if err := attributevalue.UnmarshalListOfMaps(rows, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []int{}
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *DynamoDBRepository) AddItem(ctx context.Context, item *domain.Item) error {
	if _, err := r.GetOrder(ctx, item.OrderID); err != nil {
		return err
	}
	id, err := r.nextID(ctx, "ITEM")
	if err != nil {
		return err
	}
	item.ID = id

	av, err := marshalItem(item)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if isConditionFailed(err) {
		return ErrItemExists
	}
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) GetItem(ctx context.Context, orderID, itemID int) (*domain.Item, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            itemKeyAttrs(orderID, itemID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrItemNotFound
	}
	var item domain.Item
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *DynamoDBRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	av, err := marshalItem(item)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if isConditionFailed(err) {
		return ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) DeleteItem(ctx context.Context, orderID, itemID int) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 itemKeyAttrs(orderID, itemID),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if isConditionFailed(err) {
		return ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

func (r *DynamoDBRepository) ListItems(ctx context.Context, orderID int) ([]domain.Item, error) {
	rows, err := r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     stringAttr(orderPK(orderID)),
			":prefix": stringAttr(skItemPrefix),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := []domain.Item{}
	if err := attributevalue.UnmarshalListOfMaps(rows, &items); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
