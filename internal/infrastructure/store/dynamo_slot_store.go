package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoSlotStore persists slots in a DynamoDB table keyed by
// namespace (partition key) and slot_key (sort key)
type DynamoSlotStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoSlot represents the DynamoDB item structure
type dynamoSlot struct {
	Namespace string `dynamodbav:"namespace"`
	SlotKey   string `dynamodbav:"slot_key"`
	Data      string `dynamodbav:"data"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func NewDynamoSlotStore(client *dynamodb.Client, tableName string) *DynamoSlotStore {
	return &DynamoSlotStore{client: client, tableName: tableName}
}

// Slot returns the slot for namespace/key
func (s *DynamoSlotStore) Slot(namespace, key string) Slot {
	return SlotFunc{
		LoadFunc: func(ctx context.Context) ([]byte, error) {
			return s.load(ctx, namespace, key)
		},
		SaveFunc: func(ctx context.Context, data []byte) error {
			return s.save(ctx, namespace, key, data)
		},
	}
}

func (s *DynamoSlotStore) load(ctx context.Context, namespace, key string) ([]byte, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       slotItemKey(namespace, key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get slot %s: %w", slotID(namespace, key), err)
	}
	if result.Item == nil {
		return nil, ErrSlotEmpty
	}

	var item dynamoSlot
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slot: %w", err)
	}
	return []byte(item.Data), nil
}

func (s *DynamoSlotStore) save(ctx context.Context, namespace, key string, data []byte) error {
	av, err := marshalSlotItem(namespace, key, data, time.Now())
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put slot %s: %w", slotID(namespace, key), err)
	}
	return nil
}

func slotItemKey(namespace, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"namespace": &types.AttributeValueMemberS{Value: namespace},
		"slot_key":  &types.AttributeValueMemberS{Value: key},
	}
}

func marshalSlotItem(namespace, key string, data []byte, now time.Time) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(dynamoSlot{
		Namespace: namespace,
		SlotKey:   key,
		Data:      string(data),
		UpdatedAt: now.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slot: %w", err)
	}
	return av, nil
}
