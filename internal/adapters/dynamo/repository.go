// Package dynamo stores payments in a single DynamoDB table keyed by paymentId.
package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/ports"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	keyAttribute      = "paymentId"
	currencyAttribute = "currency"
)

// API is the subset of *dynamodb.Client the repository calls.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type paymentItem struct {
	PaymentID string  `dynamodbav:"paymentId"`
	Amount    float64 `dynamodbav:"amount"`
	Currency  string  `dynamodbav:"currency"`
}

func toItem(p *domain.Payment) paymentItem {
	return paymentItem{PaymentID: p.PaymentID, Amount: p.Amount, Currency: p.Currency}
}

func (i paymentItem) toDomain() *domain.Payment {
	return &domain.Payment{PaymentID: i.PaymentID, Amount: i.Amount, Currency: i.Currency}
}

type PaymentRepository struct {
	client         API
	table          string
	consistentRead bool
}

type Option func(*PaymentRepository)

// WithConsistentRead controls strongly consistent reads on GetItem and Scan.
// It defaults to true so the read-back after a create sees the write.
func WithConsistentRead(enabled bool) Option {
	return func(r *PaymentRepository) {
		r.consistentRead = enabled
	}
}

func NewPaymentRepository(client API, table string, opts ...Option) *PaymentRepository {
	r := &PaymentRepository{
		client:         client,
		table:          table,
		consistentRead: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) error {
	item, err := attributevalue.MarshalMap(toItem(p))
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(keyAttribute))).
		Build()
	if err != nil {
		return fmt.Errorf("build put condition: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("payment %s already exists: %w", p.PaymentID, err)
		}
		return fmt.Errorf("put payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			keyAttribute: &types.AttributeValueMemberS{Value: paymentID},
		},
		ConsistentRead: aws.Bool(r.consistentRead),
	})
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.NewPaymentNotFoundError(paymentID)
	}

	var item paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal payment: %w", err)
	}
	return item.toDomain(), nil
}

// ListPayments scans the whole table, following pagination to the end. The
// currency filter is applied server side as an exact match.
func (r *PaymentRepository) ListPayments(ctx context.Context, currency string) ([]*domain.Payment, error) {
	input := &dynamodb.ScanInput{
		TableName:      aws.String(r.table),
		ConsistentRead: aws.Bool(r.consistentRead),
	}

	if currency != "" {
		expr, err := expression.NewBuilder().
			WithFilter(expression.Name(currencyAttribute).Equal(expression.Value(currency))).
			Build()
		if err != nil {
			return nil, fmt.Errorf("build scan filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	payments := []*domain.Payment{}
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan payments: %w", err)
		}

		var items []paymentItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal payments: %w", err)
		}
		for _, item := range items {
			payments = append(payments, item.toDomain())
		}
	}
	return payments, nil
}
