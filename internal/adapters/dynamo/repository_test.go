package dynamo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/service"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI keeps items in insertion order and pages scans pageSize at a time.
// It understands only the expressions the repository builds: a single
// attribute_not_exists condition and a single equality filter.
type fakeAPI struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	order    []string
	pageSize int

	err        error
	puts       []*dynamodb.PutItemInput
	gets       []*dynamodb.GetItemInput
	scans      []*dynamodb.ScanInput
	dropOnRead bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		items:    make(map[string]map[string]types.AttributeValue),
		pageSize: 2,
	}
}

func keyOf(item map[string]types.AttributeValue) string {
	if s, ok := item[keyAttribute].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, in)
	if f.err != nil {
		return nil, f.err
	}

	key := keyOf(in.Item)
	if _, exists := f.items[key]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	if _, exists := f.items[key]; !exists {
		f.order = append(f.order, key)
	}
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.dropOnRead {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeAPI) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans = append(f.scans, in)
	if f.err != nil {
		return nil, f.err
	}

	start := 0
	if len(in.ExclusiveStartKey) > 0 {
		last := keyOf(in.ExclusiveStartKey)
		for i, k := range f.order {
			if k == last {
				start = i + 1
				break
			}
		}
	}
	end := start + f.pageSize
	if end > len(f.order) {
		end = len(f.order)
	}

	var wantAttr, wantValue string
	if in.FilterExpression != nil {
		for _, name := range in.ExpressionAttributeNames {
			wantAttr = name
		}
		for _, v := range in.ExpressionAttributeValues {
			wantValue = v.(*types.AttributeValueMemberS).Value
		}
	}

	out := &dynamodb.ScanOutput{}
	for _, k := range f.order[start:end] {
		item := f.items[k]
		if wantAttr != "" {
			if s, ok := item[wantAttr].(*types.AttributeValueMemberS); !ok || s.Value != wantValue {
				continue
			}
		}
		out.Items = append(out.Items, item)
	}
	if end < len(f.order) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			keyAttribute: &types.AttributeValueMemberS{Value: f.order[end-1]},
		}
	}
	return out, nil
}

func seed(t *testing.T, repo *PaymentRepository, payments ...*domain.Payment) {
	t.Helper()
	for _, p := range payments {
		require.NoError(t, repo.CreatePayment(context.Background(), p))
	}
}

func TestCreatePayment(t *testing.T) {
	api := newFakeAPI()
	repo := NewPaymentRepository(api, "payments")

	err := repo.CreatePayment(context.Background(), &domain.Payment{PaymentID: "p-1", Amount: 10.5, Currency: "USD"})
	require.NoError(t, err)

	require.Len(t, api.puts, 1)
	put := api.puts[0]
	assert.Equal(t, "payments", aws.ToString(put.TableName))
	assert.Contains(t, aws.ToString(put.ConditionExpression), "attribute_not_exists")
	assert.Equal(t, map[string]string{"#0": "paymentId"}, put.ExpressionAttributeNames)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "p-1"}, put.Item["paymentId"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "10.5"}, put.Item["amount"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USD"}, put.Item["currency"])
}

func TestCreatePayment_Duplicate(t *testing.T) {
	repo := NewPaymentRepository(newFakeAPI(), "payments")
	p := &domain.Payment{PaymentID: "p-1", Amount: 1, Currency: "USD"}
	seed(t, repo, p)

	err := repo.CreatePayment(context.Background(), p)

	var conditionFailed *types.ConditionalCheckFailedException
	assert.ErrorAs(t, err, &conditionFailed)
	assert.Contains(t, err.Error(), "p-1 already exists")
}

func TestCreatePayment_ClientError(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("throttled")
	repo := NewPaymentRepository(api, "payments")

	err := repo.CreatePayment(context.Background(), &domain.Payment{PaymentID: "p-1", Amount: 1, Currency: "USD"})

	assert.ErrorIs(t, err, api.err)
}

func TestFindByID(t *testing.T) {
	api := newFakeAPI()
	repo := NewPaymentRepository(api, "payments")
	seed(t, repo, &domain.Payment{PaymentID: "p-1", Amount: 1000, Currency: "EUR"})

	t.Run("found", func(t *testing.T) {
		p, err := repo.FindByID(context.Background(), "p-1")

		require.NoError(t, err)
		assert.Equal(t, &domain.Payment{PaymentID: "p-1", Amount: 1000, Currency: "EUR"}, p)
		assert.True(t, aws.ToBool(api.gets[len(api.gets)-1].ConsistentRead))
	})

	t.Run("not found", func(t *testing.T) {
		p, err := repo.FindByID(context.Background(), "missing")

		assert.Nil(t, p)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("eventual reads when configured", func(t *testing.T) {
		eventual := NewPaymentRepository(api, "payments", WithConsistentRead(false))

		_, err := eventual.FindByID(context.Background(), "p-1")

		require.NoError(t, err)
		assert.False(t, aws.ToBool(api.gets[len(api.gets)-1].ConsistentRead))
	})
}

func TestListPayments(t *testing.T) {
	api := newFakeAPI()
	repo := NewPaymentRepository(api, "payments")
	seed(t, repo,
		&domain.Payment{PaymentID: "a", Amount: 1, Currency: "USD"},
		&domain.Payment{PaymentID: "b", Amount: 2, Currency: "EUR"},
		&domain.Payment{PaymentID: "c", Amount: 3, Currency: "USD"},
		&domain.Payment{PaymentID: "d", Amount: 4, Currency: "GBP"},
		&domain.Payment{PaymentID: "e", Amount: 5, Currency: "USD"},
	)

	t.Run("follows every page", func(t *testing.T) {
		api.scans = nil

		all, err := repo.ListPayments(context.Background(), "")

		require.NoError(t, err)
		assert.Len(t, all, 5)
		assert.Len(t, api.scans, 3)
		assert.Nil(t, api.scans[0].FilterExpression)
	})

	t.Run("filters by currency", func(t *testing.T) {
		api.scans = nil

		usd, err := repo.ListPayments(context.Background(), "USD")

		require.NoError(t, err)
		require.Len(t, usd, 3)
		for _, p := range usd {
			assert.Equal(t, "USD", p.Currency)
		}
		require.NotNil(t, api.scans[0].FilterExpression)
		assert.Equal(t, map[string]string{"#0": "currency"}, api.scans[0].ExpressionAttributeNames)
	})

	t.Run("no match is an empty slice", func(t *testing.T) {
		none, err := repo.ListPayments(context.Background(), "usd")

		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("scan error", func(t *testing.T) {
		failing := newFakeAPI()
		failing.err = errors.New("access denied")

		_, err := NewPaymentRepository(failing, "payments").ListPayments(context.Background(), "")

		assert.ErrorIs(t, err, failing.err)
	})
}

func TestService_ReadBackMissIsVerificationFailure(t *testing.T) {
	api := newFakeAPI()
	api.dropOnRead = true
	svc := service.NewPaymentService(
		NewPaymentRepository(api, "payments"),
		domain.MustCurrencySet(domain.DefaultCurrencies()),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	p, err := svc.CreatePayment(context.Background(), map[string]any{"amount": 5.0, "currency": "USD"})

	assert.Nil(t, p)
	assert.True(t, domain.IsVerificationFailed(err))
	assert.Len(t, api.puts, 1)
	assert.Len(t, api.items, 1)
}
