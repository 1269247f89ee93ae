//go:build integration

package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/payment-records/internal/adapters/postgres"
	"github.com/DanielPopoola/payment-records/internal/config"
	"github.com/DanielPopoola/payment-records/internal/core/domain"
	"github.com/DanielPopoola/payment-records/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PaymentRepositoryTestSuite struct {
	suite.Suite
	container testcontainers.Container
	db        *postgres.DB
	repo      *postgres.PaymentRepository
}

func TestPaymentRepositorySuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositoryTestSuite))
}

func (s *PaymentRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432")
	s.Require().NoError(err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.db, err = postgres.Connect(ctx, dbConfig, logger)
	s.Require().NoError(err)
	s.Require().NoError(s.db.Migrate(ctx))
	// a second run must be a no-op
	s.Require().NoError(s.db.Migrate(ctx))

	s.repo = postgres.NewPaymentRepository(s.db)
}

func (s *PaymentRepositoryTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PaymentRepositoryTestSuite) SetupTest() {
	_, err := s.db.Pool.Exec(context.Background(), "TRUNCATE TABLE payments")
	s.Require().NoError(err)
}

func (s *PaymentRepositoryTestSuite) Test_CreateAndFind() {
	ctx := context.Background()
	p := &domain.Payment{PaymentID: "p-1", Amount: 99.99, Currency: "USD"}

	s.Require().NoError(s.repo.CreatePayment(ctx, p))

	found, err := s.repo.FindByID(ctx, "p-1")
	s.Require().NoError(err)
	assert.Equal(s.T(), p, found)
}

func (s *PaymentRepositoryTestSuite) Test_FindByID_NotFound() {
	found, err := s.repo.FindByID(context.Background(), "missing")

	assert.Nil(s.T(), found)
	assert.True(s.T(), domain.IsNotFound(err))
}

func (s *PaymentRepositoryTestSuite) Test_CreatePayment_DuplicateID() {
	ctx := context.Background()
	p := &domain.Payment{PaymentID: "dup", Amount: 1, Currency: "EUR"}

	s.Require().NoError(s.repo.CreatePayment(ctx, p))
	err := s.repo.CreatePayment(ctx, p)

	require.Error(s.T(), err)
	assert.True(s.T(), postgres.IsUniqueViolation(err))
}

func (s *PaymentRepositoryTestSuite) Test_ListPayments() {
	ctx := context.Background()
	for _, p := range []*domain.Payment{
		{PaymentID: "a", Amount: 100, Currency: "USD"},
		{PaymentID: "b", Amount: 200, Currency: "EUR"},
		{PaymentID: "c", Amount: 300, Currency: "USD"},
	} {
		s.Require().NoError(s.repo.CreatePayment(ctx, p))
	}

	all, err := s.repo.ListPayments(ctx, "")
	s.Require().NoError(err)
	assert.Len(s.T(), all, 3)

	usd, err := s.repo.ListPayments(ctx, "USD")
	s.Require().NoError(err)
	assert.Len(s.T(), usd, 2)

	none, err := s.repo.ListPayments(ctx, "usd")
	s.Require().NoError(err)
	assert.NotNil(s.T(), none)
	assert.Empty(s.T(), none)
}

func (s *PaymentRepositoryTestSuite) Test_ServiceRoundTrip() {
	ctx := context.Background()
	svc := service.NewPaymentService(
		s.repo,
		domain.MustCurrencySet(domain.DefaultCurrencies()),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	created, err := svc.CreatePayment(ctx, map[string]any{"amount": 12.5, "currency": "GBP"})
	s.Require().NoError(err)

	fetched, err := svc.GetPayment(ctx, created.PaymentID)
	s.Require().NoError(err)
	assert.Equal(s.T(), created, fetched)
}
