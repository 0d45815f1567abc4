package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/metrics"
)

// leadsCollection is the collection leads are written to
const leadsCollection = "lead"

// Client wraps a MongoDB connection with observability
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// Config holds MongoDB connection configuration
type Config struct {
	URL            string
	Database       string
	ConnectTimeout time.Duration
}

// NewClient creates a new MongoDB client and verifies the connection
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	// Test the connection
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("MongoDB client initialized",
		zap.String("database", cfg.Database),
	)

	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Disconnect(ctx); err != nil {
		logger.Warn("Failed to disconnect MongoDB client", zap.Error(err))
		return
	}
	logger.Info("MongoDB connection closed")
}

// Ping checks if the store connection is alive
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Database returns the underlying database handle for advanced usage
func (c *Client) Database() *mongo.Database {
	return c.database
}

// recordMetrics records store operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.MongoRequestDuration.WithLabelValues("mongo_"+operation, status).Observe(duration)
	metrics.MongoRequestTotal.WithLabelValues("mongo_"+operation, status).Inc()
}
