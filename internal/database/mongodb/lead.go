package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/expatsolutions/leads-api/internal/models"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/metrics"
)

// InsertLead inserts a lead document and returns its generated identifier.
// The store stamps the creation time if the caller left it unset.
func (c *Client) InsertLead(ctx context.Context, lead *models.Lead) (string, error) {
	start := time.Now()
	operation := "insertLead"

	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	res, err := c.database.Collection(leadsCollection).InsertOne(ctx, lead)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("mongo", operation, "error", duration, zap.Error(err))
		return "", fmt.Errorf("failed to insert lead: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		recordMetrics(operation, "error", duration)
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("mongo", operation, "success", duration)

	return id.Hex(), nil
}

// ListLeads returns up to limit leads, newest first. ObjectIDs embed the
// creation time, so sorting on _id descending orders by recency.
func (c *Client) ListLeads(ctx context.Context, limit int) ([]*models.Lead, error) {
	start := time.Now()
	operation := "listLeads"

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := c.database.Collection(leadsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("mongo", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := make([]*models.Lead, 0)
	for cursor.Next(ctx) {
		var lead models.Lead
		if err := cursor.Decode(&lead); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to decode lead: %w", err)
		}
		leads = append(leads, &lead)
	}
	if err := cursor.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("mongo", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("mongo", operation, "success", duration, zap.Int("count", len(leads)))

	return leads, nil
}

// EnsureIndexes creates the indexes lead queries rely on
func (c *Client) EnsureIndexes(ctx context.Context) error {
	start := time.Now()
	operation := "ensureIndexes"

	_, err := c.database.Collection(leadsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("mongo", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to create lead indexes: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("mongo", operation, "success", duration)

	return nil
}
