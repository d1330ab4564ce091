package mongo

import (
	"context"
	"time"

	"fitstudio/coach-app/internal/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const disconnectTimeout = 10 * time.Second

// ConnectDB dials the configured MongoDB deployment and verifies it with
// a ping before handing the client out. The connection and ping both use
// the configured connect timeout.
func ConnectDB(cfg config.DatabaseConfig, log *logrus.Logger) (*mongo.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = disconnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	// The connect call can succeed against an unresponsive server, so
	// ping the primary on its own context.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), timeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		discCtx, discCancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer discCancel()
		_ = client.Disconnect(discCtx)
		return nil, err
	}

	log.WithField("database", cfg.Name).Info("connected to MongoDB")
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
