package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client   *mongo.Client
	URL      string
	Database string
}

func NewMongoDB(url, database string) *MongoDB {
	return &MongoDB{
		URL:      url,
		Database: database,
	}
}

func (m *MongoDB) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	return m.Client.Ping(ctx, nil)
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// DB returns the portal database handle.
func (m *MongoDB) DB() *mongo.Database {
	return m.Client.Database(m.Database)
}
