package mongo

import (
	"context"
	"strings"

	"github.com/JustKota/FrvttaeProyect/config"

	"github.com/pkg/errors"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// clientConn adapts one mongo client session to the Conn interface.
type clientConn struct {
	client *driver.Client
	db     *driver.Database
}

func (c *clientConn) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx, readpref.Primary()), "document store ping failed")
}

func (c *clientConn) Disconnect(ctx context.Context) error {
	return errors.Wrap(c.client.Disconnect(ctx), "document store disconnect failed")
}

func (c *clientConn) Collection(name string) *driver.Collection {
	return c.db.Collection(name)
}

// clientDialer establishes mongo client sessions from configuration.
type clientDialer struct {
	cfg *config.MongoConfig
}

// NewDialer creates the production dialer for the document store.
func NewDialer(cfg *config.Config) Dialer {
	return &clientDialer{cfg: cfg.Mongo}
}

// Dial creates and connects a client. The returned session is not yet
// verified; the connection manager follows up with a liveness probe.
func (d *clientDialer) Dial(ctx context.Context) (Conn, error) {
	uri := strings.Trim(d.cfg.URI, `"'`)

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(d.cfg.ConnectTimeout).
		SetConnectTimeout(d.cfg.ConnectTimeout).
		SetSocketTimeout(d.cfg.SocketTimeout).
		SetMaxPoolSize(d.cfg.MaxPoolSize).
		SetMinPoolSize(d.cfg.MinPoolSize).
		SetMaxConnIdleTime(d.cfg.MaxConnIdleTime).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create document store client")
	}

	return &clientConn{
		client: client,
		db:     client.Database(d.cfg.Database),
	}, nil
}
