package sink

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/jugglesearch/pkg/siteswap"
)

// mongoBatch is how many patterns are buffered before an insert.
const mongoBatch = 500

// archived is the stored form of a pattern.
type archived struct {
	Record  `bson:",inline"`
	Created time.Time `bson:"created"`
}

// Mongo archives patterns into a MongoDB collection, one document per
// pattern, and the status into a runs collection.
type Mongo struct {
	ctx     context.Context
	client  *mongo.Client
	owned   bool
	db      *mongo.Database
	run     run
	pending []any
	err     error
}

// DialMongo connects to uri and archives into the named database.
func DialMongo(ctx context.Context, uri, database, runID string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	m := NewMongo(ctx, client.Database(database), runID)
	m.client, m.owned = client, true
	return m, nil
}

// NewMongo archives into db through an existing client.
func NewMongo(ctx context.Context, db *mongo.Database, runID string) *Mongo {
	return &Mongo{ctx: ctx, db: db, run: newRun(runID)}
}

// RunID returns the identifier stored with every document.
func (m *Mongo) RunID() string { return m.run.id }

// Emit implements siteswap.Target.
func (m *Mongo) Emit(display, notation, animation string) {
	m.pending = append(m.pending, archived{
		Record:  m.run.record(display, notation, animation),
		Created: time.Now().UTC(),
	})
	if len(m.pending) >= mongoBatch {
		m.insert()
	}
}

// SetStatus implements siteswap.Target.
func (m *Mongo) SetStatus(msg string) {
	m.insert()
	if m.err != nil {
		return
	}
	_, m.err = m.db.Collection("runs").UpdateOne(m.ctx,
		bson.M{"_id": m.run.id},
		bson.M{"$set": bson.M{"status": msg, "patterns": m.run.seq, "updated": time.Now().UTC()}},
		options.Update().SetUpsert(true))
}

func (m *Mongo) insert() {
	if m.err != nil || len(m.pending) == 0 {
		return
	}
	_, m.err = m.db.Collection("patterns").InsertMany(m.ctx, m.pending)
	m.pending = m.pending[:0]
}

// Flush inserts buffered patterns and returns the first error.
func (m *Mongo) Flush() error {
	m.insert()
	return m.err
}

// Close flushes and, when the sink dialed its own client, disconnects.
func (m *Mongo) Close() error {
	err := m.Flush()
	if m.owned {
		if derr := m.client.Disconnect(m.ctx); err == nil {
			err = derr
		}
	}
	return err
}

var _ siteswap.Target = (*Mongo)(nil)
