package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"bookshelf/internal/book"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase = "bookstore"
	booksCollection      = "books"
)

type bookDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	Year   *int               `bson:"year,omitempty"`
	Genre  *string            `bson:"genre,omitempty"`
}

func (d bookDocument) toBook() book.Book {
	return book.Book{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		Year:   d.Year,
		Genre:  d.Genre,
	}
}

// BookMongo stores books as documents in a MongoDB collection.
type BookMongo struct {
	coll    *mongo.Collection
	client  *mongo.Client
	timeout time.Duration
}

// NewBookMongo wraps an existing collection. The caller owns the client.
func NewBookMongo(coll *mongo.Collection, timeout time.Duration) *BookMongo {
	return &BookMongo{coll: coll, timeout: timeout}
}

// OpenMongo connects to uri, verifies the deployment is reachable and
// returns a repository over the "books" collection of the URI's database.
func OpenMongo(ctx context.Context, uri string, timeout time.Duration) (*BookMongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	repo := NewBookMongo(client.Database(mongoDatabaseName(uri)).Collection(booksCollection), timeout)
	repo.client = client
	return repo, nil
}

func mongoDatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDatabase
}

func (r *BookMongo) List(ctx context.Context) ([]book.Book, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, unavailable("find books", err)
	}
	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode books", err)
	}

	out := make([]book.Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toBook())
	}
	return out, nil
}

func (r *BookMongo) GetByID(ctx context.Context, id string) (book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.Book{}, book.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc bookDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, unavailable("find book", err)
	}
	return doc.toBook(), nil
}

func (r *BookMongo) Insert(ctx context.Context, b book.Book) (book.Book, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := bookDocument{
		ID:     primitive.NewObjectID(),
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
		Genre:  b.Genre,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return book.Book{}, unavailable("insert book", err)
	}
	return doc.toBook(), nil
}

func (r *BookMongo) UpdateByID(ctx context.Context, id string, p book.Patch) (book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.Book{}, book.ErrNotFound
	}

	update := mongoUpdate(p)
	if len(update) == 0 {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bookDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, unavailable("update book", err)
	}
	return doc.toBook(), nil
}

func (r *BookMongo) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return unavailable("delete book", err)
	}
	if res.DeletedCount == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *BookMongo) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, nil)
}

// Close disconnects the client if this repository opened it.
func (r *BookMongo) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}

// mongoUpdate turns a patch into $set/$unset operators. Cleared title and
// author are stored as empty strings so documents keep decoding into Book.
func mongoUpdate(p book.Patch) bson.D {
	set := bson.D{}
	unset := bson.D{}

	if p.Title.Present {
		set = append(set, bson.E{Key: "title", Value: p.Title.ValueOr("")})
	}
	if p.Author.Present {
		set = append(set, bson.E{Key: "author", Value: p.Author.ValueOr("")})
	}
	if p.Year.IsNull() {
		unset = append(unset, bson.E{Key: "year", Value: ""})
	} else if p.Year.Present {
		set = append(set, bson.E{Key: "year", Value: *p.Year.Value})
	}
	if p.Genre.IsNull() {
		unset = append(unset, bson.E{Key: "genre", Value: ""})
	} else if p.Genre.Present {
		set = append(set, bson.E{Key: "genre", Value: *p.Genre.Value})
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}
