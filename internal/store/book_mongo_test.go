package store

import (
	"context"
	"testing"
	"time"

	"bookshelf/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestBookMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	oid := primitive.NewObjectID()

	mt.Run("list", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "title", Value: "Dune"}, {Key: "author", Value: "Frank Herbert"}, {Key: "year", Value: 1965.0}, {Key: "__v", Value: 0}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Emma"}, {Key: "author", Value: "Jane Austen"}},
		))

		books, err := repo.List(ctx)

		require.NoError(mt, err)
		require.Len(mt, books, 2)
		assert.Equal(mt, oid.Hex(), books[0].ID)
		assert.Equal(mt, 1965, *books[0].Year)
		assert.Nil(mt, books[1].Year)
		assert.Nil(mt, books[1].Genre)
	})

	mt.Run("list store error", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		_, err := repo.List(ctx)

		assert.ErrorIs(mt, err, book.ErrStoreUnavailable)
	})

	mt.Run("insert assigns an object id", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert"})

		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(created.ID))
		assert.Equal(mt, "Dune", created.Title)
	})

	mt.Run("update returns the merged document", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Dune"},
			{Key: "author", Value: "Frank Herbert"},
			{Key: "genre", Value: "Classic"},
		}}))

		got, err := repo.UpdateByID(ctx, oid.Hex(), book.Patch{Genre: book.Some("Classic")})

		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), got.ID)
		assert.Equal(mt, "Classic", *got.Genre)
	})

	mt.Run("update with nulls returns the cleared document", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Dune"},
			{Key: "author", Value: "Frank Herbert"},
		}}))

		got, err := repo.UpdateByID(ctx, oid.Hex(), book.Patch{Year: book.Null[int](), Genre: book.Null[string]()})

		require.NoError(mt, err)
		assert.Nil(mt, got.Year)
		assert.Nil(mt, got.Genre)
	})

	mt.Run("update missing document", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateByID(ctx, oid.Hex(), book.Patch{Title: book.Some("x")})

		assert.ErrorIs(mt, err, book.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		assert.NoError(mt, repo.DeleteByID(ctx, oid.Hex()))
		assert.ErrorIs(mt, repo.DeleteByID(ctx, oid.Hex()), book.ErrNotFound)
	})

	mt.Run("malformed ids never reach the server", func(mt *mtest.T) {
		repo := NewBookMongo(mt.Coll, time.Second)

		_, err := repo.GetByID(ctx, "not-an-object-id")
		assert.ErrorIs(mt, err, book.ErrNotFound)
		_, err = repo.UpdateByID(ctx, "123", book.Patch{Title: book.Some("x")})
		assert.ErrorIs(mt, err, book.ErrNotFound)
		assert.ErrorIs(mt, repo.DeleteByID(ctx, "zz"), book.ErrNotFound)
	})
}

func TestMongoUpdate(t *testing.T) {
	testCases := []struct {
		name  string
		patch book.Patch
		want  bson.D
	}{
		{"empty", book.Patch{}, bson.D{}},
		{
			"set only",
			book.Patch{Title: book.Some("Dune"), Year: book.Some(1965)},
			bson.D{{Key: "$set", Value: bson.D{{Key: "title", Value: "Dune"}, {Key: "year", Value: 1965}}}},
		},
		{
			"null optional fields are unset",
			book.Patch{Year: book.Null[int](), Genre: book.Null[string]()},
			bson.D{{Key: "$unset", Value: bson.D{{Key: "year", Value: ""}, {Key: "genre", Value: ""}}}},
		},
		{
			"null title is blanked",
			book.Patch{Title: book.Null[string](), Genre: book.Null[string]()},
			bson.D{
				{Key: "$set", Value: bson.D{{Key: "title", Value: ""}}},
				{Key: "$unset", Value: bson.D{{Key: "genre", Value: ""}}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mongoUpdate(tc.patch))
		})
	}
}

func TestMongoDatabaseName(t *testing.T) {
	assert.Equal(t, "bookstore", mongoDatabaseName("mongodb://localhost:27017"))
	assert.Equal(t, "library", mongoDatabaseName("mongodb://user:pw@localhost:27017/library?authSource=admin"))
	assert.Equal(t, "catalog", mongoDatabaseName("mongodb+srv://cluster0.example.net/catalog"))
}
