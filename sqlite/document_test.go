package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_ReplaceAll(t *testing.T) {
	t.Parallel()

	t.Run("stores documents in slice order with generated IDs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		docs := []*docdex.Document{
			{Source: "man/ls", Title: "ls", Content: "list directory contents"},
			{Source: "man/grep", Title: "grep", Content: "print lines matching a pattern"},
			{Source: "ubuntu-help/net-wireless", Title: "Wireless", Content: "connect to wifi"},
		}

		require.NoError(t, svc.ReplaceAll(ctx, docs))
		for _, doc := range docs {
			assert.NotEmpty(t, doc.ID, "ID should be generated")
		}

		got, err := svc.AllDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, doc := range got {
			assert.Equal(t, docs[i].ID, doc.ID)
			assert.Equal(t, docs[i].Source, doc.Source)
			assert.Equal(t, docs[i].Title, doc.Title)
			assert.Equal(t, docs[i].Content, doc.Content)
		}
	})

	t.Run("replaces previous contents entirely", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		first := []*docdex.Document{
			{Source: "man/ls", Content: "list directory contents"},
			{Source: "man/cp", Content: "copy files and directories"},
		}
		require.NoError(t, svc.ReplaceAll(ctx, first))

		second := []*docdex.Document{
			{Source: "man/mv", Content: "move (rename) files"},
		}
		require.NoError(t, svc.ReplaceAll(ctx, second))

		got, err := svc.AllDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "man/mv", got[0].Source)
	})

	t.Run("rolls back the batch on an invalid document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceAll(ctx, []*docdex.Document{
			{Source: "man/ls", Content: "list directory contents"},
		}))

		err := svc.ReplaceAll(ctx, []*docdex.Document{
			{Source: "man/cp", Content: "copy files and directories"},
			{Source: "man/bad"}, // missing content
		})
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))

		// The failed replace must not have touched the stored set.
		got, err := svc.AllDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "man/ls", got[0].Source)
	})

	t.Run("keeps caller-provided IDs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := &docdex.Document{ID: "fixed-id", Source: "man/ls", Content: "list directory contents"}
		require.NoError(t, svc.ReplaceAll(ctx, []*docdex.Document{doc}))

		got, err := svc.AllDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "fixed-id", got[0].ID)
	})

	t.Run("accepts an empty batch", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.ReplaceAll(ctx, nil))

		got, err := svc.AllDocuments(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDocumentService_AllDocuments(t *testing.T) {
	t.Parallel()

	t.Run("returns documents in position order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		var docs []*docdex.Document
		for i := 0; i < 10; i++ {
			docs = append(docs, &docdex.Document{
				Source:  fmt.Sprintf("man/cmd%d", i),
				Content: fmt.Sprintf("content %d", i),
			})
		}
		require.NoError(t, svc.ReplaceAll(ctx, docs))

		got, err := svc.AllDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, got, 10)
		for i, doc := range got {
			assert.Equal(t, fmt.Sprintf("man/cmd%d", i), doc.Source)
		}
	})

	t.Run("returns empty slice for empty store", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		got, err := svc.AllDocuments(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
