package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ArowuTest/bingo-caller/internal/repositories"
)

const statesNS = "bingo-caller.game_states"

func TestStateRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("load returns stored payload", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, statesNS, mtest.FirstBatch, bson.D{
			{Key: "key", Value: "bingoState:abc"},
			{Key: "payload", Value: `{"drawnNumbers":[12,64]}`},
			{Key: "expiresAt", Value: time.Now().Add(time.Hour)},
		}))

		payload, err := repo.Load(context.Background(), "bingoState:abc")
		require.NoError(mt, err)
		assert.Equal(mt, `{"drawnNumbers":[12,64]}`, string(payload))
	})

	mt.Run("load maps no documents to not found", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, statesNS, mtest.FirstBatch))

		_, err := repo.Load(context.Background(), "bingoState:missing")
		assert.ErrorIs(mt, err, repositories.ErrStateNotFound)
	})

	mt.Run("load wraps server errors", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))

		_, err := repo.Load(context.Background(), "bingoState:abc")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, repositories.ErrStateNotFound)
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Save(context.Background(), "bingoState:abc", []byte(`{"drawnNumbers":[]}`), 7*24*time.Hour)
		assert.NoError(mt, err)
	})

	mt.Run("save surfaces write errors", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Save(context.Background(), "bingoState:abc", []byte(`{}`), 0)
		assert.Error(mt, err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.Delete(context.Background(), "bingoState:abc"))
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewStateRepository(mt.DB, "game_states")
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
