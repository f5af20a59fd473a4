package mongodb_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/stigbase/saver/pkg/repository/mongodb"
	"github.com/stigbase/saver/pkg/repository/testhelper"
	"github.com/stigbase/saver/pkg/utils/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoDBRepositories(t *testing.T) {
	uri := testutil.GetEnvOrSkip(t, "TEST_MONGO_URI")

	ctx := context.Background()
	client, err := mongodb.New(ctx, uri, "saver_test")
	gt.NoError(t, err)
	defer func() {
		gt.NoError(t, client.Close(ctx))
	}()

	testhelper.TestAll(t, client.Artifacts(), client.SystemGroups())
}

func TestToInternalID(t *testing.T) {
	t.Run("well-formed hex id round trips", func(t *testing.T) {
		id := primitive.NewObjectID()
		gt.V(t, mongodb.ToInternalID(id.Hex())).Equal(id)
	})

	t.Run("malformed input maps to the nil sentinel", func(t *testing.T) {
		for _, raw := range []string{"", "garbage", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "0102030405060708090a0b"} {
			gt.V(t, mongodb.ToInternalID(raw)).Equal(primitive.NilObjectID)
		}
	})

	t.Run("nil sentinel hex still resolves to itself", func(t *testing.T) {
		gt.V(t, mongodb.ToInternalID(primitive.NilObjectID.Hex())).Equal(primitive.NilObjectID)
	})
}
