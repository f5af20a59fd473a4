package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type systemGroupRepository struct {
	collection *mongo.Collection
}

type systemGroupDoc struct {
	InternalID     primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	RawNessusFile  string             `bson:"rawNessusFile"`
	NessusFilename string             `bson:"nessusFilename"`
	Created        time.Time          `bson:"created"`
	UpdatedOn      time.Time          `bson:"updatedOn"`
	CreatedBy      string             `bson:"createdBy"`
	UpdatedBy      string             `bson:"updatedBy"`
}

func toSystemGroupDoc(group *model.SystemGroup) *systemGroupDoc {
	return &systemGroupDoc{
		Title:          group.Title,
		Description:    group.Description,
		RawNessusFile:  group.RawNessusFile,
		NessusFilename: group.NessusFilename,
		Created:        group.Created,
		UpdatedOn:      group.UpdatedOn,
		CreatedBy:      string(group.CreatedBy),
		UpdatedBy:      string(group.UpdatedBy),
	}
}

func (x *systemGroupDoc) toModel() *model.SystemGroup {
	return &model.SystemGroup{
		ID:             types.SystemGroupID(x.InternalID.Hex()),
		Title:          x.Title,
		Description:    x.Description,
		RawNessusFile:  x.RawNessusFile,
		NessusFilename: x.NessusFilename,
		Created:        x.Created,
		UpdatedOn:      x.UpdatedOn,
		CreatedBy:      types.UserID(x.CreatedBy),
		UpdatedBy:      types.UserID(x.UpdatedBy),
	}
}

func (r *systemGroupRepository) Get(ctx context.Context, id types.SystemGroupID) (*model.SystemGroup, error) {
	var doc systemGroupDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": ToInternalID(string(id))}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, goerr.Wrap(repository.ErrNotFound, "system group not found",
				goerr.V("systemGroupID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get system group",
			goerr.V("systemGroupID", id),
		)
	}

	return doc.toModel(), nil
}

func (r *systemGroupRepository) List(ctx context.Context) ([]*model.SystemGroup, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query system groups")
	}
	defer cursor.Close(ctx)

	var groups []*model.SystemGroup
	for cursor.Next(ctx) {
		var doc systemGroupDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode system group")
		}
		groups = append(groups, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate system groups")
	}

	return groups, nil
}

func (r *systemGroupRepository) Add(ctx context.Context, group *model.SystemGroup) (*model.SystemGroup, error) {
	doc := toSystemGroupDoc(group)
	doc.InternalID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to insert system group",
			goerr.V("title", group.Title),
		)
	}

	return doc.toModel(), nil
}

func (r *systemGroupRepository) Replace(ctx context.Context, id types.SystemGroupID, group *model.SystemGroup) error {
	internalID := ToInternalID(string(id))

	if err := r.collection.FindOne(ctx, bson.M{"_id": internalID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return goerr.Wrap(repository.ErrNotFound, "system group not found",
				goerr.V("systemGroupID", id),
			)
		}
		return goerr.Wrap(err, "failed to look up system group",
			goerr.V("systemGroupID", id),
		)
	}

	doc := toSystemGroupDoc(group)
	doc.InternalID = internalID

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": internalID}, doc)
	if err != nil {
		return goerr.Wrap(err, "failed to replace system group",
			goerr.V("systemGroupID", id),
		)
	}
	if result.MatchedCount == 0 {
		return goerr.New("system group replace did not take effect",
			goerr.V("systemGroupID", id),
		)
	}

	return nil
}

func (r *systemGroupRepository) Delete(ctx context.Context, id types.SystemGroupID) error {
	internalID := ToInternalID(string(id))

	if err := r.collection.FindOne(ctx, bson.M{"_id": internalID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return goerr.Wrap(repository.ErrNotFound, "system group not found",
				goerr.V("systemGroupID", id),
			)
		}
		return goerr.Wrap(err, "failed to look up system group",
			goerr.V("systemGroupID", id),
		)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": internalID})
	if err != nil {
		return goerr.Wrap(err, "failed to delete system group",
			goerr.V("systemGroupID", id),
		)
	}
	if result.DeletedCount == 0 {
		return goerr.New("system group delete did not take effect",
			goerr.V("systemGroupID", id),
		)
	}

	return nil
}
