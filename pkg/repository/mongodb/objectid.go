package mongodb

import "go.mongodb.org/mongo-driver/bson/primitive"

// ToInternalID normalizes an external identifier into the store's key form.
// Malformed input maps to the zero ObjectID, which no stored document ever
// carries, so lookups with garbage ids degrade to a not-found result instead
// of an error.
func ToInternalID(id string) primitive.ObjectID {
	internalID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return internalID
}
