package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	ArtifactID    string
	SystemGroupID string
	UserID        string
	RequestID     string
	RawToken      string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x RawToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x RawToken) String() string {
	return "***********"
}
