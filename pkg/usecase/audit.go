package usecase

import (
	"context"
	"encoding/json"

	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/utils/compress"
	"github.com/stigbase/saver/pkg/utils/logging"
)

const programName = "saver-api"

// publish sends one event. Publish failures are logged and swallowed: the
// preceding store mutation already committed and must not be rolled back.
func (x *UseCase) publish(ctx context.Context, subject types.Subject, data []byte) {
	if err := x.clients.Publisher().Publish(subject, data); err != nil {
		logging.From(ctx).Warn("failed to publish event",
			"subject", subject,
			"error", err,
		)
	}
}

func (x *UseCase) publishAudit(ctx context.Context, action, message string, caller model.CallerIdentity) {
	record := model.AuditRecord{
		Program:  programName,
		Created:  logging.CtxTime(ctx),
		Action:   action,
		Message:  message,
		URL:      logging.CtxURL(ctx),
		UserID:   string(caller.ID),
		FullName: caller.FullName,
		Username: caller.Username,
		Email:    caller.Email,
	}

	raw, err := json.Marshal(record)
	if err != nil {
		logging.From(ctx).Warn("failed to marshal audit record", "error", err)
		return
	}

	packed, err := compress.Gzip(raw)
	if err != nil {
		logging.From(ctx).Warn("failed to compress audit record", "error", err)
		return
	}

	x.publish(ctx, types.SubjectAuditSave, packed)
}
