package services

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/yungbote/people-notes-backend/internal/platform/dbctx"
)

var tracer = otel.Tracer("github.com/yungbote/people-notes-backend/internal/services")

// inTx runs fn on the caller's transaction when one is set, otherwise inside a
// new transaction that commits when fn returns nil.
func inTx(db *gorm.DB, dbc dbctx.Context, fn func(inner dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	ctx := dbc.Context()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

func startSpan(dbc dbctx.Context, name string) (dbctx.Context, trace.Span) {
	ctx, span := tracer.Start(dbc.Context(), name)
	dbc.Ctx = ctx
	return dbc, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
