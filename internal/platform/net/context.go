// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyDatasetID ctxKey = "dataset_id"

// WithRequest annotates context with the request id and the id of the survey snapshot serving it
func WithRequest(ctx context.Context, reqID, datasetID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if datasetID != "" {
		ctx = context.WithValue(ctx, keyDatasetID, datasetID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// DatasetID returns the dataset snapshot id on the context if present
func DatasetID(ctx context.Context) string {
	if v, ok := ctx.Value(keyDatasetID).(string); ok {
		return v
	}
	return ""
}
