package ctxutil

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ownerIDKey   ctxKey = "owner_id"
	ownerSlotKey ctxKey = "owner_slot"
	requestIDKey ctxKey = "request_id"
)

// WithOwnerID stores the authenticated owner in the context and records it
// in the slot installed by TrackOwner, if any.
func WithOwnerID(ctx context.Context, id uuid.UUID) context.Context {
	if slot, ok := ctx.Value(ownerSlotKey).(*atomic.Pointer[uuid.UUID]); ok && id != uuid.Nil {
		slot.Store(&id)
	}
	return context.WithValue(ctx, ownerIDKey, id)
}

// OwnerIDFromCtx extracts the owner ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func OwnerIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// TrackOwner installs a slot that later WithOwnerID calls on derived contexts
// write to. The returned func reports the owner seen so far, falling back to
// the owner already in ctx.
func TrackOwner(ctx context.Context) (context.Context, func() (uuid.UUID, bool)) {
	slot := new(atomic.Pointer[uuid.UUID])
	if id, ok := OwnerIDFromCtx(ctx); ok {
		slot.Store(&id)
	}
	get := func() (uuid.UUID, bool) {
		if id := slot.Load(); id != nil {
			return *id, true
		}
		return uuid.Nil, false
	}
	return context.WithValue(ctx, ownerSlotKey, slot), get
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
