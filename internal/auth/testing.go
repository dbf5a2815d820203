package auth

import "context"

// SetClientIDForTest injects a client ID into the context for testing purposes.
func SetClientIDForTest(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}
