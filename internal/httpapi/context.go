package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
)

// shutdownBox wraps the base context so atomic.Value always stores one type.
type shutdownBox struct{ ctx context.Context }

// shutdownCtx is canceled when the process begins shutting down. Chat streams
// derive from it, so a drain stops every in-flight generation.
var shutdownCtx atomic.Value

func init() { shutdownCtx.Store(shutdownBox{context.Background()}) }

// SetBaseContext installs the shutdown context; nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	shutdownCtx.Store(shutdownBox{ctx})
}

func baseContext() context.Context {
	return shutdownCtx.Load().(shutdownBox).ctx
}

// streamContext returns the context for one chat stream: it keeps the request
// values and is canceled on client disconnect or server shutdown, whichever
// comes first. cancel must be called when the handler returns.
func streamContext(r *http.Request) (context.Context, context.CancelFunc) {
	return joinContexts(r.Context(), baseContext())
}

// joinContexts derives from parent and also cancels when other is done.
func joinContexts(parent, other context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(other, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
