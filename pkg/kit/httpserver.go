package kit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StartHTTPServer serves h in the background and returns a shutdown
// function. The foreground of this application is the interactive
// session, so unlike a plain service the listener must not block.
func StartHTTPServer(addr string, h http.Handler, log *zap.Logger) func(context.Context) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
		}
	}()

	return srv.Shutdown
}
