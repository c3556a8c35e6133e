package middleware

import "net/http"

// ImmutableCacheControl is sent with files whose names are never reused.
const ImmutableCacheControl = "public, max-age=31536000, immutable"

// ImmutableCache marks successful responses from next as cacheable forever.
func ImmutableCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheWriter{ResponseWriter: w}, r)
	})
}

// cacheWriter sets Cache-Control on 2xx and 304 responses only.
type cacheWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *cacheWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if (code >= 200 && code < 300) || code == http.StatusNotModified {
			w.Header().Set("Cache-Control", ImmutableCacheControl)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cacheWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
