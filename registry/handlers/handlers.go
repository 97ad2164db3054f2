// Package handlers implements the HTTP API in front of a
// registry/storage.BlobStore: PUT to store a blob under its expected
// digest, GET to stream the verified content back, and GET with a range to
// exercise the Slice/DecodeSlice transport path.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/baoverify/bao/bao"
	"github.com/baoverify/bao/baodigest"
	"github.com/baoverify/bao/internal/dcontext"
	"github.com/baoverify/bao/internal/requestutil"
	"github.com/baoverify/bao/metrics"
	"github.com/baoverify/bao/registry/storage"
)

// App is the top-level handler: it owns the blob store and the router
// serving it.
type App struct {
	blobs       *storage.BlobStore
	maxBlobSize int64
	router      *mux.Router
}

// NewApp constructs an App serving blobs out of blobs. maxBlobSize bounds
// the content length a decode will accept from a stored header before any
// node is read; zero means unbounded.
func NewApp(blobs *storage.BlobStore, maxBlobSize int64) *App {
	app := &App{blobs: blobs, maxBlobSize: maxBlobSize}
	app.router = mux.NewRouter()
	app.router.HandleFunc("/blobs/{digest}", app.putBlob).Methods(http.MethodPut)
	app.router.HandleFunc("/blobs/{digest}", app.getBlob).Methods(http.MethodGet)
	return app
}

// Handler returns the App wrapped in a combined access log, the way the
// teacher wraps its own router before handing it to net/http.
func (app *App) Handler() http.Handler {
	return handlers.CombinedLoggingHandler(logWriter{}, app.router)
}

// logWriter adapts logrus's standard logger to the io.Writer
// handlers.CombinedLoggingHandler wants for its access log line.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logrus.StandardLogger().Infof("%s", p)
	return len(p), nil
}

type blobResponse struct {
	Digest string `json:"digest"`
	Length int64  `json:"length"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (app *App) putBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	expected, err := baodigest.Parse(vars["digest"])
	if err != nil {
		metrics.Requests.WithValues("put", "bad-digest").Inc(1)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var body []byte
	if r.ContentLength > 0 {
		body = make([]byte, 0, r.ContentLength)
	}
	buf := make([]byte, 32*1024)
	for {
		n, readErr := r.Body.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
		}
		if readErr != nil {
			break
		}
	}

	start := time.Now()
	root, err := app.blobs.Put(ctx, body)
	metrics.BlobDuration.WithValues("put").UpdateSince(start)
	if err != nil {
		metrics.Requests.WithValues("put", "error").Inc(1)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	got := baodigest.NewDigest(root)
	if got != expected {
		metrics.VerificationFailures.WithValues("put").Inc(1)
		app.blobs.Delete(ctx, root)
		writeError(w, http.StatusBadRequest, fmt.Errorf("bao: computed digest %s does not match requested %s", got, expected))
		return
	}

	metrics.Requests.WithValues("put", "ok").Inc(1)
	dcontext.GetLogger(ctx).Infof("stored blob %s from %s", got, requestutil.RemoteAddr(r))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(blobResponse{Digest: got.String(), Length: int64(len(body))})
}

func (app *App) getBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)

	d, err := baodigest.Parse(vars["digest"])
	if err != nil {
		metrics.Requests.WithValues("get", "bad-digest").Inc(1)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	root, err := d.Root()
	if err != nil {
		metrics.Requests.WithValues("get", "bad-digest").Inc(1)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := app.blobs.Stat(ctx, root); err != nil {
		metrics.Requests.WithValues("get", "not-found").Inc(1)
		writeError(w, http.StatusNotFound, err)
		return
	}

	query := r.URL.Query()
	if start := query.Get("start"); start != "" {
		app.getBlobSlice(w, r, root, start, query.Get("len"))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	opts := bao.DecodeOptions{}
	if app.maxBlobSize > 0 {
		opts.MaxContentLength = uint64(app.maxBlobSize)
	}
	start := time.Now()
	err = app.blobs.WriteTo(ctx, root, w, opts)
	metrics.BlobDuration.WithValues("get").UpdateSince(start)
	if err != nil {
		metrics.VerificationFailures.WithValues("get").Inc(1)
		dcontext.GetLogger(ctx).Errorf("serving blob %s: %v", d, err)
		return
	}
	metrics.Requests.WithValues("get", "ok").Inc(1)
}

func (app *App) getBlobSlice(w http.ResponseWriter, r *http.Request, root bao.Digest, startParam, lengthParam string) {
	ctx := r.Context()

	start, err := strconv.ParseUint(startParam, 10, 64)
	if err != nil {
		metrics.Requests.WithValues("get-slice", "bad-range").Inc(1)
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid start", bao.ErrInvalidArgument))
		return
	}
	length, err := strconv.ParseUint(lengthParam, 10, 64)
	if err != nil {
		metrics.Requests.WithValues("get-slice", "bad-range").Inc(1)
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid len", bao.ErrInvalidArgument))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if err := app.blobs.WriteSliceTo(ctx, root, w, start, length); err != nil {
		metrics.Requests.WithValues("get-slice", "error").Inc(1)
		dcontext.GetLogger(ctx).Errorf("serving slice of blob %s: %v", root, err)
		return
	}
	metrics.Requests.WithValues("get-slice", "ok").Inc(1)
}
