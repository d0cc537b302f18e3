package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/jianpu/constants"
	"github.com/jsphweid/jianpu/jianpu"
	"github.com/jsphweid/jianpu/model"
	"github.com/jsphweid/jianpu/render"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 32 << 20

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetListenAddr(), "listen address")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversions over HTTP",
	Long: `Serves conversions over HTTP. POST a MIDI (or MusicXML with
?format=musicxml) body to /convert, then fetch /documents/{id}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(serveAddr)
	},
}

type document struct {
	title    string
	key      string
	time     string
	notation string
	page     string
}

// documentStore keeps converted pages in memory for the life of the server.
type documentStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]document
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: make(map[uuid.UUID]document)}
}

func (s *documentStore) put(doc document) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.docs[id] = doc
	s.mu.Unlock()
	return id
}

func (s *documentStore) get(raw string) (document, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return document{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

type server struct {
	docs *documentStore
}

// NewHandler returns the routes of the conversion server wrapped in CORS.
func NewHandler() http.Handler {
	s := &server{docs: newDocumentStore()}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/styles.css", s.handleStylesheet).Methods("GET")
	router.HandleFunc("/convert", s.handleConvert).Methods("POST")
	router.HandleFunc("/documents/{id}", s.handleDocument).Methods("GET")
	router.HandleFunc("/documents/{id}/notation", s.handleNotation).Methods("GET")

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	io.WriteString(w, render.Stylesheet)
}

func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	format := formatMidi
	if r.URL.Query().Get("format") == formatMusicXML {
		format = formatMusicXML
	}
	title := r.URL.Query().Get("title")
	if title == "" {
		title = "Jianpu Notation"
	}

	score, err := readScore(bytes.NewReader(body), format, constants.DefaultSplitPitch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	_, notation, err := jianpu.Convert(score)
	if errors.Is(err, jianpu.ErrUnsupportedHandCount) {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	page, err := render.Render(notation, title, score.Key, score.Time)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := s.docs.put(document{
		title:    title,
		key:      score.Key,
		time:     score.Time,
		notation: notation,
		page:     page,
	})
	logger.Info("converted score", "id", id, "format", format, "bytes", len(body))

	writeJSON(w, http.StatusCreated, model.ConvertResponse{
		ID:       id.String(),
		Title:    title,
		Key:      score.Key,
		Time:     score.Time,
		Notation: notation,
	})
}

func (s *server) lookup(w http.ResponseWriter, r *http.Request) (document, bool) {
	id := mux.Vars(r)["id"]
	doc, ok := s.docs.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.Errorf("no document %v", id))
	}
	return doc, ok
}

func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, doc.page)
}

func (s *server) handleNotation(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, doc.notation)
}

func serve(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      NewHandler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		close(done)
	}()

	logger.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	<-done
	return nil
}
