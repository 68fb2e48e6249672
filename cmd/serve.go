package cmd

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/danseband/catalog"
	"github.com/jsphweid/danseband/constants"
	"github.com/jsphweid/danseband/emitter"
	"github.com/jsphweid/danseband/model"
	"github.com/jsphweid/danseband/pattern"
	"github.com/jsphweid/danseband/song"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const defaultPreviewBars = 4

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves renders over HTTP",
	Long:  `Serves the built-in songs as MIDI files over HTTP (address from $SERVE_ADDR, default :8080)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := constants.GetServeAddr()
		slog.Info("listening", "addr", addr)
		return http.ListenAndServe(addr, NewRouter())
	},
}

func summarize(def *catalog.Definition) model.SongSummary {
	return model.SongSummary{
		ID:     def.ID,
		Name:   def.Name,
		Tempo:  def.Tempo,
		Tracks: len(def.Instruments),
		Bars:   def.Bars(),
	}
}

func summaries() []model.SongSummary {
	var res []model.SongSummary
	for _, def := range catalog.All() {
		res = append(res, summarize(def))
	}
	return res
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// renderRequested renders the song named in the route, answering 404 itself
// when there is no such song.
func renderRequested(w http.ResponseWriter, r *http.Request) (*catalog.Definition, *song.Document, bool) {
	id := mux.Vars(r)["id"]
	def, ok := catalog.ByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown song "+strconv.Quote(id))
		return nil, nil, false
	}
	doc, err := emitter.Render(def, pattern.Default())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	return def, doc, true
}

func HandleSongs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, summaries())
}

func HandleSong(w http.ResponseWriter, r *http.Request) {
	def, doc, ok := renderRequested(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.SongDetail{
		SongSummary: summarize(def),
		Description: def.Description,
		TrackStats:  doc.Stats(),
	})
}

func midiHeaders(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.mid"`)
}

func HandleMidi(w http.ResponseWriter, r *http.Request) {
	def, doc, ok := renderRequested(w, r)
	if !ok {
		return
	}
	midiHeaders(w, def.ID)
	if err := emitter.Write(w, doc); err != nil {
		slog.Error("could not write midi", "song", def.ID, "err", err)
	}
}

func HandlePreview(w http.ResponseWriter, r *http.Request) {
	bars := defaultPreviewBars
	if raw := r.URL.Query().Get("bars"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bars must be a positive integer")
			return
		}
		bars = n
	}

	def, doc, ok := renderRequested(w, r)
	if !ok {
		return
	}
	preview, err := emitter.Preview(doc, bars)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	midiHeaders(w, def.ID+"_preview")
	if _, err := preview.WriteTo(w); err != nil {
		slog.Error("could not write preview", "song", def.ID, "err", err)
	}
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/songs", HandleSongs).Methods("GET")
	router.HandleFunc("/songs/{id}", HandleSong).Methods("GET")
	router.HandleFunc("/songs/{id}/midi", HandleMidi).Methods("GET")
	router.HandleFunc("/songs/{id}/preview", HandlePreview).Methods("GET")
	return cors.Default().Handler(router)
}
