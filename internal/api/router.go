package api

import (
    "net/http"
    "strings"
)

func NewRouter(h *Handlers) *http.ServeMux {
    mux := http.NewServeMux()

    mux.HandleFunc("/healthz", h.HandleHealthz)

    mux.HandleFunc("/interview", func(w http.ResponseWriter, r *http.Request) {
        switch r.Method {
        case http.MethodGet:
            h.HandleGetInterview(w, r)
        case http.MethodPost:
            h.HandleConfigure(w, r)
        default:
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        }
    })

    mux.HandleFunc("/interview/", func(w http.ResponseWriter, r *http.Request) {
        // /interview/start | /turns | /audio | /end | /reset | /replay
        path := strings.TrimSuffix(r.URL.Path, "/")
        action := strings.TrimPrefix(path, "/interview/")
        if r.Method != http.MethodPost {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        switch action {
        case "start":
            h.HandleStart(w, r)
        case "turns":
            h.HandleTurn(w, r)
        case "audio":
            h.HandleAudioTurn(w, r)
        case "end":
            h.HandleEnd(w, r)
        case "reset":
            h.HandleReset(w, r)
        case "replay":
            h.HandleReplay(w, r)
        default:
            http.NotFound(w, r)
        }
    })

    mux.HandleFunc("/interviews", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        h.HandleListInterviews(w, r)
    })

    mux.HandleFunc("/interviews/", func(w http.ResponseWriter, r *http.Request) {
        path := strings.TrimSuffix(r.URL.Path, "/")
        id := strings.TrimPrefix(path, "/interviews/")
        if id == "" || strings.Contains(id, "/") {
            http.NotFound(w, r)
            return
        }
        switch r.Method {
        case http.MethodGet:
            h.HandleGetArchived(w, r, id)
        case http.MethodDelete:
            h.HandleDeleteArchived(w, r, id)
        default:
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        }
    })

    return mux
}
