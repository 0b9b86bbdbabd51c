package rest

import (
	"encoding/json"
	"net/http"
)

// SearchNow handles GET /search?q=... with a synchronous, one-shot search.
// Interactive callers that want debouncing drive POST /search/query instead.
func (h *Handler) SearchNow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, h.search.Execute(q))
}

type searchQueryRequest struct {
	Query string `json:"query"`
}

// SetSearchQuery handles POST /search/query, feeding the debounced index.
func (h *Handler) SetSearchQuery(w http.ResponseWriter, r *http.Request) {
	var req searchQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.search.SetSearchQuery(req.Query)
	w.WriteHeader(http.StatusAccepted)
}

// ClearSearch handles DELETE /search/query.
func (h *Handler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	h.search.ClearSearch()
	w.WriteHeader(http.StatusNoContent)
}

type searchResultsResponse struct {
	Query       string `json:"query"`
	IsSearching bool   `json:"isSearching"`
	Results     any    `json:"results"`
}

// GetSearchResults handles GET /search/results, the debounced index snapshot.
func (h *Handler) GetSearchResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, searchResultsResponse{
		Query:       h.search.Query(),
		IsSearching: h.search.IsSearching(),
		Results:     h.search.Results(),
	})
}

// ListRecentSearches handles GET /search/recent.
func (h *Handler) ListRecentSearches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.search.RecentSearches())
}

// AddToRecentSearches handles POST /search/recent.
func (h *Handler) AddToRecentSearches(w http.ResponseWriter, r *http.Request) {
	var req searchQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.search.AddToRecentSearches(req.Query)
	writeJSON(w, http.StatusOK, h.search.RecentSearches())
}

// ClearRecentSearches handles DELETE /search/recent.
func (h *Handler) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	h.search.ClearRecentSearches()
	w.WriteHeader(http.StatusNoContent)
}
