package service

import (
	"bufio"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SinglePath and BatchPath are the HTTP paths the Fingerprint service
// listens on in the net/http transport binding (§6; see DESIGN.md for
// why a thin JSON/HTTP binding stands in for the out-of-scope RPC
// framework).
const (
	SinglePath = "/v1/compute-single-fingerprint"
	BatchPath  = "/v1/compute-batch-fingerprint"
)

// Handler returns an http.Handler binding svc's two operations.
func Handler(svc *FingerprintService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(SinglePath, func(w http.ResponseWriter, r *http.Request) {
		var req TransactionFingerprintData
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		fp, err := svc.ComputeSingleFingerprint(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fp)
	})

	mux.HandleFunc(BatchPath, func(w http.ResponseWriter, r *http.Request) {
		var items []BatchItem
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)

		bw := bufio.NewWriter(w)
		enc := json.NewEncoder(bw)
		for result := range svc.ComputeBatchFingerprint(r.Context(), items) {
			if err := enc.Encode(result); err != nil {
				log.Error().Err(err).Msg("service: failed to encode batch result")
				return
			}
			_ = bw.Flush()
			flusher.Flush()
		}
	})

	return mux
}
