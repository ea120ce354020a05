package agent

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"

	"github.com/luxfi/fingerprinting/pkg/ferr"
)

// ComputeExponentPath is the HTTP path the Cooperation service listens
// on in the net/http transport binding.
const ComputeExponentPath = "/v1/compute-exponent"

// HTTPClient is the concrete RemoteClient implementation: cbor-encoded
// request/response bodies over a plain HTTP POST, no RPC framework
// generated stubs (see the package doc and DESIGN.md for why).
type HTTPClient struct {
	Client *http.Client
}

// NewHTTPClient builds an HTTPClient with a sane default transport.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: &http.Client{}}
}

func traceID(body []byte) string {
	sum := blake3.Sum256(body)
	return hex.EncodeToString(sum[:8])
}

// ComputeExponent implements RemoteClient.
func (c *HTTPClient) ComputeExponent(ctx context.Context, address string, req ComputeExponentRequest) (ComputeExponentResponse, error) {
	body, err := cbor.Marshal(req)
	if err != nil {
		return ComputeExponentResponse{}, ferr.Wrap(ferr.InternalCrypto, "agent.HTTPClient.ComputeExponent", err)
	}

	id := traceID(body)
	log.Debug().Str("trace_id", id).Str("address", address).Msg("agent: dispatching compute-exponent request")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+address+ComputeExponentPath, bytes.NewReader(body))
	if err != nil {
		return ComputeExponentResponse{}, ferr.Wrap(ferr.PeerUnavailable, "agent.HTTPClient.ComputeExponent", err)
	}
	httpReq.Header.Set("Content-Type", "application/cbor")
	httpReq.Header.Set("X-Trace-Id", id)

	httpResp, err := c.Client.Do(httpReq)
	if err != nil {
		return ComputeExponentResponse{}, ferr.Wrap(ferr.PeerUnavailable, "agent.HTTPClient.ComputeExponent", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return ComputeExponentResponse{}, ferr.New(ferr.PeerUnavailable, "agent.HTTPClient.ComputeExponent", "peer returned non-200 status")
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ComputeExponentResponse{}, ferr.Wrap(ferr.PeerUnavailable, "agent.HTTPClient.ComputeExponent", err)
	}

	var resp ComputeExponentResponse
	if err := cbor.Unmarshal(respBody, &resp); err != nil {
		return ComputeExponentResponse{}, ferr.Wrap(ferr.PeerUnavailable, "agent.HTTPClient.ComputeExponent", err)
	}
	return resp, nil
}

// Handler returns an http.Handler binding svc's ComputeExponent to
// ComputeExponentPath.
func Handler(svc *CooperationService) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ComputeExponentPath, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		var req ComputeExponentRequest
		if err := cbor.Unmarshal(body, &req); err != nil {
			http.Error(w, "malformed request envelope", http.StatusBadRequest)
			return
		}

		resp, err := svc.ComputeExponent(req.Generation, req.BlindedValue)
		if err != nil {
			if ferr.Is(err, ferr.InvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error().Err(err).Msg("agent: internal error computing exponent")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out, err := cbor.Marshal(resp)
		if err != nil {
			log.Error().Err(err).Msg("agent: failed to encode response")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/cbor")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	})
	return mux
}
