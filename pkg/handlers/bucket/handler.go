package bucket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/bucket-doctor/pkg/adapters"
	"github.com/de-tools/bucket-doctor/pkg/models/api"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
	"github.com/de-tools/bucket-doctor/pkg/services/doctor"
	"github.com/de-tools/bucket-doctor/pkg/services/remediation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultHistoryLimit = 10

type Account interface {
	VerifyCredentials(ctx context.Context) (domain.CallerIdentity, error)
	ListBuckets(ctx context.Context) ([]string, error)
}

type Advisor interface {
	Available() bool
	ProviderName() string
	Troubleshoot(ctx context.Context, issue, bucket string, extra map[string]any) string
}

type Handler struct {
	version string
	account Account
	doctor  doctor.Service
	advisor Advisor
}

func NewHandler(version string, account Account, doc doctor.Service, advisor Advisor) *Handler {
	return &Handler{
		version: version,
		account: account,
		doctor:  doc,
		advisor: advisor,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, api.HealthResponse{
		Status:      "healthy",
		Version:     h.version,
		AIAvailable: h.advisor.Available(),
		AIProvider:  h.advisor.ProviderName(),
	})
}

// Credentials always answers 200; invalid credentials are reported in the body.
func (h *Handler) Credentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.account.VerifyCredentials(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("credential check failed")
		writeJSON(ctx, w, http.StatusOK, api.CredentialsResponse{Valid: false, Error: err.Error()})
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapCallerIdentityDomainToApi(id))
}

func (h *Handler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buckets, err := h.account.ListBuckets(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if buckets == nil {
		buckets = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, api.BucketsResponse{Buckets: buckets, Count: len(buckets)})
}

func (h *Handler) Diagnose(w http.ResponseWriter, r *http.Request) {
	h.diagnose(w, r, false)
}

func (h *Handler) DiagnoseAI(w http.ResponseWriter, r *http.Request) {
	h.diagnose(w, r, true)
}

func (h *Handler) diagnose(w http.ResponseWriter, r *http.Request, withAI bool) {
	ctx := r.Context()
	bucket := chi.URLParam(r, "bucket")

	result, err := h.doctor.Diagnose(ctx, bucket, doctor.DiagnoseOptions{WithAI: withAI})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapBucketReportDomainToApi(result.Report))
}

// Fix applies every remediable fix without confirmation.
func (h *Handler) Fix(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bucket := chi.URLParam(r, "bucket")

	result, err := h.doctor.Fix(ctx, bucket, doctor.FixOptions{
		Options: remediation.Options{AutoApprove: true},
		WithAI:  true,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapFixSummaryDomainToApi(result.Summary, result.Recommendations))
}

func (h *Handler) Troubleshoot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.TroubleshootRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.BucketName == "" || req.Issue == "" {
		writeJSON(ctx, w, http.StatusBadRequest, api.ErrorResponse{Error: "bucket_name and issue are required"})
		return
	}

	response := h.advisor.Troubleshoot(ctx, req.Issue, req.BucketName, req.Context)
	writeJSON(ctx, w, http.StatusOK, api.TroubleshootResponse{Response: response})
}

func (h *Handler) ScanAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.doctor.ScanAll(ctx, doctor.ScanAllOptions{})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapAccountSummaryDomainToApi(summary))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bucket := chi.URLParam(r, "bucket")

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(ctx, w, http.StatusBadRequest, api.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	history, err := h.doctor.History(ctx, bucket, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapBucketHistoryDomainToApi(history))
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProviderUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrBucketNameRequired):
		status = http.StatusBadRequest
	case errors.Is(err, doctor.ErrHistoryDisabled):
		status = http.StatusNotFound
	}
	zerolog.Ctx(ctx).Error().Err(err).Int("status", status).Msg("request failed")
	writeJSON(ctx, w, status, api.ErrorResponse{Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
