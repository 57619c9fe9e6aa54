package reportingclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/openmint/platform-ledger/pkg/httpclient"
	"github.com/openmint/platform-ledger/pkg/logger"
)

type Config struct {
	Disabled bool   `mapstructure:"disabled"`
	BaseURL  string `mapstructure:"base_url"`
	Name     string `mapstructure:"name"`
}

// ReportingClient submits ledger decisions to the reconciliation service,
// which matches them against on-chain event logs. Submissions are advisory;
// failures are logged and never fail the originating operation.
type ReportingClient struct {
	httpClient *httpclient.Client
	config     Config
}

func New(config Config) (*ReportingClient, error) {
	if config.BaseURL == "" {
		return nil, errors.New("reporting.base_url config is required if reporting is enabled")
	}
	if config.Name == "" {
		return nil, errors.New("reporting.name config is required if reporting is enabled")
	}
	httpClient, err := httpclient.New(config.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &ReportingClient{
		httpClient: httpClient,
		config:     config,
	}, nil
}

type SubmitSaleReportPayload struct {
	TxRef     string `json:"txRef"`
	ListingID string `json:"listingId"`
	NFTID     string `json:"nftId"`
	Seller    string `json:"seller"`
	Buyer     string `json:"buyer"`
	Price     string `json:"price"`
	Quantity  uint64 `json:"quantity"`
}

func (r *ReportingClient) SubmitSaleReport(ctx context.Context, payload SubmitSaleReportPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := r.httpClient.Post(ctx, "/v1/report/sale", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit sale report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.DebugContext(ctx, "sale report submitted", slog.Any("payload", payload))
	return nil
}

type SubmitBonusReportPayload struct {
	ProgramID string    `json:"programId"`
	Address   string    `json:"address"`
	Reward    string    `json:"reward,omitempty"`
	ClaimedAt time.Time `json:"claimedAt"`
}

func (r *ReportingClient) SubmitBonusReport(ctx context.Context, payload SubmitBonusReportPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := r.httpClient.Post(ctx, "/v1/report/bonus", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= 400 {
		logger.WarnContext(ctx, "failed to submit bonus report", slog.Any("payload", payload), slog.Any("responseBody", resp.Body()))
	}
	logger.DebugContext(ctx, "bonus report submitted", slog.Any("payload", payload))
	return nil
}
