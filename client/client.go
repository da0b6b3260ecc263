package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	// register the error codes the API may answer with
	_ "github.com/babylonchain/staking-ledger/ledger"
	_ "github.com/babylonchain/staking-ledger/ledger/service"
	_ "github.com/babylonchain/staking-ledger/tokencontroller"
	"github.com/babylonchain/staking-ledger/types"
)

const defaultTimeout = 20 * time.Second

// LedgerClient talks to the HTTP API of a running ledger daemon. Queries
// are retried on transport failures, transactions are sent once.
type LedgerClient struct {
	baseURL string
	http    *http.Client

	logger *zap.Logger
}

// NewLedgerClient creates a client for the daemon listening on addr, given
// either as host:port or as a full URL.
func NewLedgerClient(addr string, timeout time.Duration, logger *zap.Logger) (*LedgerClient, error) {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon address %s: %w", addr, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid daemon address %s: empty host", addr)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &LedgerClient{
		baseURL: strings.TrimSuffix(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func (lc *LedgerClient) Initialize(ctx context.Context, req *types.InitializeRequest) (*types.Settings, error) {
	var settings types.Settings
	if err := lc.do(ctx, http.MethodPost, "/v1/initialize", req, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (lc *LedgerClient) ChangeSettings(ctx context.Context, req *types.ChangeSettingsRequest) (*types.Settings, error) {
	var settings types.Settings
	if err := lc.do(ctx, http.MethodPost, "/v1/settings", req, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (lc *LedgerClient) Stake(ctx context.Context, account string, amount sdkmath.Int) (*types.StakeStatus, error) {
	var status types.StakeStatus
	req := &types.StakeRequest{Account: account, Amount: amount}
	if err := lc.do(ctx, http.MethodPost, "/v1/stake", req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (lc *LedgerClient) Unstake(ctx context.Context, account string) (*types.StakeStatus, error) {
	var status types.StakeStatus
	if err := lc.do(ctx, http.MethodPost, "/v1/unstake", &types.AccountRequest{Account: account}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (lc *LedgerClient) Claim(ctx context.Context, account string) (*types.StakeStatus, error) {
	var status types.StakeStatus
	if err := lc.do(ctx, http.MethodPost, "/v1/claim", &types.AccountRequest{Account: account}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (lc *LedgerClient) Mint(ctx context.Context, token, caller, to string, amount sdkmath.Int) (*types.BalanceResponse, error) {
	var resp types.BalanceResponse
	req := &types.MintRequest{Caller: caller, To: to, Amount: amount}
	if err := lc.do(ctx, http.MethodPost, "/v1/tokens/"+url.PathEscape(token)+"/mint", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (lc *LedgerClient) QuerySettings(ctx context.Context) (*types.Settings, error) {
	var settings types.Settings
	if err := lc.query(ctx, "/v1/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (lc *LedgerClient) QueryStatus(ctx context.Context, account string) (*types.StakeStatus, error) {
	var status types.StakeStatus
	if err := lc.query(ctx, "/v1/accounts/"+url.PathEscape(account), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (lc *LedgerClient) QueryBalance(ctx context.Context, token, account string) (*types.BalanceResponse, error) {
	var resp types.BalanceResponse
	path := "/v1/tokens/" + url.PathEscape(token) + "/balances/" + url.PathEscape(account)
	if err := lc.query(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (lc *LedgerClient) QueryEvents(ctx context.Context, from, limit uint64) ([]*types.Event, error) {
	var resp types.EventsResponse
	path := fmt.Sprintf("/v1/events?from=%d&limit=%d", from, limit)
	if err := lc.query(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (lc *LedgerClient) query(ctx context.Context, path string, out interface{}) error {
	return retry.Do(func() error {
		return lc.do(ctx, http.MethodGet, path, nil, out)
	}, RtyAtt, RtyDel, RtyErr, retry.Context(ctx), retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			lc.logger.Debug("failed to query the ledger daemon",
				zap.String("path", path),
				zap.Uint("attempt", n+1),
				zap.Uint("max_attempts", RtyAttNum),
				zap.Error(err),
			)
		}))
}

func (lc *LedgerClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		bz, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(bz)
	}

	req, err := http.NewRequestWithContext(ctx, method, lc.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := lc.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s: %w", path, err)
	}

	return nil
}

// decodeError restores the registered error sent by the daemon, so callers
// can match it with errors.Is.
func decodeError(resp *http.Response) error {
	var errResp types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Code == 0 {
		return fmt.Errorf("%w: unexpected status %s", errUnavailable, resp.Status)
	}

	restored := errorsmod.ABCIError(errResp.Codespace, errResp.Code, errResp.Log)
	parent := errors.Unwrap(restored)
	if parent == nil {
		return restored
	}

	// the log already ends with the description of the registered error
	msg := strings.TrimSuffix(errResp.Log, ": "+parent.Error())
	if msg == "" || msg == parent.Error() {
		return parent
	}
	return errorsmod.Wrap(parent, msg)
}
