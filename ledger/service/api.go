package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/access"
	"github.com/babylonchain/staking-ledger/ledger"
	"github.com/babylonchain/staking-ledger/tokencontroller"
	"github.com/babylonchain/staking-ledger/types"
	"github.com/babylonchain/staking-ledger/util"
)

const (
	maxRequestBytes  = 1 << 20
	defaultEventPage = 100
	maxEventPage     = 1000
)

// TokenBank is a custody token the API can query and mint.
type TokenBank interface {
	BalanceOf(account string) (sdkmath.Int, error)
	Mint(to string, amount sdkmath.Int) error
}

// APIServer exposes the ledger operations over HTTP with JSON bodies.
type APIServer struct {
	svr *http.Server

	ledger *ledger.Ledger
	sc     *ledger.SettingsController
	banks  map[string]TokenBank
	admins access.AdminChecker
	events EventStore

	logger *zap.Logger
}

// NewAPIServer creates the API server. events may be nil, the event log
// endpoint then reports an empty log.
func NewAPIServer(
	addr string,
	l *ledger.Ledger,
	sc *ledger.SettingsController,
	banks map[string]TokenBank,
	admins access.AdminChecker,
	events EventStore,
	logger *zap.Logger,
) *APIServer {
	s := &APIServer{
		ledger: l,
		sc:     sc,
		banks:  banks,
		admins: admins,
		events: events,
		logger: logger,
	}

	s.svr = &http.Server{
		Handler:           s.Handler(),
		Addr:              addr,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	return s
}

// Handler returns the router of the API.
func (s *APIServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/initialize", s.handleInitialize).Methods(http.MethodPost)
	v1.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	v1.HandleFunc("/settings", s.handleChangeSettings).Methods(http.MethodPost)
	v1.HandleFunc("/stake", s.handleStake).Methods(http.MethodPost)
	v1.HandleFunc("/unstake", s.handleUnstake).Methods(http.MethodPost)
	v1.HandleFunc("/claim", s.handleClaim).Methods(http.MethodPost)
	v1.HandleFunc("/accounts/{account}", s.handleStatus).Methods(http.MethodGet)
	v1.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	v1.HandleFunc("/tokens/{token}/balances/{account}", s.handleBalance).Methods(http.MethodGet)
	v1.HandleFunc("/tokens/{token}/mint", s.handleMint).Methods(http.MethodPost)

	return r
}

func (s *APIServer) Start() {
	s.logger.Info("starting ledger API server",
		zap.String("address", s.svr.Addr))

	if err := s.svr.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		s.logger.Fatal("failed to start ledger API server",
			zap.Error(err))
	}
}

func (s *APIServer) Stop() {
	s.logger.Info("stopping ledger API server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.svr.Shutdown(ctx); err != nil {
		s.logger.Error("failed to stop the ledger API server",
			zap.Error(err))
		if err = s.svr.Close(); err != nil {
			s.logger.Error("failed to force stopping the ledger API server",
				zap.Error(err))
		}
	}
}

func (s *APIServer) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req types.InitializeRequest
	if !s.decode(w, r, &req) {
		return
	}

	unstakeFrozenTime, err := util.ParseFrozenTime(req.UnstakeFrozenTime)
	if err != nil {
		s.writeError(w, ErrInvalidRequest.Wrap(err.Error()))
		return
	}
	claimFrozenTime, err := util.ParseFrozenTime(req.ClaimFrozenTime)
	if err != nil {
		s.writeError(w, ErrInvalidRequest.Wrap(err.Error()))
		return
	}

	if err := s.sc.Initialize(req.Caller, req.StakingToken, req.RewardToken,
		req.RewardPercentage, unstakeFrozenTime, claimFrozenTime); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.sc.Settings())
}

func (s *APIServer) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sc.Settings())
}

func (s *APIServer) handleChangeSettings(w http.ResponseWriter, r *http.Request) {
	var req types.ChangeSettingsRequest
	if !s.decode(w, r, &req) {
		return
	}

	claimFrozenTime, err := util.ParseFrozenTime(req.ClaimFrozenTime)
	if err != nil {
		s.writeError(w, ErrInvalidRequest.Wrap(err.Error()))
		return
	}
	unstakeFrozenTime, err := util.ParseFrozenTime(req.UnstakeFrozenTime)
	if err != nil {
		s.writeError(w, ErrInvalidRequest.Wrap(err.Error()))
		return
	}

	if err := s.sc.ChangeSettings(req.Caller, req.RewardPercentage, claimFrozenTime, unstakeFrozenTime); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.sc.Settings())
}

func (s *APIServer) handleStake(w http.ResponseWriter, r *http.Request) {
	var req types.StakeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Amount.IsNil() {
		req.Amount = sdkmath.ZeroInt()
	}

	if err := s.ledger.Stake(req.Account, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeStatus(w, req.Account)
}

func (s *APIServer) handleUnstake(w http.ResponseWriter, r *http.Request) {
	var req types.AccountRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.ledger.Unstake(req.Account); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeStatus(w, req.Account)
}

func (s *APIServer) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req types.AccountRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.ledger.Claim(req.Account); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeStatus(w, req.Account)
}

func (s *APIServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeStatus(w, mux.Vars(r)["account"])
}

func (s *APIServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	from, err := queryUint(r, "from", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	limit, err := queryUint(r, "limit", defaultEventPage)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if limit == 0 || limit > maxEventPage {
		limit = maxEventPage
	}

	resp := types.EventsResponse{Events: []*types.Event{}}
	if s.events != nil {
		events, err := s.events.LoadEvents(from, limit)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Events = append(resp.Events, events...)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) handleBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bank, err := s.bank(vars["token"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	balance, err := bank.BalanceOf(vars["account"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, types.BalanceResponse{
		Token:   vars["token"],
		Account: vars["account"],
		Balance: balance,
	})
}

func (s *APIServer) handleMint(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req types.MintRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.admins.IsAdmin(req.Caller) {
		s.writeError(w, ledger.ErrUnauthorized.Wrapf("caller %s", req.Caller))
		return
	}
	if req.To == "" || req.Amount.IsNil() {
		s.writeError(w, ErrInvalidRequest.Wrap("recipient and amount are required"))
		return
	}

	bank, err := s.bank(token)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := bank.Mint(req.To, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}

	balance, err := bank.BalanceOf(req.To)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, types.BalanceResponse{
		Token:   token,
		Account: req.To,
		Balance: balance,
	})
}

func (s *APIServer) bank(token string) (TokenBank, error) {
	bank, ok := s.banks[token]
	if !ok {
		return nil, tokencontroller.ErrUnknownToken.Wrapf("%s", token)
	}
	return bank, nil
}

func (s *APIServer) writeStatus(w http.ResponseWriter, account string) {
	if account == "" {
		s.writeError(w, ErrUnknownAccount.Wrap("empty account"))
		return
	}

	status, err := s.ledger.Status(account)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, status)
}

// decode reads the JSON body into v and answers the request itself when
// the body is malformed.
func (s *APIServer) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, ErrInvalidRequest.Wrap(err.Error()))
		return false
	}
	return true
}

func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	codespace, code, log := errorsmod.ABCIInfo(err, false)
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("failed to serve ledger API request", zap.Error(err))
	}

	s.writeJSON(w, status, types.ErrorResponse{
		Codespace: codespace,
		Code:      code,
		Log:       log,
	})
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("failed to write API response", zap.Error(err))
	}
}

func queryUint(r *http.Request, key string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidRequest.Wrapf("query parameter %s: %v", key, err)
	}
	return v, nil
}
