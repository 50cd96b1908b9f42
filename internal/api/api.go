package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/IlyasAtabaev731/retail-ledger/internal/config"
	"github.com/IlyasAtabaev731/retail-ledger/internal/domain/models"
	"github.com/IlyasAtabaev731/retail-ledger/internal/ledger"
	"github.com/IlyasAtabaev731/retail-ledger/internal/lib/jwt"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Bank interface {
	CreateCustomer(ctx context.Context, name, password string) (int64, error)
	Deposit(ctx context.Context, name string, amount decimal.Decimal, password string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, name string, amount decimal.Decimal, password string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, password, to string, amount decimal.Decimal) (decimal.Decimal, error)
	View(ctx context.Context, name, password string) (models.Statement, error)
	StatementOf(ctx context.Context, name string) (models.Statement, error)
}

type ctxKey string

const customerKey ctxKey = "customer"

type APIServer struct {
	config *config.Config
	logger *slog.Logger
	bank   Bank
	server *http.Server
}

func New(config *config.Config, logger *slog.Logger, bank Bank) *APIServer {
	s := &APIServer{
		config: config,
		logger: logger,
		bank:   bank,
		server: &http.Server{
			Addr: config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
		},
	}
	s.configureRouter()

	return s
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()
	router.HandleFunc("/api/customers", s.createCustomerHandler()).Methods("POST")
	router.HandleFunc("/api/deposit", s.depositHandler()).Methods("POST")
	router.HandleFunc("/api/withdraw", s.withdrawHandler()).Methods("POST")
	router.HandleFunc("/api/transfer", s.transferHandler()).Methods("POST")
	router.HandleFunc("/api/view", s.viewHandler()).Methods("POST")
	router.HandleFunc("/api/auth", s.authHandler()).Methods("POST")
	router.HandleFunc("/api/info", s.authenticate(s.infoHandler())).Methods("GET")
	s.server.Handler = router
}

type CredentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type CreateCustomerResponse struct {
	AccountID int64 `json:"account_id"`
}

func (s *APIServer) createCustomerHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		id, err := s.bank.CreateCustomer(r.Context(), req.Name, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, CreateCustomerResponse{AccountID: id})
	}
}

type AmountRequest struct {
	Name     string          `json:"name"`
	Password string          `json:"password"`
	Amount   decimal.Decimal `json:"amount"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func (s *APIServer) depositHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		balance, err := s.bank.Deposit(r.Context(), req.Name, req.Amount, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
	}
}

func (s *APIServer) withdrawHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		balance, err := s.bank.Withdraw(r.Context(), req.Name, req.Amount, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
	}
}

type TransferRequest struct {
	From     string          `json:"from"`
	Password string          `json:"password"`
	To       string          `json:"to"`
	Amount   decimal.Decimal `json:"amount"`
}

func (s *APIServer) transferHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		balance, err := s.bank.Transfer(r.Context(), req.From, req.Password, req.To, req.Amount)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance})
	}
}

func (s *APIServer) viewHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		statement, err := s.bank.View(r.Context(), req.Name, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, statement)
	}
}

type AuthResponse struct {
	Token string `json:"token"`
}

func (s *APIServer) authHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		statement, err := s.bank.View(r.Context(), req.Name, req.Password)
		if err != nil {
			s.writeError(w, err)
			return
		}

		token, err := jwt.NewToken(statement.Name, statement.AccountID, s.config.JWT.Secret, s.config.JWT.TTL)
		if err != nil {
			s.logger.Error("Failed to sign token", "error", err)
			http.Error(w, "failed to sign token", http.StatusInternalServerError)
			return
		}

		s.writeJSON(w, http.StatusOK, AuthResponse{Token: token})
	}
}

func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(tokenHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "malformed token", http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ParseToken(parts[1], s.config.JWT.Secret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), customerKey, claims.Customer))
		next(w, r)
	}
}

func (s *APIServer) infoHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		name, _ := r.Context().Value(customerKey).(string)

		statement, err := s.bank.StatementOf(r.Context(), name)
		if err != nil {
			// a valid token for a customer we no longer know is still unauthorized
			s.writeError(w, ledger.ErrUnauthorized)
			return
		}

		s.writeJSON(w, http.StatusOK, statement)
	}
}

func (s *APIServer) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrCustomerExists), errors.Is(err, ledger.ErrHistoryFull):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrCustomerLimit):
		return http.StatusUnprocessableEntity
	case ledger.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
