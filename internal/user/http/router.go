package http

import (
	"net/http"
	"strconv"

	"github.com/accounthub/user-service/internal/common/config"
	commonerrors "github.com/accounthub/user-service/internal/common/errors"
	commonhttp "github.com/accounthub/user-service/internal/common/http"
	"github.com/accounthub/user-service/internal/common/jwtverify"
	"github.com/accounthub/user-service/internal/common/logger"
	"github.com/accounthub/user-service/internal/observability/metrics"
	"github.com/accounthub/user-service/internal/user/domain"
	"github.com/accounthub/user-service/internal/user/service"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AuthToken string        `json:"authtoken"`
	User      domain.Public `json:"user"`
}

type Handler struct {
	accounts *service.AccountService
	log      *logger.Logger
}

func NewHandler(accounts *service.AccountService, cfg config.UserConfig, log *logger.Logger) http.Handler {
	h := &Handler{accounts: accounts, log: log}

	withTimeout := commonhttp.WithTimeout(cfg.RequestTimeout)
	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/user/createuser", commonhttp.RequireMethod(http.MethodPost)(withTimeout(h.createUser)))
	mux.HandleFunc("/user/login", commonhttp.RequireMethod(http.MethodPost)(withTimeout(h.login)))
	mux.Handle("/user/userlist", requireAuth(commonhttp.RequireMethod(http.MethodGet)(withTimeout(h.userList))))
	return mux
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create user failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		AuthToken: result.Token,
		User:      result.User.Public(),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.accounts.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		AuthToken: result.Token,
		User:      result.User.Public(),
	})
}

func (h *Handler) userList(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if users == nil {
		users = []domain.Public{}
	}

	commonhttp.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if vErr, ok := service.AsValidationError(err); ok {
		commonhttp.WriteError(w, http.StatusBadRequest, vErr.Error())
		return
	}

	if de, ok := commonerrors.AsDomainError(err); ok {
		metrics.DomainErrorsTotal.WithLabelValues(
			string(de.Category()),
			de.Code(),
			strconv.Itoa(de.HTTPStatus()),
		).Inc()

		if de.Category() == commonerrors.CategoryInternal {
			// Internal causes stay in the logs, the caller gets an
			// opaque message.
			commonhttp.WriteError(w, de.HTTPStatus(), "Internal Server Error")
			return
		}
		commonhttp.WriteError(w, de.HTTPStatus(), de.Message())
		return
	}

	h.log.Errorf("unhandled error: %v", err)
	commonhttp.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}
