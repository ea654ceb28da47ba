package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identware/account-api/internal/api"
	"github.com/identware/account-api/internal/api/handler"
	"github.com/identware/account-api/internal/core/domain"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, name, email, password string) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	listFn     func(ctx context.Context) ([]domain.Account, error)
	getFn      func(ctx context.Context, token, targetID string) (*domain.Account, error)
	deleteFn   func(ctx context.Context, token, targetID string) (string, error)
}

func (s *stubAccountService) Register(ctx context.Context, name, email, password string) (string, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) ListAll(ctx context.Context) ([]domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) GetByID(ctx context.Context, token, targetID string) (*domain.Account, error) {
	return s.getFn(ctx, token, targetID)
}

func (s *stubAccountService) DeleteByID(ctx context.Context, token, targetID string) (string, error) {
	return s.deleteFn(ctx, token, targetID)
}

type stubRevoker struct {
	revoked []string
}

func (s *stubRevoker) Revoke(_ context.Context, accountID string) error {
	s.revoked = append(s.revoked, accountID)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// invoke runs the handler and routes any returned error through the central
// error handler, the way the real router would.
func invoke(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func TestAccountHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, name, email, password string) (string, error) {
			if name != "Ana" || email != "ana@x.com" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return "token123", nil
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	body := strings.NewReader(`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoke(e, c, h.Register)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAccountHandler_Register_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, name, email, password string) (string, error) {
			return "", domain.ErrEmailExists
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	body := strings.NewReader(`{"name":"Ana","email":"ana@x.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoke(e, c, h.Register)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, name, email, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoke(e, c, h.Register)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, name, email, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	// Well-formed JSON but not a valid email address.
	body := strings.NewReader(`{"name":"Ana","email":"not-an-email","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoke(e, c, h.Register)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email") {
		t.Fatalf("expected email validation message, got %s", rec.Body.String())
	}
}

func TestAccountHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "ana@x.com" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token456", nil
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	body := strings.NewReader(`{"email":"ana@x.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoke(e, c, h.Login)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token456") {
		t.Fatalf("expected token in body, got %s", rec.Body.String())
	}
}

func TestAccountHandler_Login_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown email", domain.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAccountService{
				loginFn: func(ctx context.Context, email, password string) (string, error) {
					return "", tc.err
				},
			}
			h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

			body := strings.NewReader(`{"email":"ana@x.com","password":"whatever"}`)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			invoke(e, c, h.Login)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestAccountHandler_List(t *testing.T) {
	e := newTestEcho()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stub := &stubAccountService{
		listFn: func(ctx context.Context) ([]domain.Account, error) {
			return []domain.Account{
				{ID: "id-1", Name: "Ana", Email: "ana@x.com", PasswordHash: "hash-1", Role: domain.RoleNormal, CreatedAt: created},
				{ID: "id-2", Name: "Bob", Email: "bob@x.com", PasswordHash: "hash-2", Role: domain.RoleAdmin, CreatedAt: created},
			}, nil
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoke(e, c, h.List)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp))
	}
	if resp[0]["id"] != "id-1" || resp[1]["id"] != "id-2" {
		t.Fatalf("unexpected order: %+v", resp)
	}
	// The password hash must never appear in any projection.
	if strings.Contains(rec.Body.String(), "hash-1") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", rec.Body.String())
	}
}

func TestAccountHandler_GetByID(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, token, targetID string) (*domain.Account, error) {
			if token != "tok" {
				t.Fatalf("expected bearer token to be forwarded, got %q", token)
			}
			if targetID != "id-1" {
				t.Fatalf("unexpected target id %q", targetID)
			}
			return &domain.Account{ID: "id-1", Name: "Ana", Email: "ana@x.com", PasswordHash: "hash-1", Role: domain.RoleNormal}, nil
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/users/id-1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("id-1")

	invoke(e, c, h.GetByID)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hash-1") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAccountHandler_GetByID_TokenAbsent(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, token, targetID string) (*domain.Account, error) {
			if token != "" {
				t.Fatalf("expected empty token, got %q", token)
			}
			return nil, domain.InvalidInput("token absent")
		},
	}
	h := handler.NewAccountHandler(stub, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/users/id-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("id-1")

	invoke(e, c, h.GetByID)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token absent") {
		t.Fatalf("expected 'token absent' in body, got %s", rec.Body.String())
	}
}

func TestAccountHandler_DeleteByID_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		deleteFn: func(ctx context.Context, token, targetID string) (string, error) {
			return "account deleted successfully", nil
		},
	}
	revoker := &stubRevoker{}
	h := handler.NewAccountHandler(stub, revoker, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/users/id-1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("id-1")

	invoke(e, c, h.DeleteByID)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "account deleted successfully") {
		t.Fatalf("expected confirmation message, got %s", rec.Body.String())
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != "id-1" {
		t.Fatalf("expected deleted account to be revoked, got %+v", revoker.revoked)
	}
}

func TestAccountHandler_DeleteByID_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"token invalid", domain.InvalidInput("token invalid"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAccountService{
				deleteFn: func(ctx context.Context, token, targetID string) (string, error) {
					return "", tc.err
				},
			}
			revoker := &stubRevoker{}
			h := handler.NewAccountHandler(stub, revoker, zerolog.Nop())

			req := httptest.NewRequest(http.MethodDelete, "/users/id-1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("id-1")

			invoke(e, c, h.DeleteByID)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if len(revoker.revoked) != 0 {
				t.Fatalf("revoker called on failed delete")
			}
		})
	}
}
