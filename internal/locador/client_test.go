package locador

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8000" {
		t.Fatalf("url = %q, want http://127.0.0.1:8000", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func newTestServer(t *testing.T, r chi.Router) *Client {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{BaseURL: server.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestResource_ListEncodesFiltersAndPaging(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotAuth, gotUserAgent string

	r := chi.NewRouter()
	r.Get("/lancamentos", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		gotAuth = req.Header.Get("Authorization")
		gotUserAgent = req.Header.Get("User-Agent")
		writeJSON(w, http.StatusOK, []Lancamento{{Codigo: 7, Valor: 12.5}})
	})
	c := newTestServer(t, r)

	confirmed := false
	items, err := c.Lancamentos().List(context.Background(), LancamentoFilter{
		CodFavorecido: 3,
		CodEmpresa:    4,
		Tipo:          TipoDespesa,
		Confirmado:    &confirmed,
		DataInicio:    "2024-01-01",
		DataFim:       "2024-01-31",
	}, 20, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].Codigo != 7 {
		t.Fatalf("List items = %#v, want one item Codigo=7", items)
	}
	if gotQuery.Get("skip") != "20" ||
		gotQuery.Get("limit") != "10" ||
		gotQuery.Get("cod_favorecido") != "3" ||
		gotQuery.Get("cod_empresa") != "4" ||
		gotQuery.Get("tipo") != "D" ||
		gotQuery.Get("confirmado") != "false" ||
		gotQuery.Get("data_inicio") != "2024-01-01" ||
		gotQuery.Get("data_fim") != "2024-01-31" {
		t.Fatalf("List query = %v, want params encoded", gotQuery)
	}
	if gotQuery.Has("cod_conta") {
		t.Fatalf("List query = %v, zero cod_conta should be omitted", gotQuery)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "locador-console/") {
		t.Fatalf("User-Agent = %q, want locador-console/*", gotUserAgent)
	}
}

func TestResource_ListAcceptsEnvelope(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/bancos", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("ativos_apenas") != "true" {
			t.Errorf("ativos_apenas = %q, want true", req.URL.Query().Get("ativos_apenas"))
		}
		if q := req.URL.Query(); q.Get("skip") != "0" || q.Has("limit") {
			t.Errorf("query = %v, want skip=0 and no limit", q)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []Banco{{Codigo: 1, Nome: "Banco do Brasil", FlgAtivo: "S"}},
		})
	})
	c := newTestServer(t, r)

	items, err := c.Bancos().List(context.Background(), ActiveFilter{AtivosApenas: true}, 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || !Active(items[0].FlgAtivo) {
		t.Fatalf("List items = %#v, want one active banco", items)
	}
}

func TestResource_CRUDVerbs(t *testing.T) {
	t.Parallel()

	var gotCreate BancoCreate
	var gotUpdate map[string]any
	deleted := ""

	r := chi.NewRouter()
	r.Post("/bancos", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&gotCreate)
		writeJSON(w, http.StatusCreated, Banco{Codigo: 9, Nome: gotCreate.Nome, FlgAtivo: gotCreate.FlgAtivo})
	})
	r.Get("/bancos/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Banco{Codigo: 9, Nome: "Itaú"})
	})
	r.Put("/bancos/{id}", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&gotUpdate)
		writeJSON(w, http.StatusOK, Banco{Codigo: 9, Nome: "Itaú Unibanco"})
	})
	r.Delete("/bancos/{id}", func(w http.ResponseWriter, req *http.Request) {
		deleted = chi.URLParam(req, "id")
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestServer(t, r)
	ctx := context.Background()
	bancos := c.Bancos()

	created, err := bancos.Create(ctx, BancoCreate{Nome: "Itaú", NumeroBanco: "341", FlgAtivo: FlagYes})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Codigo != 9 || gotCreate.NumeroBanco != "341" {
		t.Fatalf("Create = %#v (sent %#v), want Codigo=9 NumeroBanco=341", created, gotCreate)
	}

	got, err := bancos.Get(ctx, 9)
	if err != nil || got.Nome != "Itaú" {
		t.Fatalf("Get = %#v, %v; want Itaú", got, err)
	}

	nome := "Itaú Unibanco"
	updated, err := bancos.Update(ctx, 9, BancoUpdate{Nome: &nome})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Nome != nome {
		t.Fatalf("Update = %#v, want Nome=%q", updated, nome)
	}
	if len(gotUpdate) != 1 || gotUpdate["Nome"] != nome {
		t.Fatalf("Update body = %v, want only Nome", gotUpdate)
	}

	if err := bancos.Delete(ctx, 9); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted != "9" {
		t.Fatalf("Delete id = %q, want 9", deleted)
	}
}

func TestLancamentos_ConfirmSendsPatchBody(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	r := chi.NewRouter()
	r.Patch("/lancamentos/{id}/confirmar", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, Lancamento{Codigo: 5, FlgConfirmado: FlagYes})
	})
	c := newTestServer(t, r)

	item, err := c.Lancamentos().Confirm(context.Background(), 5, true)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if !item.Confirmed() {
		t.Fatalf("Confirm = %#v, want confirmed", item)
	}
	if gotBody["confirmar"] != true {
		t.Fatalf("Confirm body = %v, want confirmar=true", gotBody)
	}
}

func TestClient_HTTPErrorCarriesDetail(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Put("/bancos/{id}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
	})
	r.Post("/bancos", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []any{"body", "Nome"}, "msg": "field required"},
				{"loc": []any{"body", "FlgAtivo"}, "msg": "invalid flag"},
			},
		})
	})
	r.Get("/dashboard/resumo", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not-json"))
	})
	c := newTestServer(t, r)
	ctx := context.Background()

	nome := "X"
	_, err := c.Bancos().Update(ctx, 5, BancoUpdate{Nome: &nome})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Update error = %v, want *APIError", err)
	}
	if apiErr.Detail != "not found" || apiErr.Status != http.StatusNotFound {
		t.Fatalf("APIError = %#v, want 404 not found", apiErr)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(err, ErrNotFound) = false for %v", err)
	}
	if !strings.Contains(err.Error(), "returned status 404") {
		t.Fatalf("error = %q, want status in message", err.Error())
	}

	_, err = c.Bancos().Create(ctx, BancoCreate{})
	if !errors.As(err, &apiErr) || apiErr.Detail != "Nome: field required; FlgAtivo: invalid flag" {
		t.Fatalf("Create error = %v, want joined validation detail", err)
	}

	_, err = c.FetchSummary(ctx)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchSummary error = %v, want decode response error", err)
	}
}

func TestClient_RequestsFailBeforeLogin(t *testing.T) {
	t.Parallel()

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeJSON(w, http.StatusOK, Summary{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchSummary(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("FetchSummary error = %v, want ErrUnauthorized", err)
	}
	if hits != 0 {
		t.Fatalf("server hits = %d, want 0", hits)
	}
}

func TestClient_LoginInstallsToken(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	var gotForm url.Values
	var gotAuth string
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		_ = req.ParseForm()
		gotForm = req.PostForm
		writeJSON(w, http.StatusOK, map[string]string{"access_token": access, "token_type": "bearer"})
	})
	r.Get("/api/dashboard/resumo", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, Summary{Saldo: 10, Bancos: 2})
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{BaseURL: server.URL + "/api"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	tok, err := c.Login(context.Background(), Credentials{Username: "ana", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if gotForm.Get("username") != "ana" || gotForm.Get("password") != "pw" {
		t.Fatalf("login form = %v, want username/password", gotForm)
	}
	if !tok.Expiry.Equal(exp) || !c.SessionExpiry().Equal(exp) {
		t.Fatalf("expiry = %v, want %v", tok.Expiry, exp)
	}

	summary, err := c.FetchSummary(context.Background())
	if err != nil {
		t.Fatalf("FetchSummary returned error: %v", err)
	}
	if summary.Bancos != 2 {
		t.Fatalf("summary = %#v, want Bancos=2", summary)
	}
	if gotAuth != "Bearer "+access {
		t.Fatalf("Authorization = %q, want bearer access token", gotAuth)
	}

	c.Logout()
	if c.Token() != nil {
		t.Fatalf("Token after Logout = %v, want nil", c.Token())
	}
}

func TestClient_LoginRejected(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
	})
	c := newTestServer(t, r)
	c.Logout()

	_, err := c.Login(context.Background(), Credentials{Username: "ana", Password: "bad"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Login error = %v, want ErrUnauthorized", err)
	}
	if c.Token() != nil {
		t.Fatalf("Token = %v, want nil after rejected login", c.Token())
	}
}

func TestNewToken_NonJWTHasNoExpiry(t *testing.T) {
	tok := NewToken("opaque", "")
	if tok.TokenType != "bearer" {
		t.Fatalf("TokenType = %q, want bearer", tok.TokenType)
	}
	if !tok.Expiry.IsZero() {
		t.Fatalf("Expiry = %v, want zero", tok.Expiry)
	}
}
