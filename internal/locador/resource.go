package locador

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Filter encodes resource-specific list parameters.
type Filter interface {
	Encode(values url.Values)
}

// Resource forwards CRUD calls for one REST collection.
type Resource[R, C, U any, F Filter] struct {
	client *Client
	name   string
	path   string
}

func newResource[R, C, U any, F Filter](c *Client, name, path string) *Resource[R, C, U, F] {
	return &Resource[R, C, U, F]{client: c, name: name, path: path}
}

// Name returns the singular label used in error messages.
func (r *Resource[R, C, U, F]) Name() string { return r.name }

// Path returns the collection path.
func (r *Resource[R, C, U, F]) Path() string { return r.path }

// List issues GET /{resource}?skip&limit plus the filter's parameters. skip
// is always sent; limit only when positive.
func (r *Resource[R, C, U, F]) List(ctx context.Context, filter F, skip, limit int) ([]R, error) {
	values := url.Values{}
	filter.Encode(values)
	values.Set("skip", strconv.Itoa(max(skip, 0)))
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: r.path, RawQuery: values.Encode()}

	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, rel, nil, &raw); err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.name, err)
	}
	items, err := decodeList[R](raw)
	if err != nil {
		return nil, fmt.Errorf("listing %s: decode response: %w", r.name, err)
	}
	return items, nil
}

// decodeList accepts a bare array or an {"items": [...]} envelope.
func decodeList[R any](raw json.RawMessage) ([]R, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var items []R
	if trimmed[0] == '{' {
		var envelope struct {
			Items []R `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		return envelope.Items, nil
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get issues GET /{resource}/{id}.
func (r *Resource[R, C, U, F]) Get(ctx context.Context, id int) (R, error) {
	var item R
	if err := r.client.do(ctx, http.MethodGet, r.itemURL(id), nil, &item); err != nil {
		return item, fmt.Errorf("getting %s %d: %w", r.name, id, err)
	}
	return item, nil
}

// Create issues POST /{resource}.
func (r *Resource[R, C, U, F]) Create(ctx context.Context, payload C) (R, error) {
	var item R
	if err := r.client.do(ctx, http.MethodPost, &url.URL{Path: r.path}, payload, &item); err != nil {
		return item, fmt.Errorf("creating %s: %w", r.name, err)
	}
	return item, nil
}

// Update issues PUT /{resource}/{id}.
func (r *Resource[R, C, U, F]) Update(ctx context.Context, id int, payload U) (R, error) {
	var item R
	if err := r.client.do(ctx, http.MethodPut, r.itemURL(id), payload, &item); err != nil {
		return item, fmt.Errorf("updating %s %d: %w", r.name, id, err)
	}
	return item, nil
}

// Delete issues DELETE /{resource}/{id}.
func (r *Resource[R, C, U, F]) Delete(ctx context.Context, id int) error {
	if err := r.client.do(ctx, http.MethodDelete, r.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("deleting %s %d: %w", r.name, id, err)
	}
	return nil
}

func (r *Resource[R, C, U, F]) itemURL(id int) *url.URL {
	return &url.URL{Path: r.path + "/" + strconv.Itoa(id)}
}

// Bancos returns the /bancos collection.
func (c *Client) Bancos() *Resource[Banco, BancoCreate, BancoUpdate, ActiveFilter] {
	return newResource[Banco, BancoCreate, BancoUpdate, ActiveFilter](c, "banco", "/bancos")
}

// Clientes returns the /clientes collection.
func (c *Client) Clientes() *Resource[Cliente, ClienteCreate, ClienteUpdate, ActiveFilter] {
	return newResource[Cliente, ClienteCreate, ClienteUpdate, ActiveFilter](c, "cliente", "/clientes")
}

// Contas returns the /contas collection.
func (c *Client) Contas() *Resource[Conta, ContaCreate, ContaUpdate, ContaFilter] {
	return newResource[Conta, ContaCreate, ContaUpdate, ContaFilter](c, "conta", "/contas")
}

// Empresas returns the /empresas collection.
func (c *Client) Empresas() *Resource[Empresa, EmpresaCreate, EmpresaUpdate, ActiveFilter] {
	return newResource[Empresa, EmpresaCreate, EmpresaUpdate, ActiveFilter](c, "empresa", "/empresas")
}

// Favorecidos returns the /favorecidos collection.
func (c *Client) Favorecidos() *Resource[Favorecido, FavorecidoCreate, FavorecidoUpdate, ActiveFilter] {
	return newResource[Favorecido, FavorecidoCreate, FavorecidoUpdate, ActiveFilter](c, "favorecido", "/favorecidos")
}

// LancamentoResource adds the confirmation action to /lancamentos.
type LancamentoResource struct {
	*Resource[Lancamento, LancamentoCreate, LancamentoUpdate, LancamentoFilter]
}

// Lancamentos returns the /lancamentos collection.
func (c *Client) Lancamentos() LancamentoResource {
	return LancamentoResource{
		newResource[Lancamento, LancamentoCreate, LancamentoUpdate, LancamentoFilter](c, "lancamento", "/lancamentos"),
	}
}

// Confirm issues PATCH /lancamentos/{id}/confirmar with {"confirmar": confirmar}.
func (r LancamentoResource) Confirm(ctx context.Context, id int, confirmar bool) (Lancamento, error) {
	body := struct {
		Confirmar bool `json:"confirmar"`
	}{Confirmar: confirmar}
	rel := &url.URL{Path: r.path + "/" + strconv.Itoa(id) + "/confirmar"}

	var item Lancamento
	if err := r.client.do(ctx, http.MethodPatch, rel, body, &item); err != nil {
		return item, fmt.Errorf("confirming lancamento %d: %w", id, err)
	}
	return item, nil
}
