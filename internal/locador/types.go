package locador

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Flag values used by the backend for FlgAtivo/FlgConfirmado.
const (
	FlagYes = "S"
	FlagNo  = "N"
)

// Active reports whether a S/N flag is set.
func Active(flag string) bool {
	return strings.EqualFold(strings.TrimSpace(flag), FlagYes)
}

// Flag converts a bool into the backend's S/N representation.
func Flag(v bool) string {
	if v {
		return FlagYes
	}
	return FlagNo
}

// Summary mirrors /dashboard/resumo.
type Summary struct {
	TotalReceitas        float64 `json:"TotalReceitas"`
	TotalDespesas        float64 `json:"TotalDespesas"`
	Saldo                float64 `json:"Saldo"`
	LancamentosPendentes int     `json:"LancamentosPendentes"`
	Bancos               int     `json:"Bancos"`
	Clientes             int     `json:"Clientes"`
	Contas               int     `json:"Contas"`
	Empresas             int     `json:"Empresas"`
	Favorecidos          int     `json:"Favorecidos"`
	AtualizadoEm         string  `json:"AtualizadoEm"`
}

// ParsedAtualizadoEm returns the server timestamp of the summary.
func (s Summary) ParsedAtualizadoEm() time.Time {
	return parseTime(s.AtualizadoEm)
}

// Banco is a bank record.
type Banco struct {
	Codigo      int    `json:"Codigo"`
	Nome        string `json:"Nome"`
	NumeroBanco string `json:"NumeroBanco"`
	FlgAtivo    string `json:"FlgAtivo"`
}

// Key returns the record identifier.
func (b Banco) Key() int { return b.Codigo }

// BancoCreate is the POST /bancos payload.
type BancoCreate struct {
	Nome        string `json:"Nome"`
	NumeroBanco string `json:"NumeroBanco"`
	FlgAtivo    string `json:"FlgAtivo"`
}

// BancoUpdate is the PUT /bancos/{id} payload; nil fields are left unchanged.
type BancoUpdate struct {
	Nome        *string `json:"Nome,omitempty"`
	NumeroBanco *string `json:"NumeroBanco,omitempty"`
	FlgAtivo    *string `json:"FlgAtivo,omitempty"`
}

// Cliente is a client record.
type Cliente struct {
	Codigo   int    `json:"Codigo"`
	Nome     string `json:"Nome"`
	CpfCnpj  string `json:"CpfCnpj"`
	Email    string `json:"Email"`
	Telefone string `json:"Telefone"`
	FlgAtivo string `json:"FlgAtivo"`
}

// Key returns the record identifier.
func (c Cliente) Key() int { return c.Codigo }

// ClienteCreate is the POST /clientes payload.
type ClienteCreate struct {
	Nome     string `json:"Nome"`
	CpfCnpj  string `json:"CpfCnpj"`
	Email    string `json:"Email,omitempty"`
	Telefone string `json:"Telefone,omitempty"`
	FlgAtivo string `json:"FlgAtivo"`
}

// ClienteUpdate is the PUT /clientes/{id} payload.
type ClienteUpdate struct {
	Nome     *string `json:"Nome,omitempty"`
	CpfCnpj  *string `json:"CpfCnpj,omitempty"`
	Email    *string `json:"Email,omitempty"`
	Telefone *string `json:"Telefone,omitempty"`
	FlgAtivo *string `json:"FlgAtivo,omitempty"`
}

// Conta is a bank account.
type Conta struct {
	Codigo       int     `json:"Codigo"`
	CodBanco     int     `json:"CodBanco"`
	Agencia      string  `json:"Agencia"`
	NumeroConta  string  `json:"NumeroConta"`
	Descricao    string  `json:"Descricao"`
	SaldoInicial float64 `json:"SaldoInicial"`
	FlgAtivo     string  `json:"FlgAtivo"`
}

// Key returns the record identifier.
func (c Conta) Key() int { return c.Codigo }

// ContaCreate is the POST /contas payload.
type ContaCreate struct {
	CodBanco     int     `json:"CodBanco"`
	Agencia      string  `json:"Agencia"`
	NumeroConta  string  `json:"NumeroConta"`
	Descricao    string  `json:"Descricao,omitempty"`
	SaldoInicial float64 `json:"SaldoInicial"`
	FlgAtivo     string  `json:"FlgAtivo"`
}

// ContaUpdate is the PUT /contas/{id} payload.
type ContaUpdate struct {
	CodBanco     *int     `json:"CodBanco,omitempty"`
	Agencia      *string  `json:"Agencia,omitempty"`
	NumeroConta  *string  `json:"NumeroConta,omitempty"`
	Descricao    *string  `json:"Descricao,omitempty"`
	SaldoInicial *float64 `json:"SaldoInicial,omitempty"`
	FlgAtivo     *string  `json:"FlgAtivo,omitempty"`
}

// Empresa is a company record.
type Empresa struct {
	Codigo       int    `json:"Codigo"`
	RazaoSocial  string `json:"RazaoSocial"`
	NomeFantasia string `json:"NomeFantasia"`
	Cnpj         string `json:"Cnpj"`
	FlgAtivo     string `json:"FlgAtivo"`
}

// Key returns the record identifier.
func (e Empresa) Key() int { return e.Codigo }

// EmpresaCreate is the POST /empresas payload.
type EmpresaCreate struct {
	RazaoSocial  string `json:"RazaoSocial"`
	NomeFantasia string `json:"NomeFantasia,omitempty"`
	Cnpj         string `json:"Cnpj"`
	FlgAtivo     string `json:"FlgAtivo"`
}

// EmpresaUpdate is the PUT /empresas/{id} payload.
type EmpresaUpdate struct {
	RazaoSocial  *string `json:"RazaoSocial,omitempty"`
	NomeFantasia *string `json:"NomeFantasia,omitempty"`
	Cnpj         *string `json:"Cnpj,omitempty"`
	FlgAtivo     *string `json:"FlgAtivo,omitempty"`
}

// Favorecido is a beneficiary (payee).
type Favorecido struct {
	Codigo     int    `json:"Codigo"`
	Nome       string `json:"Nome"`
	CpfCnpj    string `json:"CpfCnpj"`
	TipoPessoa string `json:"TipoPessoa"` // F or J
	FlgAtivo   string `json:"FlgAtivo"`
}

// Key returns the record identifier.
func (f Favorecido) Key() int { return f.Codigo }

// FavorecidoCreate is the POST /favorecidos payload.
type FavorecidoCreate struct {
	Nome       string `json:"Nome"`
	CpfCnpj    string `json:"CpfCnpj"`
	TipoPessoa string `json:"TipoPessoa"`
	FlgAtivo   string `json:"FlgAtivo"`
}

// FavorecidoUpdate is the PUT /favorecidos/{id} payload.
type FavorecidoUpdate struct {
	Nome       *string `json:"Nome,omitempty"`
	CpfCnpj    *string `json:"CpfCnpj,omitempty"`
	TipoPessoa *string `json:"TipoPessoa,omitempty"`
	FlgAtivo   *string `json:"FlgAtivo,omitempty"`
}

// Entry kinds.
const (
	TipoReceita = "R"
	TipoDespesa = "D"
)

// Lancamento is a financial ledger entry.
type Lancamento struct {
	Codigo         int     `json:"Codigo"`
	CodEmpresa     int     `json:"CodEmpresa"`
	CodConta       int     `json:"CodConta"`
	CodFavorecido  int     `json:"CodFavorecido"`
	Descricao      string  `json:"Descricao"`
	Tipo           string  `json:"Tipo"`
	Valor          float64 `json:"Valor"`
	DataLancamento string  `json:"DataLancamento"`
	DataVencimento string  `json:"DataVencimento"`
	FlgConfirmado  string  `json:"FlgConfirmado"`
}

// Key returns the record identifier.
func (l Lancamento) Key() int { return l.Codigo }

// Confirmed reports whether the entry has been confirmed.
func (l Lancamento) Confirmed() bool { return Active(l.FlgConfirmado) }

// ParsedVencimento returns the due date, zero when absent or malformed.
func (l Lancamento) ParsedVencimento() time.Time { return parseTime(l.DataVencimento) }

// LancamentoCreate is the POST /lancamentos payload.
type LancamentoCreate struct {
	CodEmpresa     int     `json:"CodEmpresa"`
	CodConta       int     `json:"CodConta"`
	CodFavorecido  int     `json:"CodFavorecido"`
	Descricao      string  `json:"Descricao"`
	Tipo           string  `json:"Tipo"`
	Valor          float64 `json:"Valor"`
	DataLancamento string  `json:"DataLancamento"`
	DataVencimento string  `json:"DataVencimento,omitempty"`
}

// LancamentoUpdate is the PUT /lancamentos/{id} payload.
type LancamentoUpdate struct {
	CodEmpresa     *int     `json:"CodEmpresa,omitempty"`
	CodConta       *int     `json:"CodConta,omitempty"`
	CodFavorecido  *int     `json:"CodFavorecido,omitempty"`
	Descricao      *string  `json:"Descricao,omitempty"`
	Tipo           *string  `json:"Tipo,omitempty"`
	Valor          *float64 `json:"Valor,omitempty"`
	DataLancamento *string  `json:"DataLancamento,omitempty"`
	DataVencimento *string  `json:"DataVencimento,omitempty"`
}

// ActiveFilter is shared by resources that only support the active flag and
// free-text search.
type ActiveFilter struct {
	AtivosApenas bool
	Search       string
}

// Encode implements Filter.
func (f ActiveFilter) Encode(values url.Values) {
	if f.AtivosApenas {
		values.Set("ativos_apenas", "true")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		values.Set("search", s)
	}
}

// ContaFilter narrows /contas.
type ContaFilter struct {
	AtivosApenas bool
	CodBanco     int
	Search       string
}

// Encode implements Filter.
func (f ContaFilter) Encode(values url.Values) {
	ActiveFilter{AtivosApenas: f.AtivosApenas, Search: f.Search}.Encode(values)
	if f.CodBanco > 0 {
		values.Set("cod_banco", strconv.Itoa(f.CodBanco))
	}
}

// LancamentoFilter narrows /lancamentos.
type LancamentoFilter struct {
	CodFavorecido int
	CodEmpresa    int
	CodConta      int
	Tipo          string
	Confirmado    *bool
	DataInicio    string
	DataFim       string
	Search        string
}

// Encode implements Filter.
func (f LancamentoFilter) Encode(values url.Values) {
	if f.CodFavorecido > 0 {
		values.Set("cod_favorecido", strconv.Itoa(f.CodFavorecido))
	}
	if f.CodEmpresa > 0 {
		values.Set("cod_empresa", strconv.Itoa(f.CodEmpresa))
	}
	if f.CodConta > 0 {
		values.Set("cod_conta", strconv.Itoa(f.CodConta))
	}
	if t := strings.TrimSpace(f.Tipo); t != "" {
		values.Set("tipo", t)
	}
	if f.Confirmado != nil {
		values.Set("confirmado", strconv.FormatBool(*f.Confirmado))
	}
	if d := strings.TrimSpace(f.DataInicio); d != "" {
		values.Set("data_inicio", d)
	}
	if d := strings.TrimSpace(f.DataFim); d != "" {
		values.Set("data_fim", d)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		values.Set("search", s)
	}
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(dateLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
