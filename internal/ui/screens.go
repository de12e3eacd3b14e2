package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/locador/internal/form"
	"github.com/five82/locador/internal/locador"
	"github.com/five82/locador/internal/resource"
)

// newScreens builds the resource screens in sidebar order (keys 1..6).
func newScreens(set *resource.Set) []screen {
	return []screen{
		newResourceScreen(bancosBinding(), set.Bancos),
		newResourceScreen(clientesBinding(), set.Clientes),
		newResourceScreen(contasBinding(), set.Contas),
		newResourceScreen(empresasBinding(), set.Empresas),
		newResourceScreen(favorecidosBinding(), set.Favorecidos),
		newResourceScreen(lancamentosBinding(set), set.Lancamentos),
	}
}

var flagField = formField{name: "FlgAtivo", label: "Ativo (S/N)", placeholder: "S", limit: 1}

var activeDefaults = map[string]string{"FlgAtivo": locador.FlagYes}

func idColumn[R resource.Keyed[int]]() column[R] {
	return column[R]{title: "Cód", width: 6, right: true, value: func(r R) string { return strconv.Itoa(r.Key()) }}
}

func activeColumn[R any](flag func(R) string) column[R] {
	return column[R]{
		title: "Ativo",
		width: 5,
		value: func(r R) string { return flagLabel(flag(r)) },
		badge: func(r R) string { return ternary(locador.Active(flag(r)), "ativo", "inativo") },
	}
}

// Active-flag filters

func activeSearch(f locador.ActiveFilter) string { return f.Search }

func activeWithSearch(f locador.ActiveFilter, q string) locador.ActiveFilter {
	f.Search = q
	return f
}

func activeToggle(f locador.ActiveFilter) locador.ActiveFilter {
	f.AtivosApenas = !f.AtivosApenas
	return f
}

func activeLabel(f locador.ActiveFilter) string {
	return ternary(f.AtivosApenas, "ativos apenas", "")
}

func bancosBinding() binding[locador.Banco, locador.BancoCreate, locador.BancoUpdate, locador.ActiveFilter] {
	return binding[locador.Banco, locador.BancoCreate, locador.BancoUpdate, locador.ActiveFilter]{
		title: "Bancos",
		noun:  "banco",
		columns: []column[locador.Banco]{
			idColumn[locador.Banco](),
			{title: "Nome", value: func(b locador.Banco) string { return b.Nome }},
			{title: "Número", width: 7, value: func(b locador.Banco) string { return b.NumeroBanco }},
			activeColumn(func(b locador.Banco) string { return b.FlgAtivo }),
		},
		detail: func(b locador.Banco) []detailRow {
			return []detailRow{
				{"Código", strconv.Itoa(b.Codigo)},
				{"Nome", b.Nome},
				{"Número", b.NumeroBanco},
				{"Ativo", flagLabel(b.FlgAtivo)},
			}
		},
		fields: []formField{
			{name: "Nome", label: "Nome", placeholder: "Banco do Brasil", limit: 100},
			{name: "NumeroBanco", label: "Número", placeholder: "001", limit: 5},
			flagField,
		},
		schema: form.Schema{
			"Nome":        {form.Required(), form.MaxLen(100)},
			"NumeroBanco": {form.Required(), form.Digits(), form.MaxLen(5)},
			"FlgAtivo":    {form.Required(), form.OneOf(locador.FlagYes, locador.FlagNo)},
		},
		values: func(b locador.Banco) map[string]string {
			return map[string]string{"Nome": b.Nome, "NumeroBanco": b.NumeroBanco, "FlgAtivo": b.FlgAtivo}
		},
		defaults: activeDefaults,
		create: func(v map[string]string) (locador.BancoCreate, error) {
			return locador.BancoCreate{
				Nome:        text(v, "Nome"),
				NumeroBanco: text(v, "NumeroBanco"),
				FlgAtivo:    flag(v),
			}, nil
		},
		update: func(v map[string]string) (locador.BancoUpdate, error) {
			return locador.BancoUpdate{
				Nome:        textPtr(v, "Nome"),
				NumeroBanco: textPtr(v, "NumeroBanco"),
				FlgAtivo:    ptr(flag(v)),
			}, nil
		},
		search:      activeSearch,
		withSearch:  activeWithSearch,
		toggle:      activeToggle,
		filterLabel: activeLabel,
	}
}

func clientesBinding() binding[locador.Cliente, locador.ClienteCreate, locador.ClienteUpdate, locador.ActiveFilter] {
	return binding[locador.Cliente, locador.ClienteCreate, locador.ClienteUpdate, locador.ActiveFilter]{
		title: "Clientes",
		noun:  "cliente",
		columns: []column[locador.Cliente]{
			idColumn[locador.Cliente](),
			{title: "Nome", value: func(c locador.Cliente) string { return c.Nome }},
			{title: "CPF/CNPJ", width: 18, value: func(c locador.Cliente) string { return formatDocument(c.CpfCnpj) }},
			{title: "E-mail", value: func(c locador.Cliente) string { return c.Email }},
			activeColumn(func(c locador.Cliente) string { return c.FlgAtivo }),
		},
		detail: func(c locador.Cliente) []detailRow {
			return []detailRow{
				{"Código", strconv.Itoa(c.Codigo)},
				{"Nome", c.Nome},
				{"CPF/CNPJ", formatDocument(c.CpfCnpj)},
				{"E-mail", c.Email},
				{"Telefone", c.Telefone},
				{"Ativo", flagLabel(c.FlgAtivo)},
			}
		},
		fields: []formField{
			{name: "Nome", label: "Nome", limit: 150},
			{name: "CpfCnpj", label: "CPF/CNPJ", placeholder: "000.000.000-00", limit: 18},
			{name: "Email", label: "E-mail", placeholder: "nome@exemplo.com", limit: 120},
			{name: "Telefone", label: "Telefone", placeholder: "(11) 90000-0000", limit: 20},
			flagField,
		},
		schema: form.Schema{
			"Nome":     {form.Required(), form.MaxLen(150)},
			"CpfCnpj":  {form.Required(), form.Document()},
			"Email":    {form.MaxLen(120), email},
			"Telefone": {form.MaxLen(20)},
			"FlgAtivo": {form.Required(), form.OneOf(locador.FlagYes, locador.FlagNo)},
		},
		values: func(c locador.Cliente) map[string]string {
			return map[string]string{
				"Nome": c.Nome, "CpfCnpj": c.CpfCnpj, "Email": c.Email,
				"Telefone": c.Telefone, "FlgAtivo": c.FlgAtivo,
			}
		},
		defaults: activeDefaults,
		create: func(v map[string]string) (locador.ClienteCreate, error) {
			return locador.ClienteCreate{
				Nome:     text(v, "Nome"),
				CpfCnpj:  form.OnlyDigits(v["CpfCnpj"]),
				Email:    text(v, "Email"),
				Telefone: text(v, "Telefone"),
				FlgAtivo: flag(v),
			}, nil
		},
		update: func(v map[string]string) (locador.ClienteUpdate, error) {
			return locador.ClienteUpdate{
				Nome:     textPtr(v, "Nome"),
				CpfCnpj:  ptr(form.OnlyDigits(v["CpfCnpj"])),
				Email:    textPtr(v, "Email"),
				Telefone: textPtr(v, "Telefone"),
				FlgAtivo: ptr(flag(v)),
			}, nil
		},
		search:      activeSearch,
		withSearch:  activeWithSearch,
		toggle:      activeToggle,
		filterLabel: activeLabel,
	}
}

func contasBinding() binding[locador.Conta, locador.ContaCreate, locador.ContaUpdate, locador.ContaFilter] {
	return binding[locador.Conta, locador.ContaCreate, locador.ContaUpdate, locador.ContaFilter]{
		title: "Contas",
		noun:  "conta",
		columns: []column[locador.Conta]{
			idColumn[locador.Conta](),
			{title: "Banco", width: 6, right: true, value: func(c locador.Conta) string { return strconv.Itoa(c.CodBanco) }},
			{title: "Agência", width: 8, value: func(c locador.Conta) string { return c.Agencia }},
			{title: "Conta", width: 12, value: func(c locador.Conta) string { return c.NumeroConta }},
			{title: "Descrição", value: func(c locador.Conta) string { return c.Descricao }},
			{title: "Saldo inicial", width: 16, right: true, value: func(c locador.Conta) string { return formatBRL(c.SaldoInicial) }},
			activeColumn(func(c locador.Conta) string { return c.FlgAtivo }),
		},
		detail: func(c locador.Conta) []detailRow {
			return []detailRow{
				{"Código", strconv.Itoa(c.Codigo)},
				{"Banco", strconv.Itoa(c.CodBanco)},
				{"Agência", c.Agencia},
				{"Conta", c.NumeroConta},
				{"Descrição", c.Descricao},
				{"Saldo inicial", formatBRL(c.SaldoInicial)},
				{"Ativo", flagLabel(c.FlgAtivo)},
			}
		},
		fields: []formField{
			{name: "CodBanco", label: "Banco (código)", limit: 9},
			{name: "Agencia", label: "Agência", limit: 10},
			{name: "NumeroConta", label: "Conta", limit: 20},
			{name: "Descricao", label: "Descrição", limit: 100},
			{name: "SaldoInicial", label: "Saldo inicial", placeholder: "0,00", limit: 20},
			flagField,
		},
		schema: form.Schema{
			"CodBanco":     {form.Required(), form.Digits()},
			"Agencia":      {form.Required(), form.MaxLen(10)},
			"NumeroConta":  {form.Required(), form.MaxLen(20)},
			"Descricao":    {form.MaxLen(100)},
			"SaldoInicial": {form.Decimal()},
			"FlgAtivo":     {form.Required(), form.OneOf(locador.FlagYes, locador.FlagNo)},
		},
		values: func(c locador.Conta) map[string]string {
			return map[string]string{
				"CodBanco":     strconv.Itoa(c.CodBanco),
				"Agencia":      c.Agencia,
				"NumeroConta":  c.NumeroConta,
				"Descricao":    c.Descricao,
				"SaldoInicial": strconv.FormatFloat(c.SaldoInicial, 'f', 2, 64),
				"FlgAtivo":     c.FlgAtivo,
			}
		},
		defaults: map[string]string{"FlgAtivo": locador.FlagYes, "SaldoInicial": "0"},
		create: func(v map[string]string) (locador.ContaCreate, error) {
			banco, err := number(v, "CodBanco")
			if err != nil {
				return locador.ContaCreate{}, err
			}
			saldo, err := amount(v, "SaldoInicial")
			if err != nil {
				return locador.ContaCreate{}, err
			}
			return locador.ContaCreate{
				CodBanco:     banco,
				Agencia:      text(v, "Agencia"),
				NumeroConta:  text(v, "NumeroConta"),
				Descricao:    text(v, "Descricao"),
				SaldoInicial: saldo,
				FlgAtivo:     flag(v),
			}, nil
		},
		update: func(v map[string]string) (locador.ContaUpdate, error) {
			banco, err := number(v, "CodBanco")
			if err != nil {
				return locador.ContaUpdate{}, err
			}
			saldo, err := amount(v, "SaldoInicial")
			if err != nil {
				return locador.ContaUpdate{}, err
			}
			return locador.ContaUpdate{
				CodBanco:     &banco,
				Agencia:      textPtr(v, "Agencia"),
				NumeroConta:  textPtr(v, "NumeroConta"),
				Descricao:    textPtr(v, "Descricao"),
				SaldoInicial: &saldo,
				FlgAtivo:     ptr(flag(v)),
			}, nil
		},
		search: func(f locador.ContaFilter) string { return f.Search },
		withSearch: func(f locador.ContaFilter, q string) locador.ContaFilter {
			f.Search = q
			return f
		},
		toggle: func(f locador.ContaFilter) locador.ContaFilter {
			f.AtivosApenas = !f.AtivosApenas
			return f
		},
		filterLabel: func(f locador.ContaFilter) string {
			parts := []string{}
			if f.AtivosApenas {
				parts = append(parts, "ativas apenas")
			}
			if f.CodBanco > 0 {
				parts = append(parts, fmt.Sprintf("banco %d", f.CodBanco))
			}
			return strings.Join(parts, " · ")
		},
	}
}

func empresasBinding() binding[locador.Empresa, locador.EmpresaCreate, locador.EmpresaUpdate, locador.ActiveFilter] {
	return binding[locador.Empresa, locador.EmpresaCreate, locador.EmpresaUpdate, locador.ActiveFilter]{
		title: "Empresas",
		noun:  "empresa",
		columns: []column[locador.Empresa]{
			idColumn[locador.Empresa](),
			{title: "Razão social", value: func(e locador.Empresa) string { return e.RazaoSocial }},
			{title: "Nome fantasia", value: func(e locador.Empresa) string { return e.NomeFantasia }},
			{title: "CNPJ", width: 18, value: func(e locador.Empresa) string { return formatDocument(e.Cnpj) }},
			activeColumn(func(e locador.Empresa) string { return e.FlgAtivo }),
		},
		detail: func(e locador.Empresa) []detailRow {
			return []detailRow{
				{"Código", strconv.Itoa(e.Codigo)},
				{"Razão social", e.RazaoSocial},
				{"Nome fantasia", e.NomeFantasia},
				{"CNPJ", formatDocument(e.Cnpj)},
				{"Ativo", flagLabel(e.FlgAtivo)},
			}
		},
		fields: []formField{
			{name: "RazaoSocial", label: "Razão social", limit: 150},
			{name: "NomeFantasia", label: "Nome fantasia", limit: 150},
			{name: "Cnpj", label: "CNPJ", placeholder: "00.000.000/0000-00", limit: 18},
			flagField,
		},
		schema: form.Schema{
			"RazaoSocial":  {form.Required(), form.MaxLen(150)},
			"NomeFantasia": {form.MaxLen(150)},
			"Cnpj":         {form.Required(), cnpjOnly, form.Document()},
			"FlgAtivo":     {form.Required(), form.OneOf(locador.FlagYes, locador.FlagNo)},
		},
		values: func(e locador.Empresa) map[string]string {
			return map[string]string{
				"RazaoSocial": e.RazaoSocial, "NomeFantasia": e.NomeFantasia,
				"Cnpj": e.Cnpj, "FlgAtivo": e.FlgAtivo,
			}
		},
		defaults: activeDefaults,
		create: func(v map[string]string) (locador.EmpresaCreate, error) {
			return locador.EmpresaCreate{
				RazaoSocial:  text(v, "RazaoSocial"),
				NomeFantasia: text(v, "NomeFantasia"),
				Cnpj:         form.OnlyDigits(v["Cnpj"]),
				FlgAtivo:     flag(v),
			}, nil
		},
		update: func(v map[string]string) (locador.EmpresaUpdate, error) {
			return locador.EmpresaUpdate{
				RazaoSocial:  textPtr(v, "RazaoSocial"),
				NomeFantasia: textPtr(v, "NomeFantasia"),
				Cnpj:         ptr(form.OnlyDigits(v["Cnpj"])),
				FlgAtivo:     ptr(flag(v)),
			}, nil
		},
		search:      activeSearch,
		withSearch:  activeWithSearch,
		toggle:      activeToggle,
		filterLabel: activeLabel,
	}
}

func favorecidosBinding() binding[locador.Favorecido, locador.FavorecidoCreate, locador.FavorecidoUpdate, locador.ActiveFilter] {
	return binding[locador.Favorecido, locador.FavorecidoCreate, locador.FavorecidoUpdate, locador.ActiveFilter]{
		title: "Favorecidos",
		noun:  "favorecido",
		columns: []column[locador.Favorecido]{
			idColumn[locador.Favorecido](),
			{title: "Nome", value: func(f locador.Favorecido) string { return f.Nome }},
			{title: "CPF/CNPJ", width: 18, value: func(f locador.Favorecido) string { return formatDocument(f.CpfCnpj) }},
			{title: "Tipo", width: 8, value: func(f locador.Favorecido) string { return pessoaLabel(f.TipoPessoa) }},
			activeColumn(func(f locador.Favorecido) string { return f.FlgAtivo }),
		},
		detail: func(f locador.Favorecido) []detailRow {
			return []detailRow{
				{"Código", strconv.Itoa(f.Codigo)},
				{"Nome", f.Nome},
				{"CPF/CNPJ", formatDocument(f.CpfCnpj)},
				{"Tipo", pessoaLabel(f.TipoPessoa)},
				{"Ativo", flagLabel(f.FlgAtivo)},
			}
		},
		fields: []formField{
			{name: "Nome", label: "Nome", limit: 150},
			{name: "CpfCnpj", label: "CPF/CNPJ", limit: 18},
			{name: "TipoPessoa", label: "Pessoa (F/J)", placeholder: "F", limit: 1},
			flagField,
		},
		schema: form.Schema{
			"Nome":       {form.Required(), form.MaxLen(150)},
			"CpfCnpj":    {form.Required(), form.Document()},
			"TipoPessoa": {form.Required(), form.OneOf("F", "J")},
			"FlgAtivo":   {form.Required(), form.OneOf(locador.FlagYes, locador.FlagNo)},
		},
		values: func(f locador.Favorecido) map[string]string {
			return map[string]string{
				"Nome": f.Nome, "CpfCnpj": f.CpfCnpj,
				"TipoPessoa": f.TipoPessoa, "FlgAtivo": f.FlgAtivo,
			}
		},
		defaults: map[string]string{"FlgAtivo": locador.FlagYes, "TipoPessoa": "F"},
		create: func(v map[string]string) (locador.FavorecidoCreate, error) {
			return locador.FavorecidoCreate{
				Nome:       text(v, "Nome"),
				CpfCnpj:    form.OnlyDigits(v["CpfCnpj"]),
				TipoPessoa: strings.ToUpper(text(v, "TipoPessoa")),
				FlgAtivo:   flag(v),
			}, nil
		},
		update: func(v map[string]string) (locador.FavorecidoUpdate, error) {
			return locador.FavorecidoUpdate{
				Nome:       textPtr(v, "Nome"),
				CpfCnpj:    ptr(form.OnlyDigits(v["CpfCnpj"])),
				TipoPessoa: ptr(strings.ToUpper(text(v, "TipoPessoa"))),
				FlgAtivo:   ptr(flag(v)),
			}, nil
		},
		search:      activeSearch,
		withSearch:  activeWithSearch,
		toggle:      activeToggle,
		filterLabel: activeLabel,
	}
}

func lancamentosBinding(set *resource.Set) binding[locador.Lancamento, locador.LancamentoCreate, locador.LancamentoUpdate, locador.LancamentoFilter] {
	return binding[locador.Lancamento, locador.LancamentoCreate, locador.LancamentoUpdate, locador.LancamentoFilter]{
		title: "Lançamentos",
		noun:  "lançamento",
		columns: []column[locador.Lancamento]{
			idColumn[locador.Lancamento](),
			{title: "Data", width: 10, value: func(l locador.Lancamento) string { return formatDate(l.DataLancamento) }},
			{title: "Descrição", value: func(l locador.Lancamento) string { return l.Descricao }},
			{
				title: "Tipo", width: 7,
				value: func(l locador.Lancamento) string { return tipoLabel(l.Tipo) },
				badge: func(l locador.Lancamento) string { return tipoLabel(l.Tipo) },
			},
			{title: "Valor", width: 16, right: true, value: func(l locador.Lancamento) string { return formatBRL(l.Valor) }},
			{title: "Venc.", width: 10, value: func(l locador.Lancamento) string { return formatDate(l.DataVencimento) }},
			{
				title: "Situação", width: 10,
				value: func(l locador.Lancamento) string { return entryStatus(l, time.Now()) },
				badge: func(l locador.Lancamento) string { return entryStatus(l, time.Now()) },
			},
		},
		detail: func(l locador.Lancamento) []detailRow {
			return []detailRow{
				{"Código", strconv.Itoa(l.Codigo)},
				{"Descrição", l.Descricao},
				{"Tipo", tipoLabel(l.Tipo)},
				{"Valor", formatBRL(l.Valor)},
				{"Data", formatDate(l.DataLancamento)},
				{"Vencimento", formatDate(l.DataVencimento)},
				{"Situação", entryStatus(l, time.Now())},
				{"Empresa", strconv.Itoa(l.CodEmpresa)},
				{"Conta", strconv.Itoa(l.CodConta)},
				{"Favorecido", strconv.Itoa(l.CodFavorecido)},
			}
		},
		fields: []formField{
			{name: "Descricao", label: "Descrição", limit: 200},
			{name: "Tipo", label: "Tipo (R/D)", placeholder: "D", limit: 1},
			{name: "Valor", label: "Valor", placeholder: "0,00", limit: 20},
			{name: "DataLancamento", label: "Data", placeholder: "AAAA-MM-DD", limit: 10},
			{name: "DataVencimento", label: "Vencimento", placeholder: "AAAA-MM-DD", limit: 10},
			{name: "CodEmpresa", label: "Empresa (código)", limit: 9},
			{name: "CodConta", label: "Conta (código)", limit: 9},
			{name: "CodFavorecido", label: "Favorecido (código)", limit: 9},
		},
		schema: form.Schema{
			"Descricao":      {form.Required(), form.MaxLen(200)},
			"Tipo":           {form.Required(), form.OneOf(locador.TipoReceita, locador.TipoDespesa)},
			"Valor":          {form.Required(), form.Decimal(), positive},
			"DataLancamento": {form.Required(), form.Date()},
			"DataVencimento": {form.Date()},
			"CodEmpresa":     {form.Required(), form.Digits()},
			"CodConta":       {form.Required(), form.Digits()},
			"CodFavorecido":  {form.Required(), form.Digits()},
		},
		values: func(l locador.Lancamento) map[string]string {
			return map[string]string{
				"Descricao":      l.Descricao,
				"Tipo":           l.Tipo,
				"Valor":          strconv.FormatFloat(l.Valor, 'f', 2, 64),
				"DataLancamento": isoDate(l.DataLancamento),
				"DataVencimento": isoDate(l.DataVencimento),
				"CodEmpresa":     strconv.Itoa(l.CodEmpresa),
				"CodConta":       strconv.Itoa(l.CodConta),
				"CodFavorecido":  strconv.Itoa(l.CodFavorecido),
			}
		},
		defaults: map[string]string{
			"Tipo":           locador.TipoDespesa,
			"DataLancamento": time.Now().Format("2006-01-02"),
		},
		create:      lancamentoCreate,
		update:      lancamentoUpdate,
		search:      func(f locador.LancamentoFilter) string { return f.Search },
		withSearch:  lancamentoWithSearch,
		toggle:      lancamentoToggle,
		filterLabel: lancamentoLabel,
		confirm:     set.ConfirmLancamento,
		confirmed:   locador.Lancamento.Confirmed,
	}
}

func lancamentoCreate(v map[string]string) (locador.LancamentoCreate, error) {
	var out locador.LancamentoCreate
	var err error
	if out.CodEmpresa, err = number(v, "CodEmpresa"); err != nil {
		return out, err
	}
	if out.CodConta, err = number(v, "CodConta"); err != nil {
		return out, err
	}
	if out.CodFavorecido, err = number(v, "CodFavorecido"); err != nil {
		return out, err
	}
	if out.Valor, err = amount(v, "Valor"); err != nil {
		return out, err
	}
	if out.DataLancamento, err = date(v, "DataLancamento"); err != nil {
		return out, err
	}
	if out.DataVencimento, err = date(v, "DataVencimento"); err != nil {
		return out, err
	}
	out.Descricao = text(v, "Descricao")
	out.Tipo = strings.ToUpper(text(v, "Tipo"))
	return out, nil
}

func lancamentoUpdate(v map[string]string) (locador.LancamentoUpdate, error) {
	c, err := lancamentoCreate(v)
	if err != nil {
		return locador.LancamentoUpdate{}, err
	}
	out := locador.LancamentoUpdate{
		CodEmpresa:     &c.CodEmpresa,
		CodConta:       &c.CodConta,
		CodFavorecido:  &c.CodFavorecido,
		Descricao:      &c.Descricao,
		Tipo:           &c.Tipo,
		Valor:          &c.Valor,
		DataLancamento: &c.DataLancamento,
	}
	if c.DataVencimento != "" {
		out.DataVencimento = &c.DataVencimento
	}
	return out, nil
}

func lancamentoWithSearch(f locador.LancamentoFilter, q string) locador.LancamentoFilter {
	f.Search = q
	return f
}

// lancamentoToggle cycles all → pendentes → confirmados → all.
func lancamentoToggle(f locador.LancamentoFilter) locador.LancamentoFilter {
	switch {
	case f.Confirmado == nil:
		f.Confirmado = ptr(false)
	case !*f.Confirmado:
		f.Confirmado = ptr(true)
	default:
		f.Confirmado = nil
	}
	return f
}

func lancamentoLabel(f locador.LancamentoFilter) string {
	parts := []string{}
	if f.Confirmado != nil {
		parts = append(parts, ternary(*f.Confirmado, "confirmados", "pendentes"))
	}
	if f.Tipo != "" {
		parts = append(parts, tipoLabel(f.Tipo))
	}
	if f.DataInicio != "" || f.DataFim != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", formatDate(f.DataInicio), formatDate(f.DataFim)))
	}
	return strings.Join(parts, " · ")
}

// entryStatus is confirmado, pendente, or vencido for pending entries past due.
func entryStatus(l locador.Lancamento, now time.Time) string {
	if l.Confirmed() {
		return "confirmado"
	}
	due := l.ParsedVencimento()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if !due.IsZero() && due.Before(today) {
		return "vencido"
	}
	return "pendente"
}

func tipoLabel(tipo string) string {
	switch strings.ToUpper(strings.TrimSpace(tipo)) {
	case locador.TipoReceita:
		return "receita"
	case locador.TipoDespesa:
		return "despesa"
	default:
		return tipo
	}
}

func pessoaLabel(tipo string) string {
	switch strings.ToUpper(strings.TrimSpace(tipo)) {
	case "F":
		return "física"
	case "J":
		return "jurídica"
	default:
		return tipo
	}
}

// formatDocument masks an 11-digit CPF or 14-digit CNPJ.
func formatDocument(v string) string {
	d := form.OnlyDigits(v)
	switch len(d) {
	case 11:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	case 14:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
	default:
		return v
	}
}

func isoDate(v string) string {
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

// Extra rules

func email(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	at := strings.Index(v, "@")
	if at < 1 || at == len(v)-1 || !strings.Contains(v[at+1:], ".") {
		return "invalid e-mail"
	}
	return ""
}

func cnpjOnly(v string) string {
	if n := len(form.OnlyDigits(v)); n != 0 && n != 14 {
		return "CNPJ needs 14 digits"
	}
	return ""
}

func positive(v string) string {
	f, err := form.ParseDecimal(v)
	if err == nil && f <= 0 {
		return "must be greater than zero"
	}
	return ""
}

// Payload helpers

func text(v map[string]string, field string) string {
	return strings.TrimSpace(v[field])
}

func textPtr(v map[string]string, field string) *string {
	return ptr(text(v, field))
}

func ptr[T any](v T) *T { return &v }

func flag(v map[string]string) string {
	return ternary(locador.Active(v["FlgAtivo"]), locador.FlagYes, locador.FlagNo)
}

func number(v map[string]string, field string) (int, error) {
	n, err := strconv.Atoi(text(v, field))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", field, v[field])
	}
	return n, nil
}

func amount(v map[string]string, field string) (float64, error) {
	raw := text(v, field)
	if raw == "" {
		return 0, nil
	}
	f, err := form.ParseDecimal(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return f, nil
}

func date(v map[string]string, field string) (string, error) {
	raw := text(v, field)
	if raw == "" {
		return "", nil
	}
	d, err := form.NormalizeDate(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
