package resource

import (
	"context"

	"github.com/five82/locador/internal/locador"
)

// Per-resource slice types.
type (
	Bancos      = Slice[int, locador.Banco, locador.BancoCreate, locador.BancoUpdate, locador.ActiveFilter]
	Clientes    = Slice[int, locador.Cliente, locador.ClienteCreate, locador.ClienteUpdate, locador.ActiveFilter]
	Contas      = Slice[int, locador.Conta, locador.ContaCreate, locador.ContaUpdate, locador.ContaFilter]
	Empresas    = Slice[int, locador.Empresa, locador.EmpresaCreate, locador.EmpresaUpdate, locador.ActiveFilter]
	Favorecidos = Slice[int, locador.Favorecido, locador.FavorecidoCreate, locador.FavorecidoUpdate, locador.ActiveFilter]
	Lancamentos = Slice[int, locador.Lancamento, locador.LancamentoCreate, locador.LancamentoUpdate, locador.LancamentoFilter]
)

// Set holds one slice per backend resource.
type Set struct {
	Bancos      *Bancos
	Clientes    *Clientes
	Contas      *Contas
	Empresas    *Empresas
	Favorecidos *Favorecidos
	Lancamentos *Lancamentos

	lancamentos locador.LancamentoResource
}

// NewSet builds the slices over client.
func NewSet(client *locador.Client, opts ...Option) *Set {
	lanc := client.Lancamentos()
	return &Set{
		Bancos:      New[int, locador.Banco, locador.BancoCreate, locador.BancoUpdate, locador.ActiveFilter]("bancos", client.Bancos(), opts...),
		Clientes:    New[int, locador.Cliente, locador.ClienteCreate, locador.ClienteUpdate, locador.ActiveFilter]("clientes", client.Clientes(), opts...),
		Contas:      New[int, locador.Conta, locador.ContaCreate, locador.ContaUpdate, locador.ContaFilter]("contas", client.Contas(), opts...),
		Empresas:    New[int, locador.Empresa, locador.EmpresaCreate, locador.EmpresaUpdate, locador.ActiveFilter]("empresas", client.Empresas(), opts...),
		Favorecidos: New[int, locador.Favorecido, locador.FavorecidoCreate, locador.FavorecidoUpdate, locador.ActiveFilter]("favorecidos", client.Favorecidos(), opts...),
		Lancamentos: New[int, locador.Lancamento, locador.LancamentoCreate, locador.LancamentoUpdate, locador.LancamentoFilter]("lancamentos", lanc, opts...),
		lancamentos: lanc,
	}
}

// ConfirmLancamento flips the confirmation flag of entry id and replaces it in
// the lancamentos slice.
func (s *Set) ConfirmLancamento(ctx context.Context, id int, confirmar bool) (locador.Lancamento, error) {
	return s.Lancamentos.Apply(ctx, id, "confirm", func(ctx context.Context) (locador.Lancamento, error) {
		return s.lancamentos.Confirm(ctx, id, confirmar)
	})
}

// Reset returns every slice to idle.
func (s *Set) Reset() {
	s.Bancos.Reset()
	s.Clientes.Reset()
	s.Contas.Reset()
	s.Empresas.Reset()
	s.Favorecidos.Reset()
	s.Lancamentos.Reset()
}
