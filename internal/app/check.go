package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
)

// Check signs in, fetches the dashboard summary once and prints it to w.
// It is the headless counterpart of Run, meant for scripts and smoke tests.
func Check(ctx context.Context, opts Options, w io.Writer) error {
	var console io.Writer
	if opts.Dev {
		console = os.Stderr
	}
	rt, err := bootstrap(opts, console)
	if err != nil {
		return err
	}
	defer func() { _ = rt.closeLog() }()

	return check(ctx, rt, w)
}

func check(ctx context.Context, rt *runtime, w io.Writer) error {
	if err := authenticate(ctx, rt); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, rt.cfg.RequestTimeout)
	defer cancel()
	summary, err := rt.client.FetchSummary(ctx)
	if err != nil {
		rt.logger.Error().Err(err).Msg("check failed")
		return fmt.Errorf("fetch dashboard: %w", err)
	}
	rt.logger.Info().Msg("check passed")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "api\t%s\n", rt.client.BaseURL())
	if exp := rt.client.SessionExpiry(); !exp.IsZero() {
		fmt.Fprintf(tw, "session expires\t%s\n", exp.Local().Format(time.RFC3339))
	}
	fmt.Fprintf(tw, "receitas\t%.2f\n", summary.TotalReceitas)
	fmt.Fprintf(tw, "despesas\t%.2f\n", summary.TotalDespesas)
	fmt.Fprintf(tw, "saldo\t%.2f\n", summary.Saldo)
	fmt.Fprintf(tw, "pendentes\t%d\n", summary.LancamentosPendentes)
	fmt.Fprintf(tw, "bancos\t%d\n", summary.Bancos)
	fmt.Fprintf(tw, "clientes\t%d\n", summary.Clientes)
	fmt.Fprintf(tw, "contas\t%d\n", summary.Contas)
	fmt.Fprintf(tw, "empresas\t%d\n", summary.Empresas)
	fmt.Fprintf(tw, "favorecidos\t%d\n", summary.Favorecidos)
	return tw.Flush()
}
