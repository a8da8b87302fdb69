package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/magicboy5300/exchange/internal/bootstrap"
	"github.com/magicboy5300/exchange/internal/models"
	"github.com/magicboy5300/exchange/internal/services"
)

func ratesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Print the current USD rate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			stores := bootstrap.InitStores(ctx, a.cfg, a.logger)
			defer stores.Close()

			svc := bootstrap.InitServices(a.cfg, stores, nil, a.logger)
			acq := svc.Rates.Acquire(ctx)
			printRates(cmd.OutOrStdout(), acq)
			return nil
		},
	}
}

func convertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "convert <amount> <from> <to>",
		Short:   "Convert an amount between two currencies",
		Example: "exchange convert 100 CNY EUR",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: %q", services.ErrInvalidAmount, args[0])
			}

			ctx := cmdContext(cmd)
			stores := bootstrap.InitStores(ctx, a.cfg, a.logger)
			defer stores.Close()

			svc := bootstrap.InitServices(a.cfg, stores, nil, a.logger)
			rec, err := svc.Conversion.Convert(ctx, amount, args[1], args[2])
			if err != nil {
				return err
			}
			printConversion(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func printRates(w io.Writer, acq services.Acquisition) {
	header := color.New(color.FgCyan, color.Bold)
	code := color.New(color.FgYellow)

	header.Fprintf(w, "1 %s (source: %s)\n", models.BaseCurrency, acq.Source)

	codes := make([]string, 0, len(acq.Rates))
	for c := range acq.Rates {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	for _, c := range codes {
		code.Fprintf(w, "%-4s", c)
		fmt.Fprintf(w, " %14.4f\n", acq.Rates[c])
	}
}

func printConversion(w io.Writer, rec *models.ConversionRecord) {
	result := color.New(color.FgGreen, color.Bold)

	fmt.Fprintf(w, "%s %s = ", services.FormatAmount(rec.FromAmount), rec.FromCurrency)
	result.Fprintf(w, "%s %s", services.FormatAmount(rec.ToAmount), rec.ToCurrency)
	fmt.Fprintf(w, "  (1 %s = %s %s)\n", rec.FromCurrency, services.FormatRate(rec.Rate), rec.ToCurrency)
}
