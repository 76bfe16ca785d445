package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	wire "worldexplorer/internal/api"
)

func newCountriesCmd(cfg *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Browse country data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := cfg.client().Countries(cmd.Context())
			if err != nil {
				return err
			}
			return printCountries(cmd.OutOrStdout(), list)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search <name>",
		Short: "Search countries by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := cfg.client().SearchCountries(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printCountries(cmd.OutOrStdout(), list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "region <region>",
		Short:     "List the countries of a region",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"Africa", "Americas", "Asia", "Europe", "Oceania"},
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := cfg.client().Region(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCountries(cmd.OutOrStdout(), list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <code>",
		Short: "Show one country and its neighbours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := cfg.client().Country(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printDetail(cmd.OutOrStdout(), detail)
		},
	})

	return cmd
}

func printCountries(w io.Writer, list []wire.Country) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tREGION\tCAPITAL\tPOPULATION")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.Code, c.Name, c.Region, strings.Join(c.Capital, ", "), c.Population)
	}
	return tw.Flush()
}

func printDetail(w io.Writer, d *wire.CountryDetail) error {
	c := d.Country
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s (%s)\n", c.Name, c.Code)
	if c.OfficialName != "" {
		fmt.Fprintf(tw, "Official:\t%s\n", c.OfficialName)
	}
	fmt.Fprintf(tw, "Region:\t%s / %s\n", c.Region, c.Subregion)
	fmt.Fprintf(tw, "Capital:\t%s\n", strings.Join(c.Capital, ", "))
	fmt.Fprintf(tw, "Population:\t%d\n", c.Population)
	fmt.Fprintf(tw, "Area:\t%.0f km²\n", c.Area)
	fmt.Fprintf(tw, "Languages:\t%s\n", strings.Join(c.Languages, ", "))

	currencies := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		currencies = append(currencies, fmt.Sprintf("%s (%s)", cur.Name, cur.Code))
	}
	fmt.Fprintf(tw, "Currencies:\t%s\n", strings.Join(currencies, ", "))

	neighbours := make([]string, 0, len(d.Borders))
	for _, b := range d.Borders {
		neighbours = append(neighbours, b.Name)
	}
	if len(neighbours) == 0 {
		neighbours = append(neighbours, "none")
	}
	fmt.Fprintf(tw, "Borders:\t%s\n", strings.Join(neighbours, ", "))
	return tw.Flush()
}
