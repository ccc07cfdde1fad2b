package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dnscanon/dnscanon"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagResolver    string
	flagConfig      string
	flagPrintReport bool
	flagDump        bool
	flagVerbose     bool
)

func main() {
	root := &cobra.Command{
		Use:   "dnscanon <domain>",
		Short: "Verify the DNSSEC signature over a domain's TXT RRset",
		Long: "dnscanon fetches a domain's TXT records, the RRSIG covering them and the\n" +
			"signer's DNSKEY, rebuilds the RFC 4034 signed data byte-for-byte, and checks\n" +
			"the ECDSA P-256 signature offline.",
		Args: cobra.ExactArgs(1),
		RunE: run,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVar(&flagResolver, "resolver", "", "recursive resolver address (host:port)")
	root.Flags().StringVar(&flagConfig, "config", "", "path to a TOML config file")
	root.Flags().BoolVar(&flagPrintReport, "print-report", false, "print the record details table")
	root.Flags().BoolVar(&flagDump, "dump", false, "dump the typed verification inputs")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	dnscanon.Query = func(s string) { log.WithField("section", "query").Debug(s) }
	dnscanon.Debug = func(s string) { log.Debug(s) }
	dnscanon.Info = func(s string) { log.Info(s) }
	dnscanon.Warn = func(s string) { log.Warn(s) }

	client, err := buildClient()
	if err != nil {
		return err
	}

	domain := args[0]
	trace := dnscanon.NewTrace()
	log.WithField("trace", trace.ShortID()).Infof("verifying txt rrset for %s via %s", domain, client.ResolverAddr)

	inputs, err := client.GenerateInputs(context.Background(), trace, domain)
	if err != nil {
		return fmt.Errorf("gathering inputs: %w", err)
	}

	valid, err := inputs.Verify()
	if err != nil {
		return fmt.Errorf("structurally invalid rrset: %w", err)
	}

	log.WithField("trace", trace.ShortID()).Infof("completed in %s", trace.Elapsed())

	if flagDump {
		fmt.Fprint(cmd.OutOrStdout(), inputs.Dump())
	}
	if flagPrintReport {
		fmt.Fprint(cmd.OutOrStdout(), inputs.Report(valid))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "RRSIG Verified: %t\n", valid)
	if !valid {
		return errors.New("signature did not verify")
	}
	return nil
}

func buildClient() (*dnscanon.Client, error) {
	if flagConfig != "" {
		cfg, err := dnscanon.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		if flagResolver != "" {
			cfg.Resolver = flagResolver
		}
		return dnscanon.NewClientFromConfig(cfg), nil
	}
	return dnscanon.NewClient(flagResolver), nil
}
