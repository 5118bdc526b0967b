package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/spf13/cobra"

	"github.com/mkowalczyk/zus-accident-assistant/internal/bootstrap"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/usecase"
)

func newAnalyzeCmd(app *bootstrap.ClientApp) *cobra.Command {
	var (
		exportReport bool
		publishEvent bool
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze file[:type[:form]] [file[:type[:form]]...]",
		Short: "Analyze accident case documents",
		Long: `Submits the given documents to the analysis pipeline and follows
the run to completion.

Each argument is a file path optionally annotated with a document type
(notification, explanation, medical, police, prosecutor, other) and a
form (printed, handwritten). When the form is omitted, PDF files are
inspected for a text layer to suggest one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, app, exportReport, publishEvent)
		},
	}

	analyzeCmd.Flags().BoolVarP(&exportReport, "export", "x", true, "write the accident card and opinion to an XLSX report")
	analyzeCmd.Flags().BoolVar(&publishEvent, "publish", true, "publish the completed analysis for persistence")
	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, args []string, app *bootstrap.ClientApp, exportReport, publishEvent bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	specs := make([]DocumentSpec, 0, len(args))
	for _, arg := range args {
		spec, err := ParseSpec(arg)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	documents, err := LoadDocuments(specs, app.Prober)
	if err != nil {
		return err
	}

	for _, doc := range documents {
		fmt.Fprintf(out, "Dokument: %s (%s, %s)\n",
			doc.Name, domain.DocumentTypeLabels[doc.Type], domain.DocumentFormLabels[doc.Form])
		key := path.Join("uploads", doc.ID+"-"+doc.Name)
		if err := app.Storage.Save(ctx, key, bytes.NewReader(doc.Payload)); err != nil {
			return fmt.Errorf("stage document %s: %w", doc.Name, err)
		}
	}
	fmt.Fprintln(out)

	renderer := NewStageRenderer(out)
	tracker := usecase.NewProcessingTracker(app.RunUC, usecase.TrackerOptions{
		OnChange: renderer.OnChange,
	})

	result, err := tracker.Run(ctx, documents)
	if err != nil {
		return err
	}

	printSummary(out, result)

	if exportReport {
		report, err := app.Exporter.Export(result)
		if err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		key := path.Join("reports", result.CaseID+".xlsx")
		if err := app.Storage.Save(ctx, key, bytes.NewReader(report)); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Fprintf(out, "\nRaport zapisano: %s\n", app.Storage.Path(key))
	}

	if publishEvent {
		if err := app.Events.PublishAnalysisCompleted(ctx, result); err != nil {
			slog.Warn("publish analysis event failed", "case_id", result.CaseID, "error", err)
		}
	}
	return nil
}

func printSummary(out io.Writer, result domain.AnalysisResult) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Sprawa: %s\n", result.CaseID)

	qualified := "nie"
	if result.AccidentCard.Qualification.IsWorkAccident {
		qualified = "tak"
	}
	fmt.Fprintf(out, "Wypadek przy pracy: %s\n", qualified)
	fmt.Fprintf(out, "Uzasadnienie: %s\n", result.AccidentCard.Qualification.Justification)

	for _, warning := range result.QualityWarnings {
		fmt.Fprintf(out, "Uwaga: %s\n", warning)
	}
}
