package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"trialstat/adapters/excel"
	"trialstat/adapters/rtf"
	"trialstat/domain/trial"
	"trialstat/internal/errors"
)

// handleIndex renders the upload form
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, "index.html", nil)
}

// handleUpload accepts an .rtf report or an .xlsx workbook and dispatches to
// the matching extraction path.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.cfg.Server.MaxUploadBytes); err != nil {
		http.Error(w, "upload too large or malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		http.Error(w, "missing document field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".rtf", ".txt":
		a.processRichText(w, r, header.Filename, raw)
	case ".xlsx", ".xlsm":
		a.processWorkbook(w, r, header.Filename, raw)
	default:
		http.Error(w, "unsupported file type; upload .rtf or .xlsx", http.StatusUnsupportedMediaType)
	}
}

// processRichText runs the normalizer and row extractor over an uploaded
// report. Zero records is the one condition surfaced to the user, with the
// first lines of the normalized text as a diagnostic preview.
func (a *App) processRichText(w http.ResponseWriter, r *http.Request, name string, raw []byte) {
	records, lines := rtf.Parse(raw)
	if len(records) == 0 {
		log.Printf("[UI] No records extracted from %q, showing preview", name)
		a.render(w, "preview.html", map[string]interface{}{
			"SourceName": name,
			"Lines":      rtf.Preview(lines, a.cfg.Server.PreviewLines),
		})
		return
	}

	id := a.store.Put(&Run{
		Kind:       RunKindRecords,
		SourceName: name,
		Records:    records,
	})
	http.Redirect(w, r, "/runs/"+id.String(), http.StatusSeeOther)
}

// processWorkbook runs the full pipeline over an uploaded workbook and
// archives the consolidated result when an archive is configured.
func (a *App) processWorkbook(w http.ResponseWriter, r *http.Request, name string, raw []byte) {
	tables, err := a.reader.ReadWorkbook(raw)
	if err != nil {
		http.Error(w, "could not open workbook", http.StatusBadRequest)
		return
	}

	outcome, err := a.pipeline.Run(r.Context(), tables)
	if err != nil {
		if errors.IsNoDataFound(err) {
			a.render(w, "preview.html", map[string]interface{}{
				"SourceName": name,
				"Lines":      []string{"No analyzable (trial, parameter) tables were found in the workbook."},
			})
			return
		}
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	run := &Run{
		Kind:       RunKindAnalysis,
		SourceName: name,
		Outcome:    outcome,
	}
	id := a.store.Put(run)

	if a.archive != nil {
		// Archive failures never block the response.
		if err := a.archive.SaveRun(r.Context(), id, name, outcome.Consolidated); err != nil {
			log.Printf("[UI] Failed to archive run %s: %v", id, err)
		}
	}

	http.Redirect(w, r, "/runs/"+id.String(), http.StatusSeeOther)
}

// handleRun renders a completed run: the record table for rich-text uploads,
// the consolidated result with its report for workbook uploads.
func (a *App) handleRun(w http.ResponseWriter, r *http.Request) {
	run, ok := a.store.Get(trial.RunID(chi.URLParam(r, "runID")))
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch run.Kind {
	case RunKindRecords:
		a.render(w, "records.html", map[string]interface{}{
			"Run":     run,
			"Records": run.Records,
		})
	case RunKindAnalysis:
		a.render(w, "results.html", map[string]interface{}{
			"Run":         run,
			"Rows":        run.Outcome.Consolidated.Rows,
			"Significant": run.Outcome.Significant.Rows,
			"Skipped":     run.Outcome.Skipped,
			"Report":      renderRunReport(run),
		})
	default:
		http.Error(w, "unknown run kind", http.StatusInternalServerError)
	}
}

// handleDownload serves the export workbook for a run. view=significant
// selects the filtered table on analysis runs.
func (a *App) handleDownload(w http.ResponseWriter, r *http.Request) {
	run, ok := a.store.Get(trial.RunID(chi.URLParam(r, "runID")))
	if !ok {
		http.NotFound(w, r)
		return
	}

	var raw []byte
	var err error
	switch run.Kind {
	case RunKindRecords:
		raw, err = excel.WriteRecords(run.Records)
	case RunKindAnalysis:
		raw, err = excel.WriteConsolidated(run.Outcome.Consolidated, run.Outcome.Significant)
	}
	if err != nil {
		log.Printf("[UI] Export failed for run %s: %v", run.ID, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("trialstat_%s.xlsx", run.ID)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(raw)
}
