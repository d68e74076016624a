package httpapi

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/export"
	"jobtrack-engine/internal/store"
)

type ExportHandler struct {
	Tracker *store.Tracker
	Log     *log.Logger
}

func (h ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Tracker.Jobs(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	out, err := export.CSV(jobs)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	attachment(w, "text/csv; charset=utf-8", export.CSVFileName, len(out))
	_, _ = w.Write([]byte(out))
}

func (h ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Tracker.Jobs(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	out, err := export.XLSX(jobs)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSXFileName, len(out))
	_, _ = w.Write(out)
}

func attachment(w http.ResponseWriter, contentType, name string, size int) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(size))
}
