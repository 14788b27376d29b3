package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/yumyai/admixmap/logger"
	"github.com/yumyai/admixmap/pkg/handler/request"
	"github.com/yumyai/admixmap/pkg/middle"
	"github.com/yumyai/admixmap/pkg/model"
	"github.com/yumyai/admixmap/pkg/render"
	"go.uber.org/zap"
)

const maxSubmissionBytes = 1 << 20

var errNoData = errors.New("No data submitted.")

// Accepts a JSON body or form fields "data" and "calculator".
func decodeProcessRequest(w http.ResponseWriter, r *http.Request) (request.ProcessRequest, error) {
	var req request.ProcessRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.Data = r.PostForm.Get("data")
		req.Calculator = r.PostForm.Get("calculator")
	}

	req.Calculator = request.NormalizeCalculator(req.Calculator)
	if strings.TrimSpace(req.Data) == "" {
		return req, errNoData
	}
	return req, nil
}

func (app *AppContext) process(r *http.Request, req request.ProcessRequest) (*model.ProcessingResult, error) {
	start := time.Now()
	result, err := app.Processor.Process(r.Context(), req.Data, req.Calculator)

	outcome, modelID := "ok", ""
	if err != nil {
		outcome = string(model.KindOf(err))
		if outcome == "" {
			outcome = "internal"
		}
		// only registered ids become metric labels
		if _, ok := app.registry().Get(req.Calculator); ok {
			modelID = req.Calculator
		}
	} else {
		modelID = result.ModelID
	}
	if app.Metrics != nil {
		app.Metrics.ObserveProcess(modelID, outcome, time.Since(start))
	}

	log := middle.LoggerFrom(r.Context(), logger.L())
	log.Debug("Processed submission",
		zap.String("model", modelID),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", time.Since(start)))

	return result, err
}

func writeError(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)
	status := kind.HTTPStatus()
	if kind == "" {
		kind = "internal_error"
	}

	message := model.MessageOf(err)
	if status >= http.StatusInternalServerError && kind != model.KindGeographyLoad {
		message = "Internal server error."
	}

	writeJSON(w, status, request.ErrorResponse{Error: string(kind), Message: message})
}

// POST /admixture/process
func (app *AppContext) ProcessHandler(w http.ResponseWriter, r *http.Request) {

	req, err := decodeProcessRequest(w, r)
	if err != nil {
		logger.Debug("Bad submission", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, request.ErrorResponse{Error: "bad_request", Message: badRequestMessage(err)})
		return
	}

	if request.NewResponseFormat(r.URL.Query().Get("format")) == request.ResponseFormatHTML {
		app.renderAnalysis(w, r, req)
		return
	}

	result, err := app.process(r, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /admixture/analysis, HTML result page
func (app *AppContext) AnalysisPage(w http.ResponseWriter, r *http.Request) {

	req, err := decodeProcessRequest(w, r)
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		render.RenderAnalysisError(w, badRequestMessage(err), app.registry().IDs())
		return
	}

	app.renderAnalysis(w, r, req)
}

func (app *AppContext) renderAnalysis(w http.ResponseWriter, r *http.Request, req request.ProcessRequest) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	result, err := app.process(r, req)
	if err != nil {
		w.WriteHeader(model.KindOf(err).HTTPStatus())
		render.RenderAnalysisError(w, model.MessageOf(err), app.registry().IDs())
		return
	}

	if err := render.RenderAnalysisPage(w, result); err != nil {
		logger.Error("Cannot render analysis page", zap.Error(err))
	}
}

// POST /admixture/samples
func (app *AppContext) SamplesHandler(w http.ResponseWriter, r *http.Request) {

	var req request.SamplesRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, request.ErrorResponse{Error: "bad_request", Message: "Invalid request body"})
		return
	}

	set, err := model.ParseSamples(req.Data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SummarizeSamples(set))
}

// GET /
func (app *AppContext) IndexPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderIndexPage(w, app.registry().Models()); err != nil {
		logger.Error("Cannot render index page", zap.Error(err))
	}
}

func badRequestMessage(err error) string {
	if errors.Is(err, errNoData) {
		return err.Error()
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "Submission is too large."
	}
	return "Invalid request body"
}
