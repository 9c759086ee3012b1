package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resumediff/resumediff/pkg/domain/interfaces"
	"github.com/resumediff/resumediff/pkg/domain/model"
	"github.com/resumediff/resumediff/pkg/domain/types"
	"github.com/resumediff/resumediff/pkg/extract"
)

const minJDTextLength = 10

// CompareHandler handles resume vs job description comparison requests
type CompareHandler struct {
	compareUC     interfaces.CompareUseCase
	extractor     *extract.Extractor
	maxUploadSize int64
}

// NewCompareHandler creates a new CompareHandler
func NewCompareHandler(compareUC interfaces.CompareUseCase, extractor *extract.Extractor, maxUploadSize int64) *CompareHandler {
	return &CompareHandler{
		compareUC:     compareUC,
		extractor:     extractor,
		maxUploadSize: maxUploadSize,
	}
}

// Handle processes comparison requests. The request is a multipart form with
// a required resume_file and at least one of jd_file / jd_text.
func (h *CompareHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Two files plus form overhead may arrive, so allow twice the per-file
	// limit before rejecting the body outright.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize*2+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(ctx, w, goerr.New("request body too large"), http.StatusRequestEntityTooLarge)
			return
		}
		writeError(ctx, w, goerr.Wrap(err, "invalid multipart form"), http.StatusBadRequest)
		return
	}

	resumeDoc, err := readFormFile(r, "resume_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(ctx, w, goerr.New("resume_file is required"), http.StatusBadRequest)
			return
		}
		writeError(ctx, w, goerr.Wrap(err, "failed to read resume_file"), http.StatusBadRequest)
		return
	}

	jdDoc, err := readFormFile(r, "jd_file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		writeError(ctx, w, goerr.Wrap(err, "failed to read jd_file"), http.StatusBadRequest)
		return
	}
	jdText := strings.TrimSpace(r.FormValue("jd_text"))

	if jdDoc == nil && jdText == "" {
		writeError(ctx, w, goerr.New("at least one of jd_file or jd_text must be provided"), http.StatusBadRequest)
		return
	}

	var warnings []string

	logger.Info("Starting comparison request",
		"resume_filename", resumeDoc.Filename,
		"has_jd_file", jdDoc != nil,
		"has_jd_text", jdText != "",
	)

	resumeText, resumeWarning, err := h.extractor.ExtractText(ctx, resumeDoc)
	if err != nil {
		logger.Error("Resume extraction failed", "error", err)
		writeError(ctx, w, err, statusFromError(err))
		return
	}
	if resumeWarning != "" {
		warnings = append(warnings, resumeWarning)
	}

	jdFinalText, jdWarnings, err := h.resolveJDText(r, jdDoc, jdText)
	if err != nil {
		logger.Error("JD resolution failed", "error", err)
		writeError(ctx, w, err, statusFromError(err))
		return
	}
	warnings = append(warnings, jdWarnings...)

	logger.Info("Texts extracted",
		"jd_chars", len(jdFinalText),
		"resume_chars", len(resumeText),
	)

	result, err := h.compareUC.Compare(ctx, &model.CompareInput{
		JDText:     jdFinalText,
		ResumeText: resumeText,
		Warnings:   warnings,
	})
	if err != nil {
		logger.Error("Comparison failed", "error", err)
		writeError(ctx, w, err, statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error("Failed to encode comparison response", "error", err)
	}
}

// resolveJDText picks the job description source. A file wins over text; if
// the file fails to extract but text was also given, the text is used with a
// warning instead of failing the request.
func (h *CompareHandler) resolveJDText(r *http.Request, jdDoc *model.Document, jdText string) (string, []string, error) {
	ctx := r.Context()
	var warnings []string

	if jdDoc != nil {
		text, warning, err := h.extractor.ExtractText(ctx, jdDoc)
		if err != nil {
			if jdText != "" {
				warnings = append(warnings, "JD file extraction failed, using jd_text instead")
				text = jdText
			} else {
				return "", nil, err
			}
		} else {
			if warning != "" {
				warnings = append(warnings, warning)
			}
			if jdText != "" {
				warnings = append(warnings, "Both jd_file and jd_text provided; using jd_file content")
			}
		}

		if len(strings.TrimSpace(text)) < minJDTextLength {
			return "", nil, goerr.New("job description text is too short or empty", goerr.T(types.ErrTagBadRequest))
		}
		return text, warnings, nil
	}

	if len(jdText) < minJDTextLength {
		return "", nil, goerr.New("jd_text is too short (minimum 10 characters)", goerr.T(types.ErrTagBadRequest))
	}
	return jdText, warnings, nil
}

// readFormFile reads a multipart file into a Document. Returns
// http.ErrMissingFile when the field is absent.
func readFormFile(r *http.Request, field string) (*model.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, http.ErrMissingFile
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read uploaded file", goerr.V("field", field))
	}

	return &model.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// statusFromError maps error tags to HTTP status codes
func statusFromError(err error) int {
	switch {
	case goerr.HasTag(err, types.ErrTagBadRequest):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagTooLarge):
		return http.StatusRequestEntityTooLarge
	case goerr.HasTag(err, types.ErrTagUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
