package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rcm-workflow/internal/model"
	"rcm-workflow/internal/store"
)

// fileUpload adapts an HTTP upload body to the orchestrator's file source.
type fileUpload struct {
	name string
	data []byte
}

func (f fileUpload) Name() string { return f.name }

func (f fileUpload) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(f.data), nil
}

// readUploadFile extracts the uploaded file from either a multipart form
// (field "file") or a raw request body with a filename query parameter.
func readUploadFile(r *http.Request) (fileUpload, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return fileUpload{}, fmt.Errorf("missing multipart field 'file': %w", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return fileUpload{}, err
		}
		return fileUpload{name: header.Filename, data: data}, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fileUpload{}, err
	}
	name := r.URL.Query().Get("filename")
	if name == "" {
		name = "upload.csv"
	}
	return fileUpload{name: name, data: data}, nil
}

// UploadFile ingests one file for a workflow stage
// @Summary Upload a stage file
// @Description Run an uploaded CSV or JSON file through parsing, transformation and shape validation for the given stage
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param stage path string true "Workflow stage ID"
// @Param file formData file true "CSV or JSON file"
// @Success 200 {object} model.UploadOutcome "Upload accepted, records staged"
// @Failure 400 {object} map[string]interface{} "Unknown stage or unreadable request"
// @Failure 422 {object} model.UploadOutcome "Upload rejected"
// @Router /stages/{stage}/uploads [post]
func UploadFile(w http.ResponseWriter, r *http.Request) {
	stage, ok := model.ParseStage(pathSegment(r, 3))
	if !ok {
		http.Error(w, "Unknown stage", http.StatusBadRequest)
		return
	}

	src, err := readUploadFile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome := orch.Ingest(r.Context(), stage, src)
	if err := store.SaveUpload(outcome); err != nil {
		fmt.Printf("❌ Failed to persist upload %s: %v\n", outcome.ID, err)
	}

	if outcome.Accepted() {
		writeJSON(w, http.StatusOK, outcome)
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, outcome)
}

// ListUploads retrieves recent uploads
// @Summary List uploads
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{} "Recent uploads, newest first"
// @Router /uploads [get]
func ListUploads(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	uploads, err := store.ListUploads(limit)
	if err != nil {
		http.Error(w, "Failed to fetch uploads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uploads": uploads,
		"count":   len(uploads),
		"limit":   limit,
	})
}

// GetUpload retrieves one upload outcome
// @Summary Get upload
// @Description Retrieve the stored outcome of one upload, including its staged records
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} model.UploadOutcome "Upload outcome"
// @Failure 404 {object} map[string]interface{} "Upload not found"
// @Router /uploads/{id} [get]
func GetUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := pathSegment(r, 3)
	if uploadID == "" {
		http.Error(w, "Upload ID is required", http.StatusBadRequest)
		return
	}

	outcome, err := store.GetUpload(uploadID)
	if err != nil {
		http.Error(w, "Upload not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// SubmitUpload submits an accepted upload's staged records to the backend
// @Summary Submit upload
// @Description Post the staged records of an accepted upload to the stage processing endpoint. Only accepted uploads can be submitted.
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} model.SubmissionResult "Submission response"
// @Failure 404 {object} map[string]interface{} "Upload not found"
// @Failure 409 {object} map[string]interface{} "Upload was not accepted"
// @Failure 502 {object} model.SubmissionResult "Backend unreachable"
// @Router /uploads/{id}/submit [post]
func SubmitUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := pathSegment(r, 3)
	if uploadID == "" {
		http.Error(w, "Upload ID is required", http.StatusBadRequest)
		return
	}

	outcome, err := store.GetUpload(uploadID)
	if err != nil {
		http.Error(w, "Upload not found", http.StatusNotFound)
		return
	}
	if !outcome.Accepted() {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"message": "Only accepted uploads can be submitted",
			"status":  outcome.Status,
			"reason":  outcome.Reason,
		})
		return
	}

	result, err := backend.Submit(r.Context(), outcome.Stage, outcome.Records)
	if err != nil {
		result = &model.SubmissionResult{
			UploadID:    uploadID,
			Stage:       outcome.Stage,
			Error:       err.Error(),
			SubmittedAt: time.Now().UTC(),
		}
		if saveErr := store.SaveSubmission(*result); saveErr != nil {
			fmt.Printf("❌ Failed to persist submission for %s: %v\n", uploadID, saveErr)
		}
		writeJSON(w, http.StatusBadGateway, result)
		return
	}

	result.UploadID = uploadID
	if err := store.SaveSubmission(*result); err != nil {
		fmt.Printf("❌ Failed to persist submission for %s: %v\n", uploadID, err)
	}

	fmt.Printf("📤 Upload %s submitted to %s: HTTP %d\n", uploadID, outcome.Stage, result.StatusCode)
	writeJSON(w, http.StatusOK, result)
}

// GET /api/v1/uploads/{id}/submissions
func GetUploadSubmissions(w http.ResponseWriter, r *http.Request) {
	uploadID := pathSegment(r, 3)
	if uploadID == "" {
		http.Error(w, "Upload ID is required", http.StatusBadRequest)
		return
	}

	submissions, err := store.GetSubmissions(uploadID)
	if err != nil {
		http.Error(w, "Failed to retrieve submissions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"upload_id":   uploadID,
		"submissions": submissions,
		"count":       len(submissions),
	})
}
