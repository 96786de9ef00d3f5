package files

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/radif/mediadrop/internal/logger"
	"github.com/radif/mediadrop/internal/response"
	"github.com/radif/mediadrop/internal/storage"
)

const (
	// multipartOverhead is allowed on top of the file cap for boundaries and form fields.
	multipartOverhead = 1 << 20
	// multipartMemory is how much of a form is kept in memory before spilling to disk.
	multipartMemory = 32 << 20
)

// Handler holds HTTP handlers for the file endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new files Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type listBody struct {
	Files []FileItem `json:"files"`
	Count int        `json:"count" example:"1"`
}

type uploadBody struct {
	Success bool                  `json:"success" example:"true"`
	File    *storage.UploadedFile `json:"file"`
}

type quotaBody struct {
	Error     string `json:"error"     example:"Not enough space. 1.0 MiB remaining, file is 2.0 MiB"`
	Remaining int64  `json:"remaining" example:"1048576"`
	Size      int64  `json:"size"      example:"2097152"`
}

// List godoc
//
//	@Summary		List files
//	@Description	Every file in the bucket, newest first, with media classification. Entries whose metadata lookup fails are omitted.
//	@Tags			files
//	@Produce		json
//	@Param			prefix	query		string	false	"Only keys starting with this prefix"
//	@Success		200		{object}	listBody
//	@Failure		401		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Security		SessionCookie
//	@Router			/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		logger.Error().Err(err).Msg("failed to list files")
		response.InternalError(w, "Failed to list files")
		return
	}
	response.OK(w, listBody{Files: items, Count: len(items)})
}

// Get godoc
//
//	@Summary		File metadata
//	@Description	Metadata for a single key. The key must be URL-encoded.
//	@Tags			files
//	@Produce		json
//	@Param			key	path		string	true	"Object key"
//	@Success		200	{object}	FileItem
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Security		SessionCookie
//	@Router			/files/{key} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	key, ok := keyParam(w, r)
	if !ok {
		return
	}

	item, found, err := h.svc.Get(r.Context(), key)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to get file metadata")
		response.InternalError(w, "Failed to get file")
		return
	}
	if !found {
		response.NotFound(w, "File not found")
		return
	}
	response.OK(w, item)
}

// Delete godoc
//
//	@Summary		Delete file
//	@Description	Remove a file after confirming it exists.
//	@Tags			files
//	@Produce		json
//	@Param			key	path		string	true	"Object key"
//	@Success		200	{object}	response.SuccessBody
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Security		SessionCookie
//	@Router			/files/{key} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	key, ok := keyParam(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(r.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		response.NotFound(w, "File not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("delete failed")
		response.InternalError(w, "Failed to delete file")
		return
	}
	response.Success(w, fmt.Sprintf("Deleted %q", key))
}

// Upload godoc
//
//	@Summary		Upload file
//	@Description	Store a file under a generated key. Rejected with 413 when the bucket limit would be exceeded.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"File to upload"
//	@Param			customName	formData	string	false	"Display name used for the key"
//	@Success		200			{object}	uploadBody
//	@Failure		400			{object}	response.ErrorBody
//	@Failure		401			{object}	response.ErrorBody
//	@Failure		413			{object}	quotaBody
//	@Failure		500			{object}	response.ErrorBody
//	@Security		SessionCookie
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	maxUpload := h.svc.MaxUpload()
	tooLarge := fmt.Sprintf("File too large. Maximum size is %s", humanize.IBytes(uint64(maxUpload)))

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			response.BadRequest(w, tooLarge)
			return
		}
		response.BadRequest(w, "Invalid multipart body")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.Warn().Err(err).Msg("failed to remove multipart temp files")
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUpload {
		response.BadRequest(w, tooLarge)
		return
	}

	body, err := io.ReadAll(file)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read uploaded file")
		response.InternalError(w, "Failed to upload file")
		return
	}

	res, err := h.svc.Upload(r.Context(), UploadRequest{
		Filename:    header.Filename,
		CustomName:  r.FormValue("customName"),
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	})

	var (
		tooLargeErr *FileTooLargeError
		quotaErr    *QuotaError
	)
	switch {
	case err == nil:
		response.OK(w, uploadBody{Success: true, File: res})
	case errors.As(err, &tooLargeErr):
		response.BadRequest(w, tooLarge)
	case errors.Is(err, ErrEmptyFile):
		response.BadRequest(w, "File is empty")
	case errors.As(err, &quotaErr):
		response.JSON(w, http.StatusRequestEntityTooLarge, quotaBody{
			Error: fmt.Sprintf("Not enough space. %s remaining, file is %s",
				humanize.IBytes(uint64(quotaErr.Remaining())), humanize.IBytes(uint64(quotaErr.Size))),
			Remaining: quotaErr.Remaining(),
			Size:      quotaErr.Size,
		})
	default:
		logger.Error().Err(err).Msg("upload failed")
		response.InternalError(w, "Failed to upload file")
	}
}

// Usage godoc
//
//	@Summary		Storage usage
//	@Description	Bytes used by all files against the configured bucket limit.
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	Usage
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Security		SessionCookie
//	@Router			/usage [get]
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.svc.Usage(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute usage")
		response.InternalError(w, "Failed to compute usage")
		return
	}
	response.OK(w, usage)
}

// keyParam extracts the object key from the wildcard route segment. Keys may
// contain "/". chi matches on RawPath when the request has one, and only
// then is the segment still escaped.
func keyParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "*")
	var err error
	if r.URL.RawPath != "" {
		key, err = url.PathUnescape(key)
	}
	if err != nil || key == "" {
		response.BadRequest(w, "Invalid file key")
		return "", false
	}
	return key, true
}
