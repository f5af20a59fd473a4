package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/stigbase/saver/pkg/domain/interfaces"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
	"github.com/stigbase/saver/pkg/utils/errutil"
	"github.com/stigbase/saver/pkg/utils/logging"
	"github.com/stigbase/saver/pkg/utils/safe"
)

// maxUploadSize bounds in-memory parsing of multipart uploads (32 MiB).
const maxUploadSize = 32 << 20

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte("internal server error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, raw)
}

// handleError maps the coordinator's error taxonomy onto status codes.
// Store and publish internals never reach the response body.
func handleError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		safeWrite(w, http.StatusNotFound, []byte("not found"))
	case errors.Is(err, repository.ErrInvalidInput):
		safeWrite(w, http.StatusBadRequest, []byte(err.Error()))
	default:
		errutil.HandleError(r.Context(), msg, err)
		safeWrite(w, http.StatusInternalServerError, []byte("internal server error"))
	}
}

func New(uc interfaces.UseCase) *Server {
	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/system", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			createSystemGroup(uc, w, req)
		})
		r.Put("/{systemGroupId}", func(w http.ResponseWriter, req *http.Request) {
			updateSystemGroup(uc, w, req)
		})
		r.Delete("/{systemGroupId}", func(w http.ResponseWriter, req *http.Request) {
			deleteSystemGroup(uc, w, req)
		})
		r.Delete("/{systemGroupId}/artifacts", func(w http.ResponseWriter, req *http.Request) {
			deleteSystemChecklists(uc, w, req)
		})
	})

	r.Route("/artifact", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			createArtifact(uc, w, req)
		})
		r.Put("/{systemGroupId}/{artifactId}", func(w http.ResponseWriter, req *http.Request) {
			updateArtifactAsset(uc, w, req)
		})
		r.Delete("/{artifactId}", func(w http.ResponseWriter, req *http.Request) {
			deleteArtifact(uc, w, req)
		})
	})

	r.Get("/artifacts", func(w http.ResponseWriter, req *http.Request) {
		findArtifacts(uc, w, req)
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

type systemGroupResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	NessusFilename string    `json:"nessusFilename,omitempty"`
	Created        time.Time `json:"created"`
	UpdatedOn      time.Time `json:"updatedOn"`
}

type artifactResponse struct {
	ID            string    `json:"id"`
	SystemGroupID string    `json:"systemGroupId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	HostName      string    `json:"hostName"`
	Created       time.Time `json:"created"`
	UpdatedOn     time.Time `json:"updatedOn"`
}

func toSystemGroupResponse(group *model.SystemGroup) systemGroupResponse {
	return systemGroupResponse{
		ID:             string(group.ID),
		Title:          group.Title,
		Description:    group.Description,
		NessusFilename: group.NessusFilename,
		Created:        group.Created,
		UpdatedOn:      group.UpdatedOn,
	}
}

func toArtifactResponse(artifact *model.Artifact) artifactResponse {
	return artifactResponse{
		ID:            string(artifact.ID),
		SystemGroupID: string(artifact.SystemGroupID),
		Title:         artifact.Title,
		Description:   artifact.Description,
		HostName:      artifact.HostName,
		Created:       artifact.Created,
		UpdatedOn:     artifact.UpdatedOn,
	}
}

// readUpload returns the content and filename of an optional multipart file
// field. An absent field is not an error.
func readUpload(r *http.Request, field string) (string, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", "", nil
		}
		return "", "", err
	}
	defer safe.Close(file)

	raw, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}
	return string(raw), header.Filename, nil
}

func createSystemGroup(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		safeWrite(w, http.StatusBadRequest, []byte("malformed form data"))
		return
	}

	nessus, filename, err := readUpload(r, "nessusFile")
	if err != nil {
		safeWrite(w, http.StatusBadRequest, []byte("malformed file upload"))
		return
	}

	group, err := uc.CreateSystemGroup(r.Context(), &model.CreateSystemGroupInput{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		NessusFilename: filename,
		RawNessusFile:  nessus,
		Caller:         callerFromRequest(r),
	})
	if err != nil {
		handleError(w, r, "fail to create system group", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSystemGroupResponse(group))
}

func updateSystemGroup(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		safeWrite(w, http.StatusBadRequest, []byte("malformed form data"))
		return
	}

	nessus, filename, err := readUpload(r, "nessusFile")
	if err != nil {
		safeWrite(w, http.StatusBadRequest, []byte("malformed file upload"))
		return
	}

	group, err := uc.UpdateSystemGroup(r.Context(), &model.UpdateSystemGroupInput{
		ID:             types.SystemGroupID(chi.URLParam(r, "systemGroupId")),
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		NessusFilename: filename,
		RawNessusFile:  nessus,
		Caller:         callerFromRequest(r),
	})
	if err != nil {
		handleError(w, r, "fail to update system group", err)
		return
	}

	writeJSON(w, http.StatusOK, toSystemGroupResponse(group))
}

func deleteSystemGroup(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	id := types.SystemGroupID(chi.URLParam(r, "systemGroupId"))

	if err := uc.DeleteSystemGroup(r.Context(), id, callerFromRequest(r)); err != nil {
		handleError(w, r, "fail to delete system group", err)
		return
	}

	safeWrite(w, http.StatusOK, []byte("ok"))
}

func deleteSystemChecklists(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	id := types.SystemGroupID(chi.URLParam(r, "systemGroupId"))

	var artifactIDs []types.ArtifactID
	for _, raw := range strings.Split(r.FormValue("checklistIds"), ",") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			artifactIDs = append(artifactIDs, types.ArtifactID(trimmed))
		}
	}

	if err := uc.DeleteSystemChecklists(r.Context(), id, artifactIDs, callerFromRequest(r)); err != nil {
		handleError(w, r, "fail to delete system checklists", err)
		return
	}

	safeWrite(w, http.StatusOK, []byte("ok"))
}

func createArtifact(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		safeWrite(w, http.StatusBadRequest, []byte("malformed form data"))
		return
	}

	raw, filename, err := readUpload(r, "checklistFile")
	if err != nil {
		safeWrite(w, http.StatusBadRequest, []byte("malformed file upload"))
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = filename
	}

	artifact, err := uc.CreateArtifact(r.Context(), &model.CreateArtifactInput{
		SystemGroupID: types.SystemGroupID(r.FormValue("systemGroupId")),
		Title:         title,
		Description:   r.FormValue("description"),
		HostName:      r.FormValue("hostname"),
		RawChecklist:  raw,
		Caller:        callerFromRequest(r),
	})
	if err != nil {
		handleError(w, r, "fail to create artifact", err)
		return
	}

	writeJSON(w, http.StatusCreated, toArtifactResponse(artifact))
}

func updateArtifactAsset(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	artifact, err := uc.UpdateArtifactAsset(r.Context(), &model.UpdateArtifactAssetInput{
		SystemGroupID: types.SystemGroupID(chi.URLParam(r, "systemGroupId")),
		ArtifactID:    types.ArtifactID(chi.URLParam(r, "artifactId")),
		HostName:      r.FormValue("hostname"),
		DomainName:    r.FormValue("domainname"),
		TechArea:      r.FormValue("techarea"),
		AssetType:     r.FormValue("assettype"),
		Role:          r.FormValue("machinerole"),
		Caller:        callerFromRequest(r),
	})
	if err != nil {
		handleError(w, r, "fail to update artifact asset", err)
		return
	}

	writeJSON(w, http.StatusOK, toArtifactResponse(artifact))
}

func deleteArtifact(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	id := types.ArtifactID(chi.URLParam(r, "artifactId"))

	if err := uc.DeleteArtifact(r.Context(), id, callerFromRequest(r)); err != nil {
		handleError(w, r, "fail to delete artifact", err)
		return
	}

	safeWrite(w, http.StatusOK, []byte("ok"))
}

func findArtifacts(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			safeWrite(w, http.StatusBadRequest, []byte("since must be RFC3339"))
			return
		}
		since = parsed
	}

	artifacts, err := uc.FindArtifacts(r.Context(), r.URL.Query().Get("title"), since)
	if err != nil {
		handleError(w, r, "fail to find artifacts", err)
		return
	}

	resp := make([]artifactResponse, 0, len(artifacts))
	for _, artifact := range artifacts {
		resp = append(resp, toArtifactResponse(artifact))
	}
	writeJSON(w, http.StatusOK, resp)
}
