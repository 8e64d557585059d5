package handler

import (
	"io"
	"net/http"

	"github.com/habitus/forecast-api/internal/usecases/extracting"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
)

// folga para os demais campos do formulário multipart
const multipartOverhead = 1 << 20

// UploadSpreadsheet recebe o arquivo no campo "file" com "title" e "description" opcionais
func UploadSpreadsheet(service extracting.Extracting, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		if maxSize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrSpreadsheetTooLarge, extracting.ErrFileTooLarge.Error(), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o arquivo enviado", nil)
			return
		}

		data, err := service.Upload(r.Context(), claims, extracting.UploadRequest{
			FileName:    header.Filename,
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Content:     content,
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao processar planilha")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"financial_data_id": data.ID,
			"user_id":           claims.UserID,
		}).Info("handler: planilha processada")

		writeJSON(w, http.StatusCreated, data)
	}
}

func ListFinancialData(service extracting.Extracting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		limit, offset, err := pagination(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		list, err := service.List(r.Context(), claims, limit, offset)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar dados financeiros")
			return
		}

		// a listagem não carrega as tabelas
		for _, item := range list {
			item.Dataset = nil
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func GetFinancialData(service extracting.Extracting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		data, err := service.Get(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar dados financeiros")
			return
		}

		writeJSON(w, http.StatusOK, data)
	}
}

func DeleteFinancialData(service extracting.Extracting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if err := service.Delete(r.Context(), claims, id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover dados financeiros")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetTrends(service extracting.Extracting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		report, err := service.Trends(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao analisar tendências")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func ExportFinancialData(service extracting.Extracting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		content, fileName, err := service.Export(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar dados financeiros")
			return
		}

		writeFile(w, fileName, content)
	}
}

func ListCategories(service extracting.Extracting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Categories())
	}
}
