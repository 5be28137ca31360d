package service

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Handler 构建服务的 HTTP 路由。
//
//	POST /recommendations/train        异步触发训练，立即返回 202
//	GET  /recommendations?user_id=&count=  同步返回推荐列表
//	GET  /healthz                      存活探针
//
// 认证/限流由部署侧的网关负责，不在本服务范围内。
func Handler(r *Recommender, logger zerolog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/recommendations", func(router chi.Router) {
		router.Post("/train", func(w http.ResponseWriter, _ *http.Request) {
			r.StartTrain()
			writeJSON(w, http.StatusAccepted, map[string]string{
				"message": "recommendation model training has been started in the background",
			})
		})

		router.Get("/", func(w http.ResponseWriter, req *http.Request) {
			userID, err := strconv.ParseInt(req.URL.Query().Get("user_id"), 10, 64)
			if err != nil || userID <= 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "user_id is required and must be a positive integer",
				})
				return
			}

			count := 0
			if raw := req.URL.Query().Get("count"); raw != "" {
				count, err = strconv.Atoi(raw)
				if err != nil || count < 0 {
					writeJSON(w, http.StatusBadRequest, map[string]string{
						"error": "count must be a non-negative integer",
					})
					return
				}
			}

			rec, err := r.Recommend(req.Context(), userID, count)
			if err != nil {
				// 基础设施故障：不伪装成"无推荐"
				logger.Error().Err(err).Int64("user_id", userID).Msg("recommendation query failed")
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"error": "internal error",
				})
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})
	})

	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
