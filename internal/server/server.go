// Package server serves a rendered comment document for local preview.
package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"thirdcoast.systems/threadr/internal/pipeline"
)

type Webserver struct {
	*echo.Echo
	result *pipeline.Result
}

// NewWebserver serves res, which must already be rendered.
func NewWebserver(res *pipeline.Result) *Webserver {
	s := &Webserver{Echo: echo.New(), result: res}
	s.setupMiddleware()
	s.registerRoutes()
	return s
}

func (s *Webserver) setupMiddleware() {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))
}

func (s *Webserver) registerRoutes() {
	s.GET("/", s.handleDocument)
	s.GET("/comments.json", s.handleForest)
	s.GET("/report.json", s.handleReport)
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

func (s *Webserver) handleDocument(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, s.result.HTML)
}

func (s *Webserver) handleForest(c echo.Context) error {
	return c.JSON(http.StatusOK, s.result.Forest)
}

func (s *Webserver) handleReport(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"video_id": s.result.Meta.VideoID,
		"title":    s.result.Meta.Title,
		"decode":   s.result.Decode,
		"build":    s.result.Build,
	})
}
