// Package devserver assembles the development backend: sqlite store,
// extractive model, use cases, handlers and routes on a hertz server.
package devserver

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/network/netpoll"

	"github.com/legalease/lexctl/internal/config"
	"github.com/legalease/lexctl/internal/handler"
	infradb "github.com/legalease/lexctl/internal/infrastructure/database"
	"github.com/legalease/lexctl/internal/infrastructure/extractive"
	"github.com/legalease/lexctl/internal/infrastructure/extractor"
	"github.com/legalease/lexctl/internal/router"
	"github.com/legalease/lexctl/internal/usecase"
	dbpkg "github.com/legalease/lexctl/pkg/database"
)

// Server is a ready-to-run dev backend
type Server struct {
	hertz  *server.Hertz
	db     *sql.DB
	addr   string
	logger *slog.Logger
}

// New wires every component from cfg. The caller owns Run and Shutdown.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := dbpkg.NewClient(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	docRepo := infradb.NewDocumentRepository(db)
	chatRepo := infradb.NewChatRepository(db)
	model := extractive.New(cfg.Summarizer, logger)

	documentUsecase := usecase.NewDocumentUsecase(extractor.New(), model, docRepo, chatRepo, logger)
	chatUsecase := usecase.NewChatUsecase(model, docRepo, chatRepo, logger)

	documentHandler := handler.NewDocumentHandler(documentUsecase)
	chatHandler := handler.NewChatHandler(chatUsecase)
	healthHandler := handler.NewHealthHandler(db)

	logger.Debug("dev backend components initialized")

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithMaxRequestBodySize(cfg.GetMaxRequestBodySize()),
		server.WithTransport(netpoll.NewTransporter),
		server.WithExitWaitTime(0),
	)

	router.Setup(h, logger, documentHandler, chatHandler, healthHandler)

	return &Server{
		hertz:  h,
		db:     db,
		addr:   cfg.GetServerAddr(),
		logger: logger,
	}, nil
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("dev backend listening", "address", s.addr)
	return s.hertz.Run()
}

// Shutdown stops the listener and closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down dev backend")
	if err := s.hertz.Shutdown(ctx); err != nil {
		return err
	}
	return dbpkg.Close(s.db, s.logger)
}
