package api

import "SMMBoard/internal/api/handler"

// HandlersGroup all initialized handlers
type HandlersGroup struct {
	AccountHandler *handler.AccountHandler
	PostHandler    *handler.PostHandler
	IngestHandler  *handler.IngestHandler
	SysBoxHandler  *handler.SysBoxHandler
}
