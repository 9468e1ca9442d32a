package ingestion

import (
	"github.com/gin-gonic/gin"
	"github.com/tapstand/pours/internal/core/storage"
	"github.com/tapstand/pours/internal/validation"
)

type Service struct {
	store storage.EventStore
	rules *validation.Rules
}

func NewService(store storage.EventStore, rules *validation.Rules) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if rules == nil {
		panic("ingestion: rules must not be nil")
	}
	return &Service{
		store: store,
		rules: rules,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/pours", s.RecordPourHandler)
}
