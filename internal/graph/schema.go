package graph

import (
	"context"
	_ "embed"
	"fmt"

	"graphblog/internal/logger"
	"graphblog/internal/service"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

const maxQueryDepth = 10

// NewSchema parses the API schema and binds it to the resolvers.
func NewSchema(svc *service.Service, log *logger.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, NewResolver(svc, log),
		graphql.Logger(&panicLogger{log: log}),
		graphql.MaxDepth(maxQueryDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора схемы GraphQL: %w", err)
	}

	return schema, nil
}

type panicLogger struct {
	log *logger.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.log.Errorw("Паника в резолвере GraphQL", "panic", value)
}
