package main

import (
	"context"

	"table-ops-api/internal/config"
	"table-ops-api/internal/dispatch"
	"table-ops-api/pkg/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(context.Background(), cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

// handler is the Lambda entrypoint: one request envelope in, one result or
// failed invocation out. The gateway is configured with a non-proxy
// integration, so the invocation event is the envelope itself.
func handler(ctx context.Context, env dispatch.Envelope) (dispatch.Result, error) {
	return container.Dispatcher.Dispatch(ctx, &env)
}

func main() {
	awslambda.Start(handler)
}
