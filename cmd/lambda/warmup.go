package main

// Scheduled warmup events keep Lambda instances hot and double as a
// connectivity probe against the translation service.

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies warmup events from CloudWatch
	WarmupSource = "warmup"

	// WarmupDelay ensures instances overlap to create true concurrency
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent represents the CloudWatch Event payload for warmup
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
	// Child marks events sent by selfInvoke; they skip the connectivity
	// probe, which the parent already runs.
	Child bool `json:"child,omitempty"`
}

// WarmupResponse is the response returned by warmup operations
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
	Online          *bool  `json:"online,omitempty"` // nil when not probed
}

// Prober checks that the translation service answers.
type Prober interface {
	CheckConnectivity(ctx context.Context, targetLang string) bool
}

// Invoker is the part of the Lambda API client used for self-invocation.
type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// IsWarmupEvent checks if the event is a warmup event
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var eventMap map[string]interface{}
	if err := json.Unmarshal(event, &eventMap); err != nil {
		return nil, false
	}

	source, ok := eventMap["source"].(string)
	if !ok || source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: source}
	if concurrency, ok := eventMap["concurrency"].(float64); ok {
		warmup.Concurrency = int(concurrency)
	}
	if child, ok := eventMap["child"].(bool); ok {
		warmup.Child = child
	}

	return warmup, true
}

// handleWarmup processes a warmup event, optionally self-invokes to keep
// several instances warm, and probes the translation service.
func (a *app) handleWarmup(ctx context.Context, warmup *WarmupEvent) (interface{}, error) {
	instancesWarmed := 1 // This instance counts as 1

	if warmup.Concurrency > 0 {
		if err := a.selfInvoke(ctx, warmup.Concurrency); err == nil {
			instancesWarmed += warmup.Concurrency
		} else {
			a.log.WarnContext(ctx, "warmup self-invoke failed", slog.String("error", err.Error()))
		}
	}

	var online *bool
	if !warmup.Child {
		ok := a.prober.CheckConnectivity(ctx, a.target)
		online = &ok
	}

	// Brief delay to ensure instances overlap
	time.Sleep(WarmupDelay)

	attrs := []any{slog.Int("instances", instancesWarmed), slog.Bool("child", warmup.Child)}
	if online != nil {
		attrs = append(attrs, slog.Bool("online", *online))
	}
	a.log.InfoContext(ctx, "warmup", attrs...)

	return map[string]interface{}{
		"statusCode": 200,
		"body": WarmupResponse{
			Status:          "warm",
			InstancesWarmed: instancesWarmed,
			Online:          online,
		},
	}, nil
}

// selfInvoke invokes this Lambda function N times asynchronously
// to create additional warm instances.
func (a *app) selfInvoke(ctx context.Context, count int) error {
	if a.invoker == nil {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		a.invoker = lambdasdk.NewFromConfig(cfg)
	}
	fn := aws.String(os.Getenv("AWS_LAMBDA_FUNCTION_NAME"))

	// Children carry no concurrency so they never fan out again.
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource, Child: true})
	if err != nil {
		return err
	}

	var g errgroup.Group
	for range count {
		g.Go(func() error {
			_, err := a.invoker.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   fn,
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}
