// Warmup handling: CloudWatch Events invoke the function periodically with a
// {"source":"warmup"} payload so instances stay warm between voice sessions.
package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

const (
	warmupSource = "warmup"

	// warmupDelay keeps sibling invocations overlapping long enough that the
	// platform allocates distinct instances.
	warmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the CloudWatch Events payload for a warmup tick.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse reports how many instances this tick touched.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// invokeAPI is the minimal Lambda interface required by Warmer.
// *lambdasdk.Client from aws-sdk-go-v2 satisfies this interface.
type invokeAPI interface {
	Invoke(ctx context.Context, in *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

// Warmer keeps this instance warm and fans out to additional instances when
// a tick requests concurrency. The Lambda client is built once at startup.
type Warmer struct {
	api          invokeAPI
	functionName string
}

func NewWarmer(api invokeAPI, functionName string) *Warmer {
	return &Warmer{api: api, functionName: functionName}
}

// IsWarmupEvent reports whether the raw event is a warmup tick rather than a
// skill request.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var warmup WarmupEvent
	if err := json.Unmarshal(event, &warmup); err != nil {
		return nil, false
	}
	if warmup.Source != warmupSource {
		return nil, false
	}
	return &warmup, true
}

// Handle processes a warmup tick. A fan-out failure is not an error: this
// instance is warm regardless, so the response just reports a lower count.
func (w *Warmer) Handle(ctx context.Context, warmup *WarmupEvent) (WarmupResponse, error) {
	warmed := 1

	if warmup.Concurrency > 0 {
		if err := w.fanOut(ctx, warmup.Concurrency); err == nil {
			warmed += warmup.Concurrency
		}
	}

	time.Sleep(warmupDelay)

	return WarmupResponse{Status: "warm", InstancesWarmed: warmed}, nil
}

// fanOut fires count async self-invocations. Child payloads carry
// concurrency zero so they cannot recurse.
func (w *Warmer) fanOut(ctx context.Context, count int) error {
	payload, err := json.Marshal(WarmupEvent{Source: warmupSource})
	if err != nil {
		return err
	}

	errs := make(chan error, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := w.api.Invoke(ctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
