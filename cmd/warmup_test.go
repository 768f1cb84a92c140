package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	mu    sync.Mutex
	err   error
	calls int
	gotIn []*lambdasdk.InvokeInput
}

func (f *fakeInvoker) Invoke(_ context.Context, in *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotIn = append(f.gotIn, in)
	if f.err != nil {
		return nil, f.err
	}
	return &lambdasdk.InvokeOutput{}, nil
}

func TestIsWarmupEvent(t *testing.T) {
	warmup, ok := IsWarmupEvent(json.RawMessage(`{"source":"warmup","concurrency":2}`))
	require.True(t, ok)
	require.Equal(t, 2, warmup.Concurrency)

	_, ok = IsWarmupEvent(json.RawMessage(`{"session":{},"request":{"type":"LaunchRequest"}}`))
	require.False(t, ok)

	_, ok = IsWarmupEvent(json.RawMessage(`not-json`))
	require.False(t, ok)
}

func TestWarmerHandle_NoConcurrency(t *testing.T) {
	api := &fakeInvoker{}
	w := NewWarmer(api, "project-translate")

	resp, err := w.Handle(context.Background(), &WarmupEvent{Source: warmupSource})
	require.NoError(t, err)
	require.Equal(t, "warm", resp.Status)
	require.Equal(t, 1, resp.InstancesWarmed)
	require.Zero(t, api.calls)
}

func TestWarmerHandle_FanOut(t *testing.T) {
	api := &fakeInvoker{}
	w := NewWarmer(api, "project-translate")

	resp, err := w.Handle(context.Background(), &WarmupEvent{Source: warmupSource, Concurrency: 3})
	require.NoError(t, err)
	require.Equal(t, 4, resp.InstancesWarmed)
	require.Equal(t, 3, api.calls)

	for _, in := range api.gotIn {
		require.Equal(t, "project-translate", *in.FunctionName)
		require.Equal(t, types.InvocationTypeEvent, in.InvocationType)

		// Child ticks must not fan out again.
		var child WarmupEvent
		require.NoError(t, json.Unmarshal(in.Payload, &child))
		require.Equal(t, warmupSource, child.Source)
		require.Zero(t, child.Concurrency)
	}
}

func TestWarmerHandle_FanOutFailureStillWarm(t *testing.T) {
	api := &fakeInvoker{err: errors.New("invoke denied")}
	w := NewWarmer(api, "project-translate")

	resp, err := w.Handle(context.Background(), &WarmupEvent{Source: warmupSource, Concurrency: 2})
	require.NoError(t, err)
	require.Equal(t, 1, resp.InstancesWarmed)
	require.Equal(t, 2, api.calls)
}
