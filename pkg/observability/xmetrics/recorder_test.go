package xmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nilRecorder struct{}

func (nilRecorder) Start(context.Context, Run) (context.Context, RunSpan) {
	//nolint:staticcheck // 模拟返回 nil ctx 的实现
	return nil, nil
}

func TestStart(t *testing.T) {
	//nolint:staticcheck // 验证 nil ctx 归一化
	ctx, span := Start(nil, nil, Run{})
	assert.NotNil(t, ctx)
	assert.Equal(t, NoopSpan{}, span)

	ctx, span = Start(context.Background(), nilRecorder{}, Run{})
	assert.NotNil(t, ctx)
	assert.Equal(t, NoopSpan{}, span)

	ctx, span = Start(context.Background(), NoopRecorder{}, Run{Method: "hash"})
	assert.NotNil(t, ctx)
	span.Observe("", true)
	span.End(nil)
}

func TestNoopRecorder(t *testing.T) {
	//nolint:staticcheck // 验证 nil ctx 归一化
	ctx, span := NoopRecorder{}.Start(nil, Run{})
	assert.Equal(t, context.Background(), ctx)
	assert.Equal(t, NoopSpan{}, span)
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, StatusOK, resolveStatus(nil))
	assert.Equal(t, StatusError, resolveStatus(context.Canceled))
}
