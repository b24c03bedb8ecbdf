package rendering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventops/backend/internal/domain/rendering"
)

// fakeRenderer is a scripted strategy for fallback tests
type fakeRenderer struct {
	name   string
	result *RenderResult
	err    error
	calls  int
	closed bool
	onCall func()
}

func (f *fakeRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

func (f *fakeRenderer) Name() string { return f.name }

func testRequest() *RenderRequest {
	return &RenderRequest{
		HTML:      "<html><body>doc</body></html>",
		PaperSize: rendering.PaperSizeA4,
		Margins:   rendering.DefaultMargins(),
	}
}

func TestFallbackRenderer(t *testing.T) {
	t.Run("returns the first successful result", func(t *testing.T) {
		ok := &fakeRenderer{name: "managed", result: &RenderResult{PDFData: []byte("%PDF"), PageCount: 1}}
		second := &fakeRenderer{name: "local", result: &RenderResult{PDFData: []byte("other")}}

		f, err := NewFallbackRenderer(zap.NewNop(), ok, second)
		require.NoError(t, err)

		result, err := f.Render(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF"), result.PDFData)
		assert.Equal(t, 1, ok.calls)
		assert.Equal(t, 0, second.calls, "later strategies must not run after a success")
	})

	t.Run("falls through failures in order", func(t *testing.T) {
		first := &fakeRenderer{name: "managed", err: NewRenderError(ErrCodeBinaryNotFound, "no binary", nil)}
		second := &fakeRenderer{name: "local", err: NewRenderError(ErrCodeRenderFailed, "crashed", nil)}
		third := &fakeRenderer{name: "minimal", result: &RenderResult{PDFData: []byte("%PDF")}}

		f, err := NewFallbackRenderer(zap.NewNop(), first, second, third)
		require.NoError(t, err)

		result, err := f.Render(context.Background(), testRequest())
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 1, second.calls)
		assert.Equal(t, 1, third.calls)
	})

	t.Run("exhaustion wraps the last error", func(t *testing.T) {
		lastCause := errors.New("tab crashed")
		first := &fakeRenderer{name: "managed", err: NewRenderError(ErrCodeBinaryNotFound, "no binary", nil)}
		second := &fakeRenderer{name: "minimal", err: NewRenderError(ErrCodeRenderFailed, "render failed", lastCause)}

		f, err := NewFallbackRenderer(zap.NewNop(), first, second)
		require.NoError(t, err)

		_, err = f.Render(context.Background(), testRequest())
		require.Error(t, err)

		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, ErrCodeStrategyExhausted, rerr.Code)
		assert.ErrorIs(t, err, lastCause)
	})

	t.Run("cancelled context stops the chain", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		first := &fakeRenderer{
			name:   "managed",
			err:    NewRenderError(ErrCodeRenderFailed, "boom", nil),
			onCall: func() { cancel() },
		}
		second := &fakeRenderer{name: "local", result: &RenderResult{PDFData: []byte("%PDF")}}

		f, err := NewFallbackRenderer(zap.NewNop(), first, second)
		require.NoError(t, err)

		_, err = f.Render(ctx, testRequest())
		require.Error(t, err)
		assert.Equal(t, 0, second.calls, "no further strategies after cancellation")
	})

	t.Run("requires at least one strategy", func(t *testing.T) {
		_, err := NewFallbackRenderer(zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("close propagates to every strategy", func(t *testing.T) {
		first := &fakeRenderer{name: "a"}
		second := &fakeRenderer{name: "b"}
		f, err := NewFallbackRenderer(zap.NewNop(), first, second)
		require.NoError(t, err)

		require.NoError(t, f.Close())
		assert.True(t, first.closed)
		assert.True(t, second.closed)
	})
}

func TestChromeRendererValidation(t *testing.T) {
	r, err := NewLocalChromeRenderer(&ChromeConfig{DefaultTimeout: time.Second})
	require.NoError(t, err)
	defer r.Close()

	t.Run("rejects nil request", func(t *testing.T) {
		_, err := r.Render(context.Background(), nil)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, ErrCodeInvalidHTML, rerr.Code)
	})

	t.Run("rejects empty HTML", func(t *testing.T) {
		req := testRequest()
		req.HTML = "   "
		_, err := r.Render(context.Background(), req)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, ErrCodeInvalidHTML, rerr.Code)
	})

	t.Run("rejects unknown paper size", func(t *testing.T) {
		req := testRequest()
		req.PaperSize = "B5"
		_, err := r.Render(context.Background(), req)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, ErrCodeInvalidPaperSize, rerr.Code)
	})
}

func TestNewManagedChromeRenderer(t *testing.T) {
	t.Run("missing binary fails fast", func(t *testing.T) {
		_, err := NewManagedChromeRenderer("/nonexistent/chromium", nil)
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, ErrCodeBinaryNotFound, rerr.Code)
	})
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("%PDF /Type /Pages /Type /Page /Type /Page /Type /Page")
	assert.Equal(t, 3, estimatePageCount(pdf))

	assert.Equal(t, 1, estimatePageCount([]byte("%PDF")))
}

func TestMMToInches(t *testing.T) {
	assert.InDelta(t, 8.27, mmToInches(210), 0.01)
	assert.InDelta(t, 11.69, mmToInches(297), 0.01)
	assert.InDelta(t, 0.394, mmToInches(10), 0.001)
}
