package pipeline

import (
	"context"
	"io"
	"strings"

	"fashion-chatbot-be/internal/constant"
	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/pkg/llm"
	"fashion-chatbot-be/pkg/rag/prompt"
)

// Stream is a single-pass fragment stream over one chat turn. Recv returns
// io.EOF after the final fragment; persistence and cache writes run exactly
// once, on clean completion only, so an aborted stream leaves no history.
type Stream struct {
	Intent   string
	Products []dto.ProductSummary

	recv       func() (string, error)
	closeFn    func()
	onComplete func(full string)
	buf        strings.Builder
	finished   bool
}

// Recv returns the next answer fragment.
func (s *Stream) Recv() (string, error) {
	frag, err := s.recv()
	if err == nil {
		s.buf.WriteString(frag)
		return frag, nil
	}
	if err == io.EOF && !s.finished {
		s.finished = true
		if s.onComplete != nil {
			s.onComplete(s.buf.String())
		}
	}
	return "", err
}

// Close releases the stream. Closing before io.EOF cancels the underlying
// generation and skips the completion hook.
func (s *Stream) Close() {
	s.finished = true
	if s.closeFn != nil {
		s.closeFn()
	}
}

// AskStream runs a chat turn and returns the answer incrementally. Intent and
// product candidates are resolved up front so the caller can emit them before
// the first fragment.
func (p *Pipeline) AskStream(ctx context.Context, sessionID int64, query string) (*Stream, error) {
	reflected, _ := p.reflector.Reflect(ctx, sessionID, query)
	route, _ := p.router.Guide(reflected)

	// The request context dies with the response writer; completion hooks
	// must outlive it to persist the finished turn.
	hookCtx := context.WithoutCancel(ctx)

	if route == constant.IntentChitchat {
		src, err := p.llmProvider.ChatStream(ctx, []llm.Message{
			{Role: "user", Content: prompt.ForChitchat(reflected)},
		})
		if err != nil {
			return nil, err
		}
		return &Stream{
			Intent:   route,
			Products: []dto.ProductSummary{},
			recv:     src.Recv,
			closeFn:  src.Close,
			onComplete: func(full string) {
				p.persistTurn(hookCtx, sessionID, query, full)
			},
		}, nil
	}

	if cached, hit := p.cache.Search(ctx, reflected); hit {
		p.logger.Info("Pipeline", "Semantic cache hit", map[string]interface{}{
			"session_id": sessionID,
		})
		return staticStream(route, cached, func(full string) {
			p.persistTurn(hookCtx, sessionID, query, full)
		}), nil
	}

	subQueries, _ := p.expander.Expand(ctx, reflected)

	candidates, err := p.retriever.Retrieve(ctx, subQueries)
	if err != nil {
		return nil, err
	}

	src, err := p.llmProvider.ChatStream(ctx, []llm.Message{
		{Role: "user", Content: prompt.ForAnswer(prompt.BuildContext(candidates), reflected)},
	})
	if err != nil {
		return nil, err
	}

	return &Stream{
		Intent:   route,
		Products: projectProducts(candidates),
		recv:     src.Recv,
		closeFn:  src.Close,
		onComplete: func(full string) {
			p.persistTurn(hookCtx, sessionID, query, full)
			if strings.TrimSpace(full) != "" {
				p.cache.Save(hookCtx, reflected, full)
			}
		},
	}, nil
}

// staticStream emits one pre-computed fragment then io.EOF.
func staticStream(route, content string, onComplete func(string)) *Stream {
	delivered := false
	return &Stream{
		Intent:   route,
		Products: []dto.ProductSummary{},
		recv: func() (string, error) {
			if delivered {
				return "", io.EOF
			}
			delivered = true
			return content, nil
		},
		onComplete: onComplete,
	}
}
