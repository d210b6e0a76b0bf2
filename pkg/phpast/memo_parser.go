package phpast

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/collections"
)

// MemoParser is a Parser frontend that returns the cached summary of a file
// as long as its sha256 is unchanged.
type MemoParser struct {
	next   Parser
	logger zerolog.Logger

	mu    sync.Mutex
	files map[string]memoEntry
}

type memoEntry struct {
	sha256  string
	summary *Summary
}

func NewMemoParser(next Parser, logger zerolog.Logger) *MemoParser {
	return &MemoParser{
		next:   next,
		logger: logger,
		files:  make(map[string]memoEntry),
	}
}

// Parse implements Parser.
func (p *MemoParser) Parse(filename string, content []byte) (*Summary, error) {
	sha256 := collections.Sha256Bytes(content)

	p.mu.Lock()
	entry, ok := p.files[filename]
	p.mu.Unlock()
	if ok && entry.sha256 == sha256 {
		p.logger.Debug().Str("file", filename).Msg("summary cache hit")
		return entry.summary, nil
	}
	p.logger.Debug().Str("file", filename).Str("sha256", sha256).Msg("summary cache miss")

	summary, err := p.next.Parse(filename, content)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.files[filename] = memoEntry{sha256: sha256, summary: summary}
	p.mu.Unlock()

	return summary, nil
}

// Forget drops the cached summary of a file.
func (p *MemoParser) Forget(filename string) {
	p.mu.Lock()
	delete(p.files, filename)
	p.mu.Unlock()
}
