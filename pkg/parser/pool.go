package parser

import (
	"fmt"
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool bounds the parsers of one grammar. slots caps how many are
// checked out at once; idle holds released parsers for reuse, so at most
// cap(slots) parsers ever exist.
type parserPool struct {
	grammar string
	lang    *ts.Language
	slots   chan struct{}
	idle    chan *ts.Parser
	logger  *slog.Logger
}

func newParserPool(grammar string, lang *ts.Language, size int, logger *slog.Logger) *parserPool {
	return &parserPool{
		grammar: grammar,
		lang:    lang,
		slots:   make(chan struct{}, size),
		idle:    make(chan *ts.Parser, size),
		logger:  logger,
	}
}

// acquire blocks while every slot is taken.
func (p *parserPool) acquire() (*ts.Parser, error) {
	p.slots <- struct{}{}
	select {
	case parser := <-p.idle:
		return parser, nil
	default:
	}

	parser := ts.NewParser()
	if err := parser.SetLanguage(p.lang); err != nil {
		parser.Close()
		<-p.slots
		return nil, fmt.Errorf("failed to set %s grammar: %w", p.grammar, err)
	}
	p.logger.Debug("parser created", "grammar", p.grammar)
	return parser, nil
}

func (p *parserPool) release(parser *ts.Parser) {
	select {
	case p.idle <- parser:
	default:
		parser.Close()
	}
	<-p.slots
}

// close frees the idle parsers. Parsers still checked out are freed when
// they come back.
func (p *parserPool) close() {
	for {
		select {
		case parser := <-p.idle:
			parser.Close()
		default:
			return
		}
	}
}
