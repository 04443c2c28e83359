package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/internal/layout"
	"github.com/julien-sobczak/sprout/internal/suppressor"
	"github.com/julien-sobczak/sprout/pkg/clock"
	"github.com/julien-sobczak/sprout/pkg/markdown"
)

var (
	// ErrClosed is returned when using an engine after Close.
	ErrClosed = errors.New("engine closed")
	// ErrCardNotFound is returned when no rendered card matches.
	ErrCardNotFound = errors.New("card not found")
	// ErrNoResolver is returned when resolving a card without a card database.
	ErrNoResolver = errors.New("no card resolver")
)

// SourceReader returns the saved source of a document.
type SourceReader interface {
	ReadSource(ctx context.Context, path string) (string, error)
}

// SourceReaderFunc is an adapter to use ordinary functions as SourceReader.
type SourceReaderFunc func(ctx context.Context, path string) (string, error)

func (f SourceReaderFunc) ReadSource(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// CardResolver finds a card in the card database. It returns nil when the card is unknown.
type CardResolver interface {
	ResolveCard(ctx context.Context, anchorID string) (*core.CardLocation, error)
}

// RichRenderer converts the Markdown of a section into HTML.
type RichRenderer interface {
	Render(ctx context.Context, md string) (string, error)
}

// RichRendererFunc is an adapter to use ordinary functions as RichRenderer.
type RichRendererFunc func(ctx context.Context, md string) (string, error)

func (f RichRendererFunc) Render(ctx context.Context, md string) (string, error) {
	return f(ctx, md)
}

// DefaultRichRenderer converts Markdown with gomarkdown.
var DefaultRichRenderer = RichRendererFunc(func(ctx context.Context, md string) (string, error) {
	return markdown.SafeToHTML(md)
})

// ChangeFeed notifies batches of mutations. *dom.Document implements it.
type ChangeFeed interface {
	Subscribe(fn func([]dom.Mutation)) (unsubscribe func())
}

// Options configures an engine. Only the document is mandatory, every other dependency has a default.
type Options struct {
	Clock  clock.Clock
	Logger *core.Logger
	// Mutations of the document by default
	Feed ChangeFeed
	// Saved source of the document, preferred over the text of the tree
	Source SourceReader
	Path   string
	// Card database used by the edit button
	Resolver CardResolver
	// Called on start and on every refresh
	Settings func() (core.Config, error)
	Rich     RichRenderer
	Frames   layout.FrameScheduler
	Measurer layout.Measurer
	Animator layout.Animator
	Shuffle  core.ShuffleFunc
	// Thresholds of the duplicate detection
	Suppressor suppressor.Options
}

// Stats counts what the engine did since its creation.
type Stats struct {
	Flushes    int
	Rendered   int
	Skipped    int
	Suppressed int
}

// Engine keeps the cards of a document rendered while the host mutates the tree.
// All the state lives in the engine. Nodes are re-queried on every operation.
type Engine struct {
	doc     *dom.Document
	options Options
	logger  *core.Logger

	// Serialize the operations on the tree
	work sync.Mutex

	mu             sync.Mutex
	config         core.Config
	renderer       *core.Renderer
	suppressor     *suppressor.Suppressor
	coordinator    *layout.Coordinator
	dirty          []*dom.Node
	timer          clock.Timer
	unsubscribe    func()
	removeListener func()
	started        bool
	closed         bool
	stylesEnabled  bool
	stats          Stats
}

// New creates an engine for the document. Call Start to begin observing mutations.
func New(doc *dom.Document, options Options) *Engine {
	if options.Clock == nil {
		options.Clock = clock.CurrentClock()
	}
	if options.Logger == nil {
		options.Logger = core.CurrentLogger()
	}
	if options.Feed == nil {
		options.Feed = doc
	}
	if options.Settings == nil {
		options.Settings = func() (core.Config, error) {
			return core.DefaultConfiguration(), nil
		}
	}
	if options.Rich == nil {
		options.Rich = DefaultRichRenderer
	}
	if options.Suppressor.MinSignatureLength == 0 {
		options.Suppressor = suppressor.DefaultOptions()
	}
	if options.Shuffle == nil {
		options.Shuffle = core.DefaultShuffle
	}

	return &Engine{
		doc:           doc,
		options:       options,
		logger:        options.Logger,
		suppressor:    suppressor.New(options.Suppressor),
		stylesEnabled: true,
	}
}

// Start loads the configuration, subscribes to the change feed and renders
// the cards already present in the document.
func (e *Engine) Start(ctx context.Context) error {
	config, err := e.options.Settings()
	if err != nil {
		return fmt.Errorf("unable to load settings: %w", err)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true
	e.applyConfig(config)
	if e.options.Frames == nil {
		e.options.Frames = layout.NewClockFrames(e.options.Clock, config.FrameDelay)
	}
	if e.options.Measurer == nil {
		e.options.Measurer = layout.NewFlowMeasurer(config.Presentation.Columns)
	}
	if e.options.Animator == nil {
		e.options.Animator = layout.AnimatorFunc(func(transitions []layout.Transition) {
			e.logger.Tracef("Animating %d cards", len(transitions))
		})
	}
	e.coordinator = layout.NewCoordinator(e.options.Measurer, e.options.Frames, e.options.Animator, config.AnimationDuration)
	e.unsubscribe = e.options.Feed.Subscribe(e.onMutations)
	e.removeListener = e.doc.AddEventListener(core.RefreshEvent, func(event dom.Event) {
		if err := e.Refresh(context.Background(), containerOf(event.Target)); err != nil {
			e.logger.Warnf("Unable to refresh cards: %v", err)
		}
	})
	e.mu.Unlock()

	e.logger.Debugf("Engine started with preset %s", config.Presentation.Preset)
	e.enqueue(e.doc.Root())
	return e.Flush(ctx)
}

// applyConfig must be called with the lock held.
func (e *Engine) applyConfig(config core.Config) {
	e.config = config
	e.renderer = core.NewRenderer(config.Presentation)
	e.renderer.Shuffle = e.options.Shuffle
	if setter, ok := e.options.Measurer.(interface{ SetColumns(int) }); ok {
		setter.SetColumns(config.Presentation.Columns)
	}
	if e.coordinator != nil {
		e.coordinator.Duration = config.AnimationDuration
	}
}

// Config returns the configuration currently applied.
func (e *Engine) Config() core.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Stats returns a copy of the counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Close stops observing the document. In-flight operations complete
// but later callbacks are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	unsubscribe := e.unsubscribe
	removeListener := e.removeListener
	coordinator := e.coordinator
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.dirty = nil
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if removeListener != nil {
		removeListener()
	}
	if coordinator != nil {
		coordinator.Close()
	}
	e.logger.Debug("Engine closed")
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) incr(fn func(stats *Stats)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.stats)
}
