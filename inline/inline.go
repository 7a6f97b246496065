// Package inline runs a search without the TUI and prints the results for scripts.
package inline

import (
	"context"
	"os"

	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/crosswatch-cli/crosswatch/store"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	s := store.New(store.Options{
		Catalog:  options.Catalog,
		Resolver: options.Resolver,
		Cache:    options.Cache,
	})
	if err := s.SetSelection(options.Countries, options.Services); err != nil {
		return err
	}
	s.SetMediaKind(options.Kind)

	if err := s.Search(ctx); err != nil {
		return err
	}

	// the first batch came with Search
	for i := 1; i < max(options.Batches, 1); i++ {
		ran, err := s.LoadMore(ctx)
		if err != nil {
			return err
		}
		if !ran {
			break
		}
	}

	state := s.State()
	items := s.Displayed()
	if options.Filter.IsPresent() {
		items = options.Filter.MustGet()(items)
	}
	log.Infof("inline search found %d titles", len(items))

	output := &Output{
		Selection: Selection{
			Countries: state.Countries,
			Services:  state.Services,
			Kind:      state.Kind,
		},
		Exhausted: !state.HasMore,
		Stats:     s.Stats(),
		Result:    items,
	}

	if options.Json {
		return writeJson(options.Out, output)
	}
	return writeText(options.Out, output, options.Description)
}
