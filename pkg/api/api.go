// Package api exposes the fridge, recipe, matching and consumption services
// over REST for the mobile client.
package api

import (
	"errors"

	"github.com/korjavin/fridgechef/pkg/avail"
	"github.com/korjavin/fridgechef/pkg/consume"
	"github.com/korjavin/fridgechef/pkg/fridge"
	"github.com/korjavin/fridgechef/pkg/history"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/recipe"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/korjavin/fridgechef/pkg/suggest"
)

// API bundles the services behind the HTTP handlers
type API struct {
	fridges    *fridge.Service
	recipes    *recipe.Service
	history    *history.Service
	matcher    *match.Matcher
	aggregator *avail.Aggregator
	applier    *consume.Applier
	suggester  *suggest.Service
	logger     *logger.Logger
}

// New creates the API over the given services
func New(
	fridges *fridge.Service,
	recipes *recipe.Service,
	hist *history.Service,
	matcher *match.Matcher,
	aggregator *avail.Aggregator,
	applier *consume.Applier,
	suggester *suggest.Service,
) *API {
	return &API{
		fridges:    fridges,
		recipes:    recipes,
		history:    hist,
		matcher:    matcher,
		aggregator: aggregator,
		applier:    applier,
		suggester:  suggester,
		logger:     logger.New("api"),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
